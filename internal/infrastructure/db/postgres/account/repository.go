package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	domain "account-manager-api/internal/domain/account"
	"account-manager-api/internal/infrastructure/db/postgres"
)

// DB is the subset of pgxpool.Pool the repository needs; pgxmock
// satisfies it in tests.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Repository struct {
	db DB
}

func NewRepository(db DB) domain.Repository {
	return &Repository{db: db}
}

func (r *Repository) FetchAccounts(ctx context.Context) (domain.Accounts, error) {
	rows, err := r.db.Query(ctx, SelectAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var as Accounts
	for rows.Next() {
		a := new(Account)

		if err = rows.Scan(
			&a.ID,
			&a.FirstName,
			&a.LastName,
			&a.Birthday,
			&a.Phone,
			&a.PasswordHash,
			&a.Role,

			&a.CreatedAt,
			&a.UpdatedAt,
		); err != nil {
			return nil, err
		}

		as = append(as, a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&as), nil
}

func (r *Repository) FetchAccountByID(ctx context.Context, id domain.ID) (*domain.Account, error) {
	a := new(Account)
	err := r.db.QueryRow(ctx, SelectAccountByID, id.String()).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Birthday,
		&a.Phone,
		&a.PasswordHash,
		&a.Role,

		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(a), err
}

func (r *Repository) FetchAccountByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	a := new(Account)
	err := r.db.QueryRow(ctx, SelectAccountByPhone, phone).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Birthday,
		&a.Phone,
		&a.PasswordHash,
		&a.Role,

		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(a), err
}

func (r *Repository) CreateAccount(ctx context.Context, req domain.Account) (*domain.Account, error) {
	a := new(Account)

	err := r.db.QueryRow(
		ctx,
		InsertAccount,
		req.FirstName, lastNameParam(req.LastName), req.Birthday, req.Phone, req.PasswordHash, string(req.Role),
	).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Birthday,
		&a.Phone,
		&a.PasswordHash,
		&a.Role,

		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrPhoneAlreadyExists
		}
		return nil, err
	}

	return fromDBModel(a), err
}

// UpdateAccount writes only the non-nil patch fields in one statement, so a
// concurrent writer can never be overwritten with stale values read earlier.
func (r *Repository) UpdateAccount(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.Account, error) {
	a := new(Account)

	err := r.db.QueryRow(ctx, UpdateAccountByID,
		patch.FirstName, patch.LastName, patch.Birthday, patch.Phone, patch.PasswordHash, (*string)(patch.Role), id.String(),
	).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Birthday,
		&a.Phone,
		&a.PasswordHash,
		&a.Role,

		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if postgres.IsPgUniqueViolation(err) {
			return nil, domain.ErrPhoneAlreadyExists
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(a), err
}

func (r *Repository) DeleteAccount(ctx context.Context, id domain.ID) (*domain.Account, error) {
	a := new(Account)
	err := r.db.QueryRow(ctx, DeleteAccountByID, id.String()).Scan(
		&a.ID,
		&a.FirstName,
		&a.LastName,
		&a.Birthday,
		&a.Phone,
		&a.PasswordHash,
		&a.Role,

		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(a), err
}
