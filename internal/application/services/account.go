package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"account-manager-api/internal/application/ports"
	domain "account-manager-api/internal/domain/account"
	"account-manager-api/internal/infrastructure/mq"
)

type AccountService struct {
	accountRepository domain.Repository
	mq                ports.RabbitMQ
	mCounter          *prometheus.CounterVec
}

func NewAccountService(
	accountRepository domain.Repository,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.AccountService {
	return &AccountService{
		accountRepository: accountRepository,
		mq:                mq,
		mCounter:          mCounter,
	}
}

// Register creates an account with a hashed credential. The phone lookup
// here only produces a fast conflict answer; two concurrent registrations
// can both pass it, and the store's unique constraint settles the race.
func (as *AccountService) Register(ctx context.Context, in domain.Registration) (*domain.View, error) {
	existing, err := as.accountRepository.FetchAccountByPhone(ctx, in.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}

	created, err := as.accountRepository.CreateAccount(ctx, domain.Account{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Birthday:     in.Birthday,
		Phone:        in.Phone,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		return nil, err
	}

	v := domain.NewView(created)
	as.publishEvent(http.MethodPost, v)
	as.mCounter.WithLabelValues("account_registered_total").Inc()

	return &v, nil
}

func (as *AccountService) FindAccounts(ctx context.Context) (domain.Views, error) {
	accounts, err := as.accountRepository.FetchAccounts(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewViews(accounts), nil
}

func (as *AccountService) FindAccountByID(ctx context.Context, id domain.ID) (*domain.View, error) {
	a, err := as.accountRepository.FetchAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrAccountNotFound
	}

	v := domain.NewView(a)

	return &v, nil
}

// UpdateAccount applies only the supplied fields. The store performs the
// patch as a single atomic statement, so an interleaved update never
// resurrects stale values from the copy read here.
func (as *AccountService) UpdateAccount(ctx context.Context, id domain.ID, patch domain.Patch) (*domain.View, error) {
	existing, err := as.accountRepository.FetchAccountByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, domain.ErrAccountNotFound
	}

	if patch.Phone != nil && *patch.Phone != existing.Phone {
		holder, err := as.accountRepository.FetchAccountByPhone(ctx, *patch.Phone)
		if err != nil {
			return nil, err
		}
		if holder != nil {
			return nil, domain.ErrPhoneAlreadyExists
		}
	}

	if patch.Password != nil {
		hash, err := HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}

	updated, err := as.accountRepository.UpdateAccount(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrAccountNotFound
	}

	v := domain.NewView(updated)
	as.publishEvent(http.MethodPatch, v)
	as.mCounter.WithLabelValues("account_updated_total").Inc()

	return &v, nil
}

// DeleteAccount removes the record and returns its last known state.
func (as *AccountService) DeleteAccount(ctx context.Context, id domain.ID) (*domain.View, error) {
	deleted, err := as.accountRepository.DeleteAccount(ctx, id)
	if err != nil {
		return nil, err
	}
	if deleted == nil {
		return nil, domain.ErrAccountNotFound
	}

	v := domain.NewView(deleted)
	as.publishEvent(http.MethodDelete, v)
	as.mCounter.WithLabelValues("account_deleted_total").Inc()

	return &v, nil
}

func (as *AccountService) VerifyCredential(rawPassword, storedHash string) bool {
	return VerifyPassword(rawPassword, storedHash)
}

func (as *AccountService) publishEvent(method string, v domain.View) {
	as.mq.GetInputChan() <- mq.Event{
		Id:        uuid.New(),
		TS:        time.Now(),
		Method:    method,
		AccountID: v.ID.String(),
		Payload:   v,
	}
}
