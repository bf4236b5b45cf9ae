package account

import (
	"context"
)

// Repository is the account store contract. Lookups return nil without an
// error on a miss. CreateAccount and UpdateAccount return
// ErrPhoneAlreadyExists when the phone unique constraint rejects the write;
// the constraint is the authority against duplicate registration, not the
// service-level pre-check.
type Repository interface {
	CreateAccount(ctx context.Context, req Account) (*Account, error)
	FetchAccountByID(ctx context.Context, id ID) (*Account, error)
	FetchAccountByPhone(ctx context.Context, phone string) (*Account, error)
	FetchAccounts(ctx context.Context) (Accounts, error)
	UpdateAccount(ctx context.Context, id ID, patch Patch) (*Account, error)
	DeleteAccount(ctx context.Context, id ID) (*Account, error)
}
