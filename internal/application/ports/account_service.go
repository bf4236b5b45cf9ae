package ports

import (
	"context"

	"account-manager-api/internal/domain/account"
)

type AccountService interface {
	Register(ctx context.Context, in account.Registration) (*account.View, error)
	FindAccounts(ctx context.Context) (account.Views, error)
	FindAccountByID(ctx context.Context, id account.ID) (*account.View, error)
	UpdateAccount(ctx context.Context, id account.ID, patch account.Patch) (*account.View, error)
	DeleteAccount(ctx context.Context, id account.ID) (*account.View, error)
	VerifyCredential(rawPassword, storedHash string) bool
}
