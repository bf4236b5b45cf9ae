package account

import (
	"time"

	"github.com/google/uuid"
)

type (
	ID   = uuid.UUID
	Role string

	Account struct {
		ID           ID
		FirstName    string
		LastName     string
		Birthday     time.Time
		Phone        string
		PasswordHash string
		Role         Role

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Accounts []*Account

	// Registration carries the fields needed to create an account.
	// Password is raw here; it never reaches the store.
	Registration struct {
		FirstName string
		LastName  string
		Birthday  time.Time
		Phone     string
		Password  string
		Role      Role
	}

	// Patch is a partial mutation: nil fields are left unchanged.
	// Password is the raw replacement supplied by the caller; the service
	// hashes it into PasswordHash before the patch reaches the store, which
	// reads PasswordHash only.
	Patch struct {
		FirstName    *string
		LastName     *string
		Birthday     *time.Time
		Phone        *string
		Password     *string
		PasswordHash *string
		Role         *Role
	}
)

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}
