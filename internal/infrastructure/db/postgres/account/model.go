package account

import (
	"time"

	"github.com/google/uuid"
)

type (
	Account struct {
		ID           uuid.UUID
		FirstName    string
		LastName     *string
		Birthday     time.Time
		Phone        string
		PasswordHash string
		Role         string

		CreatedAt time.Time
		UpdatedAt time.Time
	}
	Accounts []*Account
)
