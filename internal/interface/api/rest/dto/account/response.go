package account

import (
	domain "account-manager-api/internal/domain/account"
)

type ResponseData struct {
	Data domain.Views `json:"data"`
}
