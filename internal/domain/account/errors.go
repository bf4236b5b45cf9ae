package account

import "errors"

var (
	ErrPhoneAlreadyExists = errors.New("account phone already exists")
	ErrAccountNotFound    = errors.New("account not found")
)
