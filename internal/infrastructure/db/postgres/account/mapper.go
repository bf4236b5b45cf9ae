package account

import (
	domain "account-manager-api/internal/domain/account"
)

func fromDBModel(model *Account) *domain.Account {
	var a = &domain.Account{
		ID:           model.ID,
		FirstName:    model.FirstName,
		Birthday:     model.Birthday,
		Phone:        model.Phone,
		PasswordHash: model.PasswordHash,
		Role:         domain.Role(model.Role),

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
	if model.LastName != nil {
		a.LastName = *model.LastName
	}

	return a
}

func fromDBModels(models *Accounts) domain.Accounts {
	as := make(domain.Accounts, len(*models))
	for idx, a := range *models {
		as[idx] = fromDBModel(a)
	}

	return as
}

func lastNameParam(lastName string) *string {
	if lastName == "" {
		return nil
	}
	return &lastName
}
