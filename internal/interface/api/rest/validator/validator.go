package validator

import (
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	domain "account-manager-api/internal/domain/account"
	"account-manager-api/internal/interface/api/rest/dto/account"
)

const (
	minNameLen     = 2
	maxNameLen     = 50
	minPasswordLen = 6
	maxPasswordLen = 100
)

// Uzbekistan numbering plan: +998 then 9 digits, 13 characters total.
var phoneRe = regexp.MustCompile(`^\+998\d{9}$`)

func IsUUID(s string) (bool, uuid.UUID) {
	id, err := uuid.Parse(s)
	return err == nil, id
}

func ValidateRegister(r account.RegisterRequest) map[string]string {
	errs := make(map[string]string)

	first := account.NormalizeName(r.FirstName)
	last := account.NormalizeName(r.LastName)
	bdate := strings.TrimSpace(r.Birthday)
	phone := strings.TrimSpace(r.Phone)

	if first == "" {
		errs["first_name"] = "first_name is required"
	} else if msg := checkNameLen(first); msg != "" {
		errs["first_name"] = "first_name " + msg
	}

	if last != "" {
		if msg := checkNameLen(last); msg != "" {
			errs["last_name"] = "last_name " + msg
		}
	}

	if bdate == "" {
		errs["birthday"] = "birthday is required"
	} else if _, err := time.Parse("2006-01-02", bdate); err != nil {
		errs["birthday"] = "must be YYYY-MM-DD"
	}

	if phone == "" {
		errs["phone"] = "phone is required"
	} else if msg := checkPhone(phone); msg != "" {
		errs["phone"] = msg
	}

	if r.Password == "" {
		errs["password"] = "password is required"
	} else if msg := checkPassword(r.Password); msg != "" {
		errs["password"] = msg
	}

	if r.Role != "" && !domain.Role(r.Role).Valid() {
		errs["role"] = "role must be USER or ADMIN"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func ValidatePatch(r account.PatchRequest) map[string]string {
	errs := make(map[string]string)

	if r.FirstName != nil {
		if msg := checkNameLen(account.NormalizeName(*r.FirstName)); msg != "" {
			errs["first_name"] = "first_name " + msg
		}
	}
	if r.LastName != nil {
		if msg := checkNameLen(account.NormalizeName(*r.LastName)); msg != "" {
			errs["last_name"] = "last_name " + msg
		}
	}
	if r.Birthday != nil {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(*r.Birthday)); err != nil {
			errs["birthday"] = "must be YYYY-MM-DD"
		}
	}
	if r.Phone != nil {
		if msg := checkPhone(strings.TrimSpace(*r.Phone)); msg != "" {
			errs["phone"] = msg
		}
	}
	if r.Password != nil {
		if msg := checkPassword(*r.Password); msg != "" {
			errs["password"] = msg
		}
	}
	if r.Role != nil && !domain.Role(*r.Role).Valid() {
		errs["role"] = "role must be USER or ADMIN"
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func checkNameLen(s string) string {
	if l := utf8.RuneCountInString(s); l < minNameLen || l > maxNameLen {
		return "length must be 2-50 characters"
	}
	return ""
}

func checkPhone(phone string) string {
	if len(phone) != 13 || !phoneRe.MatchString(phone) {
		return "must be +998 followed by 9 digits"
	}
	return ""
}

func checkPassword(password string) string {
	if l := utf8.RuneCountInString(password); l < minPasswordLen || l > maxPasswordLen {
		return "password length must be 6-100 characters"
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "password must contain at least one letter and one digit"
	}

	return ""
}
