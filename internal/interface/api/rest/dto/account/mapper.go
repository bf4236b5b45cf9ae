package account

import (
	"errors"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	domain "account-manager-api/internal/domain/account"
)

const birthdayLayout = "2006-01-02"

var errInvalidBirthday = errors.New("invalid birthday format, want YYYY-MM-DD")

// NormalizeName is the canonical form names are validated and stored in.
func NormalizeName(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func ToDomainRegistration(req RegisterRequest) (domain.Registration, error) {
	d, err := time.Parse(birthdayLayout, strings.TrimSpace(req.Birthday))
	if err != nil {
		return domain.Registration{}, errInvalidBirthday
	}

	return domain.Registration{
		FirstName: NormalizeName(req.FirstName),
		LastName:  NormalizeName(req.LastName),
		Birthday:  d,
		Phone:     strings.TrimSpace(req.Phone),
		Password:  req.Password,
		Role:      domain.Role(req.Role),
	}, nil
}

func ToDomainPatch(req PatchRequest) (domain.Patch, error) {
	p := domain.Patch{Password: req.Password}

	if req.FirstName != nil {
		v := NormalizeName(*req.FirstName)
		p.FirstName = &v
	}
	if req.LastName != nil {
		v := NormalizeName(*req.LastName)
		p.LastName = &v
	}
	if req.Phone != nil {
		v := strings.TrimSpace(*req.Phone)
		p.Phone = &v
	}
	if req.Birthday != nil {
		d, err := time.Parse(birthdayLayout, strings.TrimSpace(*req.Birthday))
		if err != nil {
			return domain.Patch{}, errInvalidBirthday
		}
		p.Birthday = &d
	}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		p.Role = &role
	}

	return p, nil
}
