package account

import "time"

const birthdayLayout = "2006-01-02"

type (
	// View is the external projection of an Account. It is the only shape
	// the service hands out, and it has no password hash field at all, so
	// no serialization path can leak credential material.
	View struct {
		ID        ID        `json:"id"`
		FirstName string    `json:"first_name"`
		LastName  string    `json:"last_name,omitempty"`
		Birthday  string    `json:"birthday"`
		Phone     string    `json:"phone"`
		Role      Role      `json:"role"`
		CreatedAt time.Time `json:"created_at"`
		UpdatedAt time.Time `json:"updated_at"`
	}
	Views []View
)

func NewView(a *Account) View {
	return View{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Birthday:  a.Birthday.Format(birthdayLayout),
		Phone:     a.Phone,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func NewViews(as Accounts) Views {
	vs := make(Views, len(as))
	for idx, a := range as {
		vs[idx] = NewView(a)
	}

	return vs
}
