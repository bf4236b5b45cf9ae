package account

type (
	// RegisterRequest is the registration payload.
	RegisterRequest struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Birthday  string `json:"birthday"`
		Phone     string `json:"phone"`
		Password  string `json:"password"`
		Role      string `json:"role"`
	}

	// PatchRequest is the partial-update payload; absent fields stay nil
	// and are left untouched downstream.
	PatchRequest struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Birthday  *string `json:"birthday"`
		Phone     *string `json:"phone"`
		Password  *string `json:"password"`
		Role      *string `json:"role"`
	}
)
