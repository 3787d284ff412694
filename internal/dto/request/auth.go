package request

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordConfirmRequest struct {
	UID         string `json:"uid" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8"`
}

// ProfileUpdateForm is sent as multipart form fields; empty fields are
// omitted so the backend keeps its current values.
type ProfileUpdateForm struct {
	Name        string
	DateOfBirth string `validate:"omitempty,datetime=2006-01-02"`
	Gender      string `validate:"omitempty,oneof=male female other prefer_not_to_say"`
	Phone       string
	PassportNo  string
	Nationality string
	Address     string
	Email       string `validate:"omitempty,email"`
}

// Fields returns the non-empty form fields keyed by their wire names.
func (f *ProfileUpdateForm) Fields() map[string]string {
	fields := make(map[string]string)
	set := func(key, value string) {
		if value != "" {
			fields[key] = value
		}
	}
	set("name", f.Name)
	set("dob", f.DateOfBirth)
	set("gender", f.Gender)
	set("phone", f.Phone)
	set("passport_no", f.PassportNo)
	set("nationality", f.Nationality)
	set("address", f.Address)
	set("email", f.Email)
	return fields
}
