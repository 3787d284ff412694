package response

type AuthTokens struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh,omitempty"`
}

type UserProfile struct {
	ID              int    `json:"id"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	IsAgency        bool   `json:"is_agency"`
	IsEmailVerified bool   `json:"is_email_verified,omitempty"`
	Gender          string `json:"gender,omitempty"`
	BirthDate       string `json:"birth_date,omitempty"`
	Phone           string `json:"phone,omitempty"`
	PassportNo      string `json:"passport_no,omitempty"`
	Nationality     string `json:"nationality,omitempty"`
	Address         string `json:"address,omitempty"`
	ProfilePicture  string `json:"profile_picture,omitempty"`
}
