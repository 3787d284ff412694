package request

import (
	"fmt"
	"strings"
)

type CreateBookingRequest struct {
	PackageID      int    `json:"package_id" validate:"required"`
	TravelDate     string `json:"travel_date" validate:"required,datetime=2006-01-02"`
	NumberOfPeople int    `json:"number_of_people" validate:"required,gte=1"`
}

type UpdateBookingRequest struct {
	Note string `json:"note" validate:"required"`
}

// TravelerForm collects the traveler details gathered on the confirmation
// step. It is never sent as structured data; the backend stores it as one
// free-text note on the booking.
type TravelerForm struct {
	FullName    string `validate:"required"`
	Email       string `validate:"required,email"`
	Phone       string `validate:"required"`
	Passport    string `validate:"required"`
	Gender      string `validate:"omitempty,oneof=male female other prefer_not_to_say"`
	Nationality string `validate:"required"`
	DateOfBirth string `validate:"required,datetime=2006-01-02"`
	AgencyRef   string
	Note        string
}

// SerializeNote renders the fixed note template: one labeled line per
// field, "-" standing in for empty optional fields.
func (f *TravelerForm) SerializeNote() string {
	lines := []string{
		fmt.Sprintf("Name: %s", f.FullName),
		fmt.Sprintf("Email: %s", f.Email),
		fmt.Sprintf("Phone: %s", f.Phone),
		fmt.Sprintf("Passport: %s", f.Passport),
		fmt.Sprintf("Gender: %s", orDash(f.Gender)),
		fmt.Sprintf("Nationality: %s", f.Nationality),
		fmt.Sprintf("Date of Birth: %s", f.DateOfBirth),
		fmt.Sprintf("Agency Referral No.: %s", orDash(f.AgencyRef)),
		fmt.Sprintf("Note: %s", orDash(f.Note)),
	}
	return strings.Join(lines, "\n")
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
