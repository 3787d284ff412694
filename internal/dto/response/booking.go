package response

import (
	"strconv"
	"strings"
)

// Booking status values. The canonical spelling is "canceled"; the
// backend's "cancelled" is folded into it at the API boundary.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCanceled  = "canceled"
)

// NormalizeStatus lowercases a server status and maps the "cancelled"
// spelling onto the canonical "canceled".
func NormalizeStatus(status string) string {
	s := strings.ToLower(status)
	if s == "cancelled" {
		return StatusCanceled
	}
	return s
}

// BookingPackage is the package snapshot nested inside a booking.
type BookingPackage struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Price    string `json:"price"`
	Location string `json:"location"`
}

type Booking struct {
	ID             int            `json:"id"`
	TravelDate     string         `json:"travel_date"`
	NumberOfPeople int            `json:"number_of_people"`
	Status         string         `json:"status"`
	Note           string         `json:"note,omitempty"`
	Package        BookingPackage `json:"package"`
}

// CreatedBooking is the create endpoint's reply; only the new identifier
// matters to the workflow hand-off.
type CreatedBooking struct {
	ID int `json:"id"`
}

// Total is the canonical-currency total for the booking.
func (b *Booking) Total() float64 {
	price, err := strconv.ParseFloat(b.Package.Price, 64)
	if err != nil {
		return 0
	}
	return price * float64(b.NumberOfPeople)
}
