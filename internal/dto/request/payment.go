package request

type NotifyPaymentRequest struct {
	BookingID int `json:"booking_id" validate:"required"`
}
