package api

import (
	"context"
	"io"
	"strconv"

	"travel-booking/internal/dto/request"
)

// UploadSlip sends the payment slip as multipart form data. Callers are
// responsible for validating the file before this point; no validation
// happens here.
func (c *Client) UploadSlip(ctx context.Context, bookingID int, fileName string, file io.Reader) error {
	fields := map[string]string{
		"booking_id": strconv.Itoa(bookingID),
	}
	return c.postMultipart(ctx, "users/payments/upload/", fields, "slip_image", fileName, file, nil)
}

// NotifyPayment triggers the backend's payment-received email. Best
// effort: callers ignore the error beyond logging it.
func (c *Client) NotifyPayment(ctx context.Context, bookingID int) error {
	req := &request.NotifyPaymentRequest{BookingID: bookingID}
	return c.postJSON(ctx, "users/payments/notify/", req, nil)
}
