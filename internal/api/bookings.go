package api

import (
	"context"
	"fmt"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
)

// CreateBooking submits a new booking in "pending" state and returns its
// identifier for the confirmation hand-off.
func (c *Client) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.CreatedBooking, error) {
	var created response.CreatedBooking
	if err := c.postJSON(ctx, "users/bookings/create/", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateBookingNote persists the serialized traveler note onto a pending
// booking.
func (c *Client) UpdateBookingNote(ctx context.Context, bookingID int, note string) (*response.Booking, error) {
	var booking response.Booking
	req := &request.UpdateBookingRequest{Note: note}
	if err := c.putJSON(ctx, fmt.Sprintf("users/bookings/update/%d/", bookingID), req, &booking); err != nil {
		return nil, err
	}
	booking.Status = response.NormalizeStatus(booking.Status)
	return &booking, nil
}

// GetBooking fetches one booking with its nested package snapshot.
func (c *Client) GetBooking(ctx context.Context, bookingID int) (*response.Booking, error) {
	var booking response.Booking
	if err := c.getJSON(ctx, fmt.Sprintf("users/bookings/%d/", bookingID), &booking); err != nil {
		return nil, err
	}
	booking.Status = response.NormalizeStatus(booking.Status)
	return &booking, nil
}

// MyBookings fetches the caller's bookings. Statuses are normalized here,
// at the API boundary, so the rest of the client only ever sees the
// canonical spelling.
func (c *Client) MyBookings(ctx context.Context) ([]response.Booking, error) {
	var bookings []response.Booking
	if err := c.getJSON(ctx, "users/bookings/my/", &bookings); err != nil {
		return nil, err
	}
	for i := range bookings {
		bookings[i].Status = response.NormalizeStatus(bookings[i].Status)
	}
	return bookings, nil
}

// DownloadReceipt fetches the booking receipt as raw PDF bytes.
func (c *Client) DownloadReceipt(ctx context.Context, bookingID int) ([]byte, error) {
	return c.getBinary(ctx, fmt.Sprintf("users/bookings/%d/pdf/", bookingID))
}
