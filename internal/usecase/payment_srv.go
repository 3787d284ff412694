package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/currency"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/store"
	"travel-booking/pkg/metrics"
)

// PaymentMethod selects between the static QR code and the slip upload.
type PaymentMethod string

const (
	MethodQR   PaymentMethod = "qr"
	MethodSlip PaymentMethod = "slip"
)

var allowedSlipExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

var allowedSlipMIMEs = []string{"image/jpeg", "image/png", "image/webp"}

// PaymentSummary is what the payment step shows before the user pays.
type PaymentSummary struct {
	Booking      response.Booking
	Total        float64 // canonical currency
	DisplayTotal string  // formatted in the preferred currency
}

type PaymentService interface {
	// Summary loads the booking and computes the payable total.
	Summary(ctx context.Context, bookingID int) (*PaymentSummary, error)

	// QRInstructions is the text accompanying the static QR method.
	QRInstructions() string

	// ValidateSlip runs the client-side pre-checks on a slip file. Any
	// failure means no request may be sent.
	ValidateSlip(path string) error

	// UploadSlip validates and uploads the slip, then fires the
	// best-effort payment notification.
	UploadSlip(ctx context.Context, bookingID int, path string) error
}

type paymentService struct {
	api          *api.Client
	store        *store.Store
	metrics      *metrics.Metrics
	maxSlipBytes int64
	handoffDelay time.Duration
	log          *zap.Logger
}

func NewPaymentService(client *api.Client, st *store.Store, m *metrics.Metrics, maxSlipSizeMB int64, handoffDelay time.Duration, log *zap.Logger) PaymentService {
	return &paymentService{
		api:          client,
		store:        st,
		metrics:      m,
		maxSlipBytes: maxSlipSizeMB * 1024 * 1024,
		handoffDelay: handoffDelay,
		log:          log.With(zap.String("service", "payment")),
	}
}

func (s *paymentService) Summary(ctx context.Context, bookingID int) (*PaymentSummary, error) {
	if s.store.Token() == "" {
		return nil, api.ErrAuthRequired
	}

	booking, err := s.api.GetBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	total := booking.Total()
	code := currency.Code(s.store.Currency())

	return &PaymentSummary{
		Booking:      *booking,
		Total:        total,
		DisplayTotal: currency.FormatFromCanonical(total, code),
	}, nil
}

func (s *paymentService) QRInstructions() string {
	return "Scan the PromptPay QR code to pay, then upload your transfer slip as proof of payment."
}

func (s *paymentService) ValidateSlip(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedSlipExts[ext] {
		return api.NewValidationError("File type must be JPG/PNG/WEBP (extensions: .jpg, .jpeg, .png, .webp)")
	}

	info, err := os.Stat(path)
	if err != nil {
		return api.NewValidationError("Could not read slip file: %s", path)
	}
	if info.Size() > s.maxSlipBytes {
		return api.NewValidationError("File too large. Max %d MB", s.maxSlipBytes/(1024*1024))
	}

	// The extension is easy to fake; sniff the actual content too.
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return api.NewValidationError("Could not read slip file: %s", path)
	}
	for _, allowed := range allowedSlipMIMEs {
		if mtype.Is(allowed) {
			return nil
		}
	}
	return api.NewValidationError("File content must be a JPEG, PNG or WEBP image, got %s", mtype.String())
}

func (s *paymentService) UploadSlip(ctx context.Context, bookingID int, path string) error {
	if s.store.Token() == "" {
		return api.ErrAuthRequired
	}

	if err := s.ValidateSlip(path); err != nil {
		return err
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open slip file: %w", err)
	}
	defer file.Close()

	if err := s.api.UploadSlip(ctx, bookingID, filepath.Base(path), file); err != nil {
		s.log.Warn("Slip upload failed", zap.Int("booking_id", bookingID), zap.Error(err))
		return err
	}

	s.metrics.IncSlipUploaded()
	s.log.Info("Slip uploaded", zap.Int("booking_id", bookingID))

	// Fire and forget; a lost notification never blocks the workflow.
	if err := s.api.NotifyPayment(ctx, bookingID); err != nil {
		s.log.Debug("Payment notification failed", zap.Int("booking_id", bookingID), zap.Error(err))
	}

	if s.handoffDelay > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.handoffDelay):
		}
	}

	return nil
}
