package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/store"
	"travel-booking/pkg/metrics"
)

// BookingsService serves the "my bookings" view: the caller's booking
// list with status filtering, a polling watcher tied to the view's
// lifetime, and receipt download.
type BookingsService interface {
	// Mine fetches the caller's bookings, statuses already normalized.
	Mine(ctx context.Context) ([]response.Booking, error)

	// FilterByStatus keeps bookings whose status equals the given
	// canonical status, preserving order.
	FilterByStatus(bookings []response.Booking, status string) []response.Booking

	// Watch polls Mine on the fixed interval until ctx is cancelled,
	// delivering each successful result to onUpdate. Failed polls are
	// transient: logged, counted and retried on the next tick. No update
	// is delivered after cancellation.
	Watch(ctx context.Context, onUpdate func([]response.Booking))

	// DownloadReceipt saves the booking's PDF receipt and returns the
	// written file path.
	DownloadReceipt(ctx context.Context, bookingID int) (string, error)
}

type bookingsService struct {
	api          *api.Client
	store        *store.Store
	metrics      *metrics.Metrics
	pollInterval time.Duration
	downloadDir  string
	log          *zap.Logger
}

func NewBookingsService(client *api.Client, st *store.Store, m *metrics.Metrics, pollInterval time.Duration, downloadDir string, log *zap.Logger) BookingsService {
	return &bookingsService{
		api:          client,
		store:        st,
		metrics:      m,
		pollInterval: pollInterval,
		downloadDir:  downloadDir,
		log:          log.With(zap.String("service", "bookings")),
	}
}

func (s *bookingsService) Mine(ctx context.Context) ([]response.Booking, error) {
	if s.store.Token() == "" {
		return nil, api.ErrAuthRequired
	}
	return s.api.MyBookings(ctx)
}

func (s *bookingsService) FilterByStatus(bookings []response.Booking, status string) []response.Booking {
	target := response.NormalizeStatus(status)
	filtered := make([]response.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == target {
			filtered = append(filtered, b)
		}
	}
	return filtered
}

func (s *bookingsService) Watch(ctx context.Context, onUpdate func([]response.Booking)) {
	poll := func() {
		bookings, err := s.Mine(ctx)
		s.metrics.IncPollCycle(err != nil)
		if err != nil {
			if ctx.Err() == nil {
				s.log.Warn("Booking poll failed", zap.Error(err))
			}
			return
		}
		// An in-flight fetch may resolve after cancellation; never
		// deliver into a torn-down view.
		if ctx.Err() != nil {
			return
		}
		onUpdate(bookings)
	}

	poll()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			poll()
		}
	}
}

func (s *bookingsService) DownloadReceipt(ctx context.Context, bookingID int) (string, error) {
	if s.store.Token() == "" {
		return "", api.ErrAuthRequired
	}

	data, err := s.api.DownloadReceipt(ctx, bookingID)
	if err != nil {
		s.log.Warn("Receipt download failed", zap.Int("booking_id", bookingID), zap.Error(err))
		return "", err
	}

	if err := os.MkdirAll(s.downloadDir, 0755); err != nil {
		return "", fmt.Errorf("create download dir: %w", err)
	}

	path := filepath.Join(s.downloadDir, fmt.Sprintf("booking_%d.pdf", bookingID))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write receipt: %w", err)
	}

	s.log.Info("Receipt saved", zap.Int("booking_id", bookingID), zap.String("path", path))
	return path, nil
}
