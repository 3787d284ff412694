package usecase

import (
	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/store"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/utils"
)

type Service struct {
	Catalog  CatalogService
	Booking  BookingService
	Payment  PaymentService
	Bookings BookingsService
	Auth     AuthService
	Blog     BlogService
}

func NewService(client *api.Client, st *store.Store, m *metrics.Metrics, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Catalog:  NewCatalogService(client, st, log),
		Booking:  NewBookingService(client, st, m, config.Client.HandoffDelay, log),
		Payment:  NewPaymentService(client, st, m, config.Payment.MaxSlipSizeMB, config.Client.HandoffDelay, log),
		Bookings: NewBookingsService(client, st, m, config.Client.PollInterval, config.Client.DownloadDir, log),
		Auth:     NewAuthService(client, st, log),
		Blog:     NewBlogService(client, st, log),
	}
}
