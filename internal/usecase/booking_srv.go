package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"travel-booking/internal/api"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/store"
	"travel-booking/pkg/metrics"
	"travel-booking/pkg/utils"
)

// BookingStage tracks where a detail session is in the initiation flow.
type BookingStage int

const (
	StageLoading BookingStage = iota
	StageLoaded
	StageBookingInFlight
	StageBooked
	StageFailed
)

func (s BookingStage) String() string {
	switch s {
	case StageLoading:
		return "loading"
	case StageLoaded:
		return "loaded"
	case StageBookingInFlight:
		return "booking-in-flight"
	case StageBooked:
		return "booked"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// DetailSession is one package-detail view: the package snapshot plus the
// booking stage. Slots on the snapshot are decremented optimistically
// after a successful booking; serverSlots keeps the last value the backend
// actually reported, for reconciliation.
type DetailSession struct {
	Package response.TourPackage
	Stage   BookingStage

	serverSlots int
}

// OutOfSeats reports whether a party of the given size cannot fit in the
// locally known availability.
func (s *DetailSession) OutOfSeats(people int) bool {
	return people > s.Package.Slots || s.Package.Slots <= 0
}

// ServerSlots is the last slot count the backend reported, before any
// optimistic decrement.
func (s *DetailSession) ServerSlots() int {
	return s.serverSlots
}

type BookingService interface {
	// Detail loads one package and opens a session for it.
	Detail(ctx context.Context, packageID int) (*DetailSession, error)

	// Submit creates a pending booking for the session's package and
	// returns the new booking ID. The session's slot count is decremented
	// optimistically on success.
	Submit(ctx context.Context, session *DetailSession, people int) (int, error)

	// Reconcile re-reads the package and replaces the optimistic snapshot
	// with server truth. Reports whether the two diverged.
	Reconcile(ctx context.Context, session *DetailSession) (bool, error)

	// PrefillTraveler fills a traveler form from the profile, best effort.
	PrefillTraveler(ctx context.Context) *request.TravelerForm

	// ConfirmTraveler persists the traveler note onto the pending booking
	// and, after the fixed hand-off delay, clears the way to payment.
	ConfirmTraveler(ctx context.Context, bookingID int, form *request.TravelerForm) error
}

type bookingService struct {
	api          *api.Client
	store        *store.Store
	metrics      *metrics.Metrics
	handoffDelay time.Duration
	log          *zap.Logger
}

func NewBookingService(client *api.Client, st *store.Store, m *metrics.Metrics, handoffDelay time.Duration, log *zap.Logger) BookingService {
	return &bookingService{
		api:          client,
		store:        st,
		metrics:      m,
		handoffDelay: handoffDelay,
		log:          log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) Detail(ctx context.Context, packageID int) (*DetailSession, error) {
	pkg, err := s.api.GetPackage(ctx, packageID)
	if err != nil {
		s.log.Warn("Failed to load package", zap.Int("package_id", packageID), zap.Error(err))
		return nil, err
	}

	return &DetailSession{
		Package:     *pkg,
		Stage:       StageLoaded,
		serverSlots: pkg.Slots,
	}, nil
}

func (s *bookingService) Submit(ctx context.Context, session *DetailSession, people int) (int, error) {
	if s.store.Token() == "" {
		return 0, api.ErrAuthRequired
	}

	if session.OutOfSeats(people) {
		// Pre-check only; no request goes out. The backend stays the
		// authority for concurrent bookers.
		return 0, api.NewValidationError("Not enough seats available")
	}

	req := &request.CreateBookingRequest{
		PackageID:      session.Package.ID,
		TravelDate:     session.Package.StartDate,
		NumberOfPeople: people,
	}
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return 0, api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}

	session.Stage = StageBookingInFlight

	created, err := s.api.CreateBooking(ctx, req)
	if err != nil {
		// Retryable from the same view; the snapshot is untouched.
		session.Stage = StageLoaded
		s.log.Warn("Booking failed",
			zap.Int("package_id", session.Package.ID),
			zap.Int("people", people),
			zap.Error(err),
		)
		return 0, err
	}

	// Optimistic decrement. Stale against concurrent bookers until the
	// next Detail or Reconcile; that staleness window is accepted.
	session.Package.Slots -= people
	session.Stage = StageBooked
	s.metrics.IncBookingSubmitted()

	s.log.Info("Booking created",
		zap.Int("booking_id", created.ID),
		zap.Int("package_id", session.Package.ID),
		zap.Int("people", people),
	)

	return created.ID, nil
}

func (s *bookingService) Reconcile(ctx context.Context, session *DetailSession) (bool, error) {
	pkg, err := s.api.GetPackage(ctx, session.Package.ID)
	if err != nil {
		return false, err
	}

	diverged := pkg.Slots != session.Package.Slots
	if diverged {
		s.log.Info("Availability diverged from optimistic value",
			zap.Int("package_id", pkg.ID),
			zap.Int("optimistic", session.Package.Slots),
			zap.Int("server", pkg.Slots),
		)
	}

	// Server truth always wins over the optimistic value.
	session.Package = *pkg
	session.serverSlots = pkg.Slots

	return diverged, nil
}

func (s *bookingService) PrefillTraveler(ctx context.Context) *request.TravelerForm {
	form := &request.TravelerForm{}
	if s.store.Token() == "" {
		return form
	}

	profile, err := s.api.GetProfile(ctx)
	if err != nil {
		// Best effort: a blank form is fine.
		s.log.Debug("Profile prefill failed", zap.Error(err))
		return form
	}

	form.FullName = profile.Username
	form.Email = profile.Email
	form.Phone = profile.Phone
	form.Passport = profile.PassportNo
	form.Nationality = profile.Nationality
	form.Gender = profile.Gender
	form.DateOfBirth = profile.BirthDate

	return form
}

func (s *bookingService) ConfirmTraveler(ctx context.Context, bookingID int, form *request.TravelerForm) error {
	if s.store.Token() == "" {
		return api.ErrAuthRequired
	}

	if errs := utils.ValidateStruct(form); len(errs) > 0 {
		return api.NewValidationError("%s", utils.FormatValidationErrors(errs))
	}

	note := form.SerializeNote()
	if _, err := s.api.UpdateBookingNote(ctx, bookingID, note); err != nil {
		s.log.Warn("Failed to save traveler info", zap.Int("booking_id", bookingID), zap.Error(err))
		return err
	}

	s.log.Info("Traveler info saved", zap.Int("booking_id", bookingID))

	// Short fixed pause before handing off to payment, as the storefront
	// does between steps.
	if err := s.handoff(ctx); err != nil {
		return fmt.Errorf("hand-off interrupted: %w", err)
	}

	return nil
}

func (s *bookingService) handoff(ctx context.Context) error {
	if s.handoffDelay <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(s.handoffDelay):
		return nil
	}
}
