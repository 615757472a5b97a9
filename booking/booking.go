// Package booking orchestrates signups and booking submissions over the
// registry, ledger and notifier.
package booking

import (
	"context"
	"errors"
	"time"

	"github.com/bookling/bookling"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// notifyTimeout bounds each delivery attempt so a hung mail or SMS peer
// cannot pin a request handler.
const notifyTimeout = 10 * time.Second

type Service struct {
	registry bookling.Registry
	ledger   bookling.Ledger
	notifier bookling.Notifier
	log      *zap.SugaredLogger
}

func NewService(registry bookling.Registry, ledger bookling.Ledger, notifier bookling.Notifier, log *zap.SugaredLogger) *Service {
	return &Service{
		registry: registry,
		ledger:   ledger,
		notifier: notifier,
		log:      log,
	}
}

// SignupResult is what a new owner gets back: their business record and the
// public link customers book through.
type SignupResult struct {
	Business    bookling.Business `json:"business"`
	BookingLink string            `json:"booking_link"`
}

// Signup registers a business and sends the owner their booking link. The
// link is baseURL + "/b/" + slug. The welcome message is best-effort: a
// delivery failure is logged and the signup still succeeds.
func (s *Service) Signup(ctx context.Context, baseURL string, nb bookling.NewBusiness) (SignupResult, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "booking.signup")
	defer span.End()

	b, err := s.registry.Register(ctx, nb)
	if err != nil {
		return SignupResult{}, err
	}

	link := baseURL + "/b/" + b.Slug

	s.notify(ctx, "owner welcome", func(ctx context.Context) error {
		return s.notifier.SendOwnerWelcome(ctx, b, link)
	})

	return SignupResult{Business: b, BookingLink: link}, nil
}

// SubmitBooking records an appointment request against a registered
// business. The only failure is ErrBusinessNotFound; once the booking is in
// the ledger it stays there, whatever the notifier does. Both confirmations
// are attempted independently.
func (s *Service) SubmitBooking(ctx context.Context, nb bookling.NewBooking) (bookling.Booking, error) {
	ctx, span := otel.GetTracerProvider().Tracer("").Start(ctx, "booking.submit")
	defer span.End()

	b, err := s.registry.FindBySlug(ctx, nb.BusinessSlug)
	if err != nil {
		if errors.Is(err, bookling.ErrBusinessNotFound) {
			return bookling.Booking{}, bookling.ErrBusinessNotFound
		}
		return bookling.Booking{}, err
	}

	bk, err := s.ledger.Record(ctx, nb)
	if err != nil {
		return bookling.Booking{}, err
	}

	s.notify(ctx, "customer confirmation", func(ctx context.Context) error {
		return s.notifier.SendCustomerConfirmation(ctx, bk, b)
	})
	s.notify(ctx, "owner notification", func(ctx context.Context) error {
		return s.notifier.SendOwnerNotification(ctx, bk, b)
	})

	return bk, nil
}

// notify runs one delivery attempt under its own timeout, logging the
// outcome and never letting it affect control flow.
func (s *Service) notify(ctx context.Context, kind string, send func(context.Context) error) {
	nctx, cancel := context.WithTimeout(ctx, notifyTimeout)
	defer cancel()

	if err := send(nctx); err != nil {
		s.log.Errorw("notify", "kind", kind, "error", err.Error())
	}
}
