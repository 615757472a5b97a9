package bookling

import (
	"context"
	"errors"
	"io"
	"time"
)

var (
	ErrBusinessNotFound = errors.New("business not found")
)

// Business is a registered business, keyed by its slug. The slug is assigned
// at signup and never changes.
type Business struct {
	Slug         string    `json:"slug"`
	OwnerName    string    `json:"owner_name"`
	BusinessName string    `json:"business_name"`
	OwnerEmail   string    `json:"owner_email"`
	Phone        string    `json:"phone"`
	CreatedAt    time.Time `json:"created_at"`
}

// NewBusiness is the signup input. Fields are stored as provided, empty
// values included.
type NewBusiness struct {
	OwnerName    string `json:"owner_name"`
	BusinessName string `json:"business_name"`
	OwnerEmail   string `json:"owner_email"`
	Phone        string `json:"phone"`
}

// Booking is one recorded appointment request. Bookings are append-only.
type Booking struct {
	ID            string    `json:"id"`
	BusinessSlug  string    `json:"business_slug"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Service       string    `json:"service"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewBooking is the booking submission input. Date and Time are kept as the
// freeform strings the customer typed.
type NewBooking struct {
	BusinessSlug  string `json:"business_slug"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
}

// Registry stores businesses keyed by slug. Register always succeeds: it
// derives a unique slug from the business name (owner name as fallback) and
// inserts atomically, so two racing signups never share a slug.
type Registry interface {
	Register(ctx context.Context, nb NewBusiness) (Business, error)
	FindBySlug(ctx context.Context, slug string) (Business, error)
}

// Ledger is the append-only collection of bookings. Record does not check
// that the slug refers to a registered business; that is the caller's job.
type Ledger interface {
	Record(ctx context.Context, nb NewBooking) (Booking, error)
	ListByBusiness(ctx context.Context, slug string) ([]Booking, error)
}

// Notifier delivers email/SMS to owners and customers. Every send is
// best-effort: callers log a returned error and move on, and a Notifier with
// no configured credentials must be a no-op, never a failure source.
type Notifier interface {
	SendOwnerWelcome(ctx context.Context, b Business, bookingLink string) error
	SendCustomerConfirmation(ctx context.Context, bk Booking, b Business) error
	SendOwnerNotification(ctx context.Context, bk Booking, b Business) error
}

// Presenter renders HTML from core data. The core never formats output
// itself.
type Presenter interface {
	Landing(w io.Writer) error
	BookingForm(w io.Writer, b Business) error
	SignupConfirmation(w io.Writer, b Business, bookingLink string) error
	BookingConfirmation(w io.Writer, bk Booking, b Business) error
}
