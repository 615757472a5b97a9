package memory

import (
	"context"
	"sync"
	"time"

	"github.com/bookling/bookling"
	"github.com/google/uuid"
)

// Ledger is the append-only in-memory booking store.
type Ledger struct {
	mu       sync.Mutex
	bookings []bookling.Booking
}

func NewLedger() *Ledger {
	return &Ledger{}
}

var _ bookling.Ledger = (*Ledger)(nil)

// Record stamps an ID and creation time and appends. It does not verify the
// business slug exists; the booking service checks that before calling.
func (l *Ledger) Record(ctx context.Context, nb bookling.NewBooking) (bookling.Booking, error) {
	bk := bookling.Booking{
		ID:            uuid.NewString(),
		BusinessSlug:  nb.BusinessSlug,
		CustomerName:  nb.CustomerName,
		CustomerEmail: nb.CustomerEmail,
		Service:       nb.Service,
		Date:          nb.Date,
		Time:          nb.Time,
		CreatedAt:     time.Now().UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.bookings = append(l.bookings, bk)
	return bk, nil
}

// ListByBusiness returns the bookings for a slug in insertion order.
func (l *Ledger) ListByBusiness(ctx context.Context, s string) ([]bookling.Booking, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []bookling.Booking
	for _, bk := range l.bookings {
		if bk.BusinessSlug == s {
			out = append(out, bk)
		}
	}
	return out, nil
}

// Len reports the total number of recorded bookings.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.bookings)
}
