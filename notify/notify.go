// Package notify delivers booking emails and texts. Delivery is advisory:
// every send either works or returns an error for the caller to log, and a
// channel without credentials is simply not wired in.
package notify

import (
	"context"
	"fmt"

	"github.com/bookling/bookling"
	"go.uber.org/zap"
)

// Config carries the provider credentials. Empty credentials disable the
// corresponding channel.
type Config struct {
	SMTP SMTPConfig
	SMS  SMSConfig
}

// emailer sends one message to one address.
type emailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// texter sends one SMS to one phone number.
type texter interface {
	Send(ctx context.Context, to, body string) error
}

// Notifier fans each notification out to the configured channels.
type Notifier struct {
	email emailer
	sms   texter
}

var _ bookling.Notifier = (*Notifier)(nil)

// New builds a Notifier from whatever credentials are present. With none at
// all it degrades to a no-op.
func New(cfg Config, log *zap.SugaredLogger) *Notifier {
	n := &Notifier{}

	if cfg.SMTP.Host != "" {
		n.email = newSMTPEmailer(cfg.SMTP)
		log.Infow("notify", "channel", "email", "host", cfg.SMTP.Host)
	} else {
		log.Infow("notify", "channel", "email", "status", "disabled")
	}

	if cfg.SMS.AccountSID != "" && cfg.SMS.AuthToken != "" {
		n.sms = newSMSSender(cfg.SMS)
		log.Infow("notify", "channel", "sms", "from", cfg.SMS.From)
	} else {
		log.Infow("notify", "channel", "sms", "status", "disabled")
	}

	return n
}

func (n *Notifier) SendOwnerWelcome(ctx context.Context, b bookling.Business, bookingLink string) error {
	subject := "Your booking page is live"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking page for %s is ready. Share this link with your customers:\n\n%s\n",
		b.OwnerName, b.BusinessName, bookingLink)

	return n.deliver(ctx, b.OwnerEmail, b.Phone, subject, body)
}

func (n *Notifier) SendCustomerConfirmation(ctx context.Context, bk bookling.Booking, b bookling.Business) error {
	subject := fmt.Sprintf("Booking confirmed at %s", b.BusinessName)
	body := fmt.Sprintf(
		"Hi %s,\n\nYour %s at %s is booked for %s at %s.\n",
		bk.CustomerName, bk.Service, b.BusinessName, bk.Date, bk.Time)

	return n.deliver(ctx, bk.CustomerEmail, "", subject, body)
}

func (n *Notifier) SendOwnerNotification(ctx context.Context, bk bookling.Booking, b bookling.Business) error {
	subject := fmt.Sprintf("New booking: %s", bk.Service)
	body := fmt.Sprintf(
		"%s (%s) booked %s on %s at %s.\n",
		bk.CustomerName, bk.CustomerEmail, bk.Service, bk.Date, bk.Time)

	return n.deliver(ctx, b.OwnerEmail, b.Phone, subject, body)
}

// deliver attempts every configured channel with an address. Both channels
// are always tried; the first error wins but does not stop the other send.
func (n *Notifier) deliver(ctx context.Context, email, phone, subject, body string) error {
	var firstErr error

	if n.email != nil && email != "" {
		if err := n.email.Send(ctx, email, subject, body); err != nil {
			firstErr = fmt.Errorf("email %s: %w", email, err)
		}
	}

	if n.sms != nil && phone != "" {
		if err := n.sms.Send(ctx, phone, subject+" - "+body); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("sms %s: %w", phone, err)
		}
	}

	return firstErr
}
