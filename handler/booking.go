// Package handler exposes the booking engine over HTTP. Input arrives as
// form-encoded key/value pairs; output is HTML rendered by the Presenter,
// except the plain-text 404 for an unknown slug.
package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/bookling/bookling"
	"github.com/bookling/bookling/booking"
)

type BookingHandler struct {
	service   *booking.Service
	registry  bookling.Registry
	presenter bookling.Presenter
	publicURL string
	log       *zap.SugaredLogger
}

// NewBookingHandler wires the HTTP surface. publicURL, when set, overrides
// the per-request scheme://host used to build booking links.
func NewBookingHandler(service *booking.Service, registry bookling.Registry, presenter bookling.Presenter, publicURL string, log *zap.SugaredLogger) *BookingHandler {
	return &BookingHandler{
		service:   service,
		registry:  registry,
		presenter: presenter,
		publicURL: publicURL,
		log:       log,
	}
}

// Landing serves the signup page.
func (bh BookingHandler) Landing(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := respondHTML(ctx, rw, http.StatusOK, bh.presenter.Landing); err != nil {
		bh.log.Errorw("Landing", "error", err.Error())
	}
}

// BookingPage serves the booking form for /b/{slug}.
func (bh BookingHandler) BookingPage(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	slug := chi.URLParam(r, "slug")
	b, err := bh.registry.FindBySlug(ctx, slug)
	if err != nil {
		bh.log.Errorw("BookingPage", "slug", slug, "error", err.Error())
		respondText(ctx, rw, http.StatusNotFound, "business not found")
		return
	}

	err = respondHTML(ctx, rw, http.StatusOK, func(w io.Writer) error {
		return bh.presenter.BookingForm(w, b)
	})
	if err != nil {
		bh.log.Errorw("BookingPage", "error", err.Error())
	}
}

// Signup registers a business. It never fails: missing fields are stored as
// empty strings and the owner still gets a page with their booking link.
func (bh BookingHandler) Signup(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		bh.log.Errorw("Signup", "error", err.Error())
		respondText(ctx, rw, http.StatusBadRequest, "bad form data")
		return
	}

	nb := bookling.NewBusiness{
		OwnerName:    firstValue(r, "name", "ownerName"),
		BusinessName: r.FormValue("businessName"),
		OwnerEmail:   firstValue(r, "email", "ownerEmail"),
		Phone:        r.FormValue("phone"),
	}

	res, err := bh.service.Signup(ctx, bh.baseURL(r), nb)
	if err != nil {
		bh.log.Errorw("Signup", "error", err.Error())
		respondText(ctx, rw, http.StatusInternalServerError, "signup failed")
		return
	}

	err = respondHTML(ctx, rw, http.StatusOK, func(w io.Writer) error {
		return bh.presenter.SignupConfirmation(w, res.Business, res.BookingLink)
	})
	if err != nil {
		bh.log.Errorw("Signup", "error", err.Error())
	}
}

// Book records a booking. Unknown business slugs get a plain-text 404.
func (bh BookingHandler) Book(rw http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		bh.log.Errorw("Book", "error", err.Error())
		respondText(ctx, rw, http.StatusBadRequest, "bad form data")
		return
	}

	nb := bookling.NewBooking{
		BusinessSlug:  r.FormValue("businessSlug"),
		CustomerName:  r.FormValue("customerName"),
		CustomerEmail: r.FormValue("customerEmail"),
		Service:       r.FormValue("service"),
		Date:          r.FormValue("date"),
		Time:          r.FormValue("time"),
	}

	bk, err := bh.service.SubmitBooking(ctx, nb)
	if err != nil {
		bh.log.Errorw("Book", "slug", nb.BusinessSlug, "error", err.Error())
		switch {
		case errors.Is(err, bookling.ErrBusinessNotFound):
			respondText(ctx, rw, http.StatusNotFound, "business not found")
		default:
			respondText(ctx, rw, http.StatusInternalServerError, "booking failed")
		}
		return
	}

	b, err := bh.registry.FindBySlug(ctx, bk.BusinessSlug)
	if err != nil {
		// registered businesses are never removed, so this lookup
		// cannot miss once SubmitBooking succeeded
		bh.log.Errorw("Book", "slug", bk.BusinessSlug, "error", err.Error())
		respondText(ctx, rw, http.StatusInternalServerError, "booking failed")
		return
	}

	err = respondHTML(ctx, rw, http.StatusOK, func(w io.Writer) error {
		return bh.presenter.BookingConfirmation(w, bk, b)
	})
	if err != nil {
		bh.log.Errorw("Book", "error", err.Error())
	}
}

// Health reports liveness.
func (bh BookingHandler) Health(rw http.ResponseWriter, r *http.Request) {
	respondText(r.Context(), rw, http.StatusOK, "ok")
}

// baseURL picks the configured public URL, or reconstructs scheme://host
// from the request so the booking link matches what the browser hit.
func (bh BookingHandler) baseURL(r *http.Request) string {
	if bh.publicURL != "" {
		return bh.publicURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
