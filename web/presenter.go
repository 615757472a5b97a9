// Package web is the default Presenter: embedded html/template pages for
// the landing, booking form and confirmation screens.
package web

import (
	"embed"
	"html/template"
	"io"

	"github.com/bookling/bookling"
)

//go:embed templates
var templates embed.FS

// Services is the fixed list offered on the booking form. The ledger does
// not enforce it; the form just offers these choices.
var Services = []string{"Haircut", "Beard Trim", "Shave", "Haircut & Beard"}

type Presenter struct {
	tmpl *template.Template
}

var _ bookling.Presenter = (*Presenter)(nil)

func NewPresenter() *Presenter {
	return &Presenter{
		tmpl: template.Must(template.ParseFS(templates, "templates/*.html")),
	}
}

func (p *Presenter) Landing(w io.Writer) error {
	return p.tmpl.ExecuteTemplate(w, "landing.html", nil)
}

func (p *Presenter) BookingForm(w io.Writer, b bookling.Business) error {
	data := struct {
		Business bookling.Business
		Services []string
	}{Business: b, Services: Services}
	return p.tmpl.ExecuteTemplate(w, "booking_form.html", data)
}

func (p *Presenter) SignupConfirmation(w io.Writer, b bookling.Business, bookingLink string) error {
	data := struct {
		Business    bookling.Business
		BookingLink string
	}{Business: b, BookingLink: bookingLink}
	return p.tmpl.ExecuteTemplate(w, "signup_confirmation.html", data)
}

func (p *Presenter) BookingConfirmation(w io.Writer, bk bookling.Booking, b bookling.Business) error {
	data := struct {
		Booking  bookling.Booking
		Business bookling.Business
	}{Booking: bk, Business: b}
	return p.tmpl.ExecuteTemplate(w, "booking_confirmation.html", data)
}
