// Package contact turns a form submission into a templated HTML mail relayed
// through SMTP.
package contact

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tricast360/tricast360-server/internal/mailer"
)

var ErrConsentRequired = errors.New("privacy consent required")

// User-facing response texts, kept in German as the site speaks German.
const (
	MsgSuccess         = "Ihre Anfrage wurde erfolgreich gesendet!"
	MsgConsentRequired = "Datenschutz-Zustimmung erforderlich"
	MsgDeliveryFailed  = "Fehler beim Senden der Anfrage. Bitte versuchen Sie es erneut."
)

const templateName = "contact-inquiry"

type Service interface {
	Submit(ctx context.Context, sub *Submission, remoteAddr string) error
}

type service struct {
	renderer  *Renderer
	mailer    mailer.Mailer
	recipient string
	now       func() time.Time
}

func NewService(renderer *Renderer, m mailer.Mailer, recipient string) Service {
	return &service{
		renderer:  renderer,
		mailer:    m,
		recipient: recipient,
		now:       time.Now,
	}
}

// NewServiceWithClock is used by tests to pin the rendered timestamp.
func NewServiceWithClock(renderer *Renderer, m mailer.Mailer, recipient string, now func() time.Time) Service {
	return &service{
		renderer:  renderer,
		mailer:    m,
		recipient: recipient,
		now:       now,
	}
}

// Submit validates consent, renders the inquiry mail and relays it. No send
// is attempted without consent. Delivery is at-most-once.
func (s *service) Submit(ctx context.Context, sub *Submission, remoteAddr string) error {
	if !bool(sub.PrivacyConsent) {
		log.Warn().Str("email", sub.Email).Msg("contact: submission without privacy consent rejected")
		return ErrConsentRequired
	}

	formType := sub.FormType()
	now := s.now()

	ip := remoteAddr
	if ip == "" {
		ip = fallbackUnknownIP
	}

	data := map[string]string{
		"FORM_TYPE":      string(formType),
		"COMPANY":        sub.resolveCompany().Value,
		"CONTACT_PERSON": sub.resolveContactPerson().Value,
		"EMAIL":          sub.Email,
		"PHONE":          sub.resolvePhone().Value,
		"MESSAGE":        sub.resolveMessage().Value,
		"DATE":           now.Format("02.01.2006, 15:04:05"),
		"IP_ADDRESS":     ip,
		"YEAR":           strconv.Itoa(now.Year()),
	}

	html, err := s.renderer.Render(templateName, data)
	if err != nil {
		log.Error().Err(err).Msg("contact: failed to render inquiry template")
		return fmt.Errorf("contact: failed to render inquiry template: %w", err)
	}

	msg := mailer.Message{
		To:      s.recipient,
		ReplyTo: sub.Email,
		Subject: fmt.Sprintf("Neue %s - TRICAST360 Website", formType),
		HTML:    html,
	}

	if err := s.mailer.Send(ctx, msg); err != nil {
		log.Error().Err(err).Str("form_type", string(formType)).Msg("contact: failed to relay inquiry mail")
		return fmt.Errorf("contact: failed to relay inquiry mail: %w", err)
	}

	log.Info().Str("form_type", string(formType)).Str("reply_to", sub.Email).Msg("contact: inquiry mail sent")

	return nil
}
