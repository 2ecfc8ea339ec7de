// Package notify delivers booking confirmations over email (SendGrid)
// and WhatsApp (Twilio). Everything here is best effort: a failed
// delivery is logged and the appointment stands.
package notify

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/officinadeltaglio/barbershop-api/internal/config"
	"github.com/officinadeltaglio/barbershop-api/internal/models"
	"github.com/officinadeltaglio/barbershop-api/internal/timezone"
)

type Service struct {
	cfg *config.Config
}

func New(cfg *config.Config) *Service {
	return &Service{cfg: cfg}
}

// BookingConfirmed fires the confirmation email and WhatsApp message
// in the background and returns immediately.
func (s *Service) BookingConfirmed(ap *models.Appointment, svc *models.Service, cancelURL string) {
	body := BookingMessage(ap, svc, cancelURL)

	go func() {
		if ap.ClientEmail != "" {
			if err := s.sendEmail(
				ap.ClientEmail,
				ap.ClientName,
				"La tua prenotazione è confermata",
				body,
			); err != nil {
				log.Printf("notify: email for appointment %d failed: %v", ap.ID, err)
			}
		}

		if err := s.sendWhatsApp(ap.ClientPhone, body); err != nil {
			log.Printf("notify: whatsapp for appointment %d failed: %v", ap.ID, err)
		}
	}()
}

func (s *Service) BookingCancelled(ap *models.Appointment) {
	msg := fmt.Sprintf(
		"La tua prenotazione del %s alle %s è stata annullata.",
		timezone.DateKey(ap.Date, timezone.Location(s.cfg.Timezone)),
		ap.Time,
	)

	go func() {
		if ap.ClientEmail != "" {
			if err := s.sendEmail(ap.ClientEmail, ap.ClientName, "Prenotazione annullata", msg); err != nil {
				log.Printf("notify: cancel email for appointment %d failed: %v", ap.ID, err)
			}
		}
	}()
}

func (s *Service) sendEmail(to, toName, subject, body string) error {
	if s.cfg.SendgridAPIKey == "" || s.cfg.SendgridFromEmail == "" {
		return fmt.Errorf("sendgrid not configured")
	}

	from := sgmail.NewEmail(s.cfg.SendgridFromName, s.cfg.SendgridFromEmail)
	dest := sgmail.NewEmail(toName, to)
	message := sgmail.NewSingleEmail(from, subject, dest, body, "")

	client := sendgrid.NewSendClient(s.cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (s *Service) sendWhatsApp(toPhone, body string) error {
	if s.cfg.TwilioAccountSID == "" || s.cfg.TwilioAuthToken == "" || s.cfg.TwilioWhatsAppFrom == "" {
		return fmt.Errorf("twilio not configured")
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: s.cfg.TwilioAccountSID,
		Password: s.cfg.TwilioAuthToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + normalizePhone(toPhone))
	params.SetFrom("whatsapp:" + s.cfg.TwilioWhatsAppFrom)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	return nil
}

// BookingMessage is the text shared by every outbound channel and by
// the prefilled wa.me link in the booking response.
func BookingMessage(ap *models.Appointment, svc *models.Service, cancelURL string) string {
	return fmt.Sprintf(
		"Ciao %s! La tua prenotazione per %s è confermata per il %s alle %s. Per annullare: %s",
		ap.ClientName,
		svc.Name,
		ap.Date.Format("02/01/2006"),
		ap.Time,
		cancelURL,
	)
}

// WhatsAppLink builds a click-to-chat wa.me URL with the message
// prefilled; returned to the caller, nothing is sent.
func WhatsAppLink(phone, text string) string {
	digits := strings.TrimPrefix(normalizePhone(phone), "+")
	if digits == "" {
		return ""
	}
	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(text)
}

// normalizePhone strips spacing and defaults bare national numbers to
// the Italian prefix.
func normalizePhone(phone string) string {
	p := strings.ReplaceAll(strings.TrimSpace(phone), " ", "")
	if p == "" {
		return ""
	}
	if strings.HasPrefix(p, "00") {
		return "+" + p[2:]
	}
	if !strings.HasPrefix(p, "+") {
		return "+39" + p
	}
	return p
}
