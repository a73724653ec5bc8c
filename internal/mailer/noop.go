package mailer

import (
	"time"

	"railbooking/internal/logger"
	"railbooking/internal/models"
)

// LogMailer drops messages on the floor and logs them instead. Used when
// SMTP is disabled so local runs don't need a mail relay.
type LogMailer struct {
	Logger *logger.Logger
}

func (m *LogMailer) Send(to, subject, body string, attachments ...Attachment) error {
	m.Logger.LogMail("SKIPPED", to, subject)
	return nil
}

func (m *LogMailer) SendOTP(email, code string, validFor time.Duration) error {
	m.Logger.LogMail("OTP", email, "code "+code+" (delivery disabled)")
	return nil
}

func (m *LogMailer) SendTicket(to string, ticket models.Ticket, qrPNG []byte) error {
	m.Logger.LogMail("TICKET", to, "PNR "+ticket.PNR+" (delivery disabled)")
	return nil
}
