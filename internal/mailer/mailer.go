package mailer

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"time"

	"railbooking/internal/config"
	"railbooking/internal/models"
	"railbooking/internal/payload"
)

// Attachment is a file carried with a message.
type Attachment struct {
	Filename string
	MIMEType string
	Data     []byte
}

// Mailer is the outbound mail transport.
type Mailer interface {
	Send(to, subject, body string, attachments ...Attachment) error
	SendOTP(email, code string, validFor time.Duration) error
	SendTicket(to string, ticket models.Ticket, qrPNG []byte) error
}

// SMTPMailer sends through an authenticated SMTP relay.
type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, body string, attachments ...Attachment) error {
	if m.cfg.SMTPUsername == "" || m.cfg.SMTPPassword == "" {
		return fmt.Errorf("email credentials are not configured")
	}

	msg, err := buildMessage(m.cfg.FromAddress, to, subject, body, attachments)
	if err != nil {
		return fmt.Errorf("failed to build message: %w", err)
	}

	addr := m.cfg.SMTPHost + ":" + m.cfg.SMTPPort
	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)
	if err := smtp.SendMail(addr, auth, m.cfg.FromAddress, []string{to}, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}
	return nil
}

func (m *SMTPMailer) SendOTP(email, code string, validFor time.Duration) error {
	body := fmt.Sprintf(
		"Indian Railway Booking System\n\n"+
			"Your One Time Password (OTP) is: %s\n"+
			"This code is valid for %d minutes.\n\n"+
			"If you did not request this, please ignore this email.",
		code, int(validFor.Minutes()))
	return m.Send(email, "Your OTP for Railway Booking", body)
}

func (m *SMTPMailer) SendTicket(to string, ticket models.Ticket, qrPNG []byte) error {
	body := fmt.Sprintf(
		"Thank you for booking with Indian Railway Booking System.\n\n"+
			"Your ticket details are below:\n\n"+
			"%s\n"+
			"Departure: %s\n"+
			"Arrival: %s\n"+
			"Booking Time: %s\n\n"+
			"Scan the attached QR code at the station for quick access to your ticket.\n\n"+
			"Have a safe journey!",
		payload.Display(ticket), ticket.Departure, ticket.Arrival, ticket.BookingTime)

	var attachments []Attachment
	if len(qrPNG) > 0 {
		attachments = append(attachments, Attachment{
			Filename: "ticket_qr.png",
			MIMEType: "image/png",
			Data:     qrPNG,
		})
	}
	return m.Send(to, "Your Railway E-Ticket", body, attachments...)
}

func buildMessage(from, to, subject, body string, attachments []Attachment) ([]byte, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	fmt.Fprintf(&buf, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", writer.Boundary())

	textHeader := textproto.MIMEHeader{}
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	textPart, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, err
	}
	if _, err := textPart.Write([]byte(body)); err != nil {
		return nil, err
	}

	for _, att := range attachments {
		header := textproto.MIMEHeader{}
		header.Set("Content-Type", att.MIMEType)
		header.Set("Content-Transfer-Encoding", "base64")
		header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", att.Filename))
		part, err := writer.CreatePart(header)
		if err != nil {
			return nil, err
		}
		encoded := base64.StdEncoding.EncodeToString(att.Data)
		if _, err := part.Write([]byte(encoded)); err != nil {
			return nil, err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
