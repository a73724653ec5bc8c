package qr

import (
	"github.com/skip2/go-qrcode"

	"railbooking/internal/models"
	"railbooking/internal/payload"
)

// Generator encodes ticket payloads as PNG QR images.
type Generator struct {
	size int
}

func NewGenerator() *Generator {
	return &Generator{size: 256}
}

// GenerateTicketQR encodes the ticket's display payload. Scanning the image
// yields the same text block the email carries.
func (g *Generator) GenerateTicketQR(ticket models.Ticket) ([]byte, error) {
	return qrcode.Encode(payload.Display(ticket), qrcode.Medium, g.size)
}
