// Package payload renders the canonical text block for a ticket. The same
// bytes go into the QR code and the e-ticket email, and station scanners
// parse them back, so the output must be byte-stable for identical fields.
package payload

import (
	"fmt"
	"strings"

	"railbooking/internal/models"
)

// Display serializes a ticket in fixed field order.
func Display(t models.Ticket) string {
	var b strings.Builder
	fmt.Fprintf(&b, "PNR: %s\n", t.PNR)
	fmt.Fprintf(&b, "Name: %s\n", t.Name)
	fmt.Fprintf(&b, "Train: %s (%s)\n", t.Train, t.TrainNo)
	fmt.Fprintf(&b, "From: %s to %s\n", t.From, t.To)
	fmt.Fprintf(&b, "Class: %s\n", t.Class)
	fmt.Fprintf(&b, "Fare: Rs.%d\n", t.Fare)
	fmt.Fprintf(&b, "Journey Date: %s\n", t.JourneyDate)
	fmt.Fprintf(&b, "Status: %s", t.Status)
	return b.String()
}
