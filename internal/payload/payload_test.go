package payload_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"railbooking/internal/models"
	"railbooking/internal/payload"
)

func sampleTicket() models.Ticket {
	return models.Ticket{
		PNR:         "1234567890123",
		User:        "a@b.com",
		Name:        "Asha Verma",
		From:        "Delhi",
		To:          "Mumbai",
		JourneyDate: "15-04-2025",
		Train:       "Express A",
		TrainNo:     "T101",
		Class:       "SL",
		Fare:        600,
		Status:      models.StatusConfirmed,
	}
}

func TestDisplayFieldOrder(t *testing.T) {
	want := "PNR: 1234567890123\n" +
		"Name: Asha Verma\n" +
		"Train: Express A (T101)\n" +
		"From: Delhi to Mumbai\n" +
		"Class: SL\n" +
		"Fare: Rs.600\n" +
		"Journey Date: 15-04-2025\n" +
		"Status: CONFIRMED"

	assert.Equal(t, want, payload.Display(sampleTicket()))
}

func TestDisplayIsDeterministic(t *testing.T) {
	a := payload.Display(sampleTicket())
	b := payload.Display(sampleTicket())
	assert.Equal(t, a, b, "identical fields must produce byte-identical output")
}

func TestDisplayReflectsStatus(t *testing.T) {
	ticket := sampleTicket()
	ticket.Status = models.StatusCancelled
	assert.Contains(t, payload.Display(ticket), "Status: CANCELLED")
}
