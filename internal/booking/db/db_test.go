package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railbooking/internal/booking/db"
	"railbooking/internal/models"
	"railbooking/internal/storage"
)

func sampleTicket(pnr string) models.Ticket {
	return models.Ticket{
		PNR: pnr, User: "a@b.com", Name: "Asha Verma",
		From: "Delhi", To: "Mumbai", Mobile: "9876543210", Age: 34,
		JourneyDate: "15-04-2025", Train: "Express A", TrainNo: "T101",
		Class: "SL", Fare: 600, Status: models.StatusConfirmed,
	}
}

func TestCreateAndGet(t *testing.T) {
	d, err := db.NewDB(storage.NewMemoryStore(), "tickets.json")
	require.NoError(t, err)

	require.NoError(t, d.CreateTicket(sampleTicket("1111111111111")))

	ticket, err := d.GetTicketByPNR("1111111111111")
	require.NoError(t, err)
	assert.Equal(t, "Asha Verma", ticket.Name)

	_, err = d.GetTicketByPNR("2222222222222")
	assert.ErrorIs(t, err, db.ErrTicketNotFound)
}

func TestUpdateRequiresExistingTicket(t *testing.T) {
	d, err := db.NewDB(storage.NewMemoryStore(), "tickets.json")
	require.NoError(t, err)

	err = d.UpdateTicket(sampleTicket("1111111111111"))
	assert.ErrorIs(t, err, db.ErrTicketNotFound)

	require.NoError(t, d.CreateTicket(sampleTicket("1111111111111")))
	updated := sampleTicket("1111111111111")
	updated.Status = models.StatusCancelled
	require.NoError(t, d.UpdateTicket(updated))

	ticket, _ := d.GetTicketByPNR("1111111111111")
	assert.Equal(t, models.StatusCancelled, ticket.Status)
}

func TestDeleteToleratesAbsentPNR(t *testing.T) {
	d, err := db.NewDB(storage.NewMemoryStore(), "tickets.json")
	require.NoError(t, err)

	assert.NoError(t, d.DeleteTicket("1111111111111"))

	require.NoError(t, d.CreateTicket(sampleTicket("1111111111111")))
	require.NoError(t, d.DeleteTicket("1111111111111"))
	assert.False(t, d.PNRExists("1111111111111"))
}

func TestDocumentRoundTrip(t *testing.T) {
	docs := storage.NewMemoryStore()

	d, err := db.NewDB(docs, "tickets.json")
	require.NoError(t, err)
	require.NoError(t, d.CreateTicket(sampleTicket("1111111111111")))

	reloaded, err := db.NewDB(docs, "tickets.json")
	require.NoError(t, err)
	ticket, err := reloaded.GetTicketByPNR("1111111111111")
	require.NoError(t, err)
	assert.Equal(t, 600, ticket.Fare)
	assert.Equal(t, "15-04-2025", ticket.JourneyDate)
}
