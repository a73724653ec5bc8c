package models

import (
	"time"

	"github.com/google/uuid"
)

// Booking lifecycle event types published to Kafka.
const (
	EventTicketBooked    = "ticket_booked"
	EventTicketUpdated   = "ticket_updated"
	EventTicketCancelled = "ticket_cancelled"
)

// BookingEvent is the message body streamed on ticket lifecycle changes.
type BookingEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	PNR       string    `json:"pnr"`
	User      string    `json:"user"`
	TrainNo   string    `json:"train_no"`
	Class     string    `json:"class"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// NewBookingEvent stamps a fresh event with an ID and the current time.
func NewBookingEvent(eventType string, ticket Ticket) BookingEvent {
	return BookingEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		PNR:       ticket.PNR,
		User:      ticket.User,
		TrainNo:   ticket.TrainNo,
		Class:     ticket.Class,
		Status:    ticket.Status,
		Timestamp: time.Now().UTC(),
	}
}
