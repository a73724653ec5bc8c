package db

import (
	"errors"
	"fmt"
	"sync"

	"railbooking/internal/models"
	"railbooking/internal/storage"
)

// ErrTicketNotFound is returned for a PNR with no record in the ledger.
var ErrTicketNotFound = errors.New("ticket not found")

// DB keeps the tickets document, keyed by PNR, and rewrites it in full on
// every mutation.
type DB struct {
	mu       sync.Mutex
	tickets  map[string]models.Ticket
	docs     storage.DocumentStore
	document string
}

// NewDB loads the tickets document. A missing document starts empty.
func NewDB(docs storage.DocumentStore, document string) (*DB, error) {
	tickets := make(map[string]models.Ticket)
	if err := docs.Load(document, &tickets); err != nil {
		return nil, fmt.Errorf("failed to load tickets: %w", err)
	}
	return &DB{tickets: tickets, docs: docs, document: document}, nil
}

func (d *DB) CreateTicket(ticket models.Ticket) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tickets[ticket.PNR] = ticket
	return d.save()
}

func (d *DB) GetTicketByPNR(pnr string) (*models.Ticket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	ticket, ok := d.tickets[pnr]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrTicketNotFound, pnr)
	}
	return &ticket, nil
}

func (d *DB) UpdateTicket(ticket models.Ticket) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tickets[ticket.PNR]; !ok {
		return fmt.Errorf("%w: %s", ErrTicketNotFound, ticket.PNR)
	}
	d.tickets[ticket.PNR] = ticket
	return d.save()
}

// DeleteTicket removes a record. Deleting an absent PNR is not an error;
// bulk clears tolerate stale references.
func (d *DB) DeleteTicket(pnr string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.tickets[pnr]; !ok {
		return nil
	}
	delete(d.tickets, pnr)
	return d.save()
}

func (d *DB) PNRExists(pnr string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.tickets[pnr]
	return ok
}

func (d *DB) save() error {
	if err := d.docs.Save(d.document, d.tickets); err != nil {
		return fmt.Errorf("failed to save tickets: %w", err)
	}
	return nil
}
