package booking

import (
	"errors"
	"fmt"
	"time"

	"railbooking/internal/identity"
	"railbooking/internal/logger"
	"railbooking/internal/mailer"
	"railbooking/internal/models"
	"railbooking/internal/rules"
	"railbooking/internal/utils"
)

var (
	// ErrNotFound covers both an unknown PNR and a PNR the requester does
	// not own; the two are indistinguishable to the caller on purpose.
	ErrNotFound = errors.New("booking not found")
	// ErrInvalidState means the ticket is not in a state the operation accepts.
	ErrInvalidState = errors.New("only confirmed bookings can be cancelled")
	// ErrPNRExhausted means PNR generation kept colliding with the ledger.
	ErrPNRExhausted = errors.New("could not allocate a unique PNR")
)

const (
	pnrAttempts = 5
	// Refund is 80% of the fare, expressed as numerator/denominator to
	// stay in integer rupees.
	refundNumerator   = 4
	refundDenominator = 5

	bookingTimeLayout = "02-01-2006 15:04"
)

type DBLayer interface {
	CreateTicket(ticket models.Ticket) error
	GetTicketByPNR(pnr string) (*models.Ticket, error)
	UpdateTicket(ticket models.Ticket) error
	DeleteTicket(pnr string) error
	PNRExists(pnr string) bool
}

type Inventory interface {
	Find(trainNo string) (models.Train, error)
	Reserve(trainNo, classCode string) error
	Release(trainNo, classCode string) error
}

type Accounts interface {
	Tickets(email string) ([]string, error)
	AppendTicket(email, pnr string) error
	ClearTickets(email string) error
}

type QRGenerator interface {
	GenerateTicketQR(ticket models.Ticket) ([]byte, error)
}

type Publisher interface {
	PublishTicketBooked(ticket models.Ticket) error
	PublishTicketUpdated(ticket models.Ticket) error
	PublishTicketCancelled(ticket models.Ticket) error
}

// Service is the ticket ledger. It owns the seat-adjustment protocol: every
// ticket write that depends on a seat count pairs with a reserve or release,
// and compensates when the write fails.
type Service struct {
	DB        DBLayer
	Inventory Inventory
	Accounts  Accounts
	Mailer    mailer.Mailer
	QR        QRGenerator
	Publisher Publisher
	Logger    *logger.Logger

	now func() time.Time
}

func NewService(db DBLayer, inv Inventory, accounts Accounts, m mailer.Mailer, qr QRGenerator, pub Publisher, log *logger.Logger) *Service {
	return &Service{
		DB:        db,
		Inventory: inv,
		Accounts:  accounts,
		Mailer:    m,
		QR:        qr,
		Publisher: pub,
		Logger:    log,
		now:       time.Now,
	}
}

// BookRequest carries everything needed to issue a ticket.
type BookRequest struct {
	Email       string
	Passenger   rules.Passenger
	TrainNo     string
	Class       string
	JourneyDate string // YYYY-MM-DD
}

// BookResult is a successful booking, with a warning when the e-ticket email
// could not be delivered after the booking was already persisted.
type BookResult struct {
	Ticket  models.Ticket
	Warning string
}

// Book validates, reserves a seat, and persists the ticket. Validation
// failures abort before any seat is touched; a persistence failure after the
// reservation releases the seat again.
func (s *Service) Book(req BookRequest) (*BookResult, error) {
	email := identity.Normalize(req.Email)

	if err := rules.ValidatePassenger(req.Passenger); err != nil {
		return nil, err
	}
	journey, err := rules.ParseJourneyDate(req.JourneyDate)
	if err != nil {
		return nil, &rules.ValidationError{Problems: []string{"journey date must be YYYY-MM-DD"}}
	}
	if !rules.JourneyDateValid(journey, s.now()) {
		return nil, &rules.ValidationError{Problems: []string{
			fmt.Sprintf("journey date must be within %d days from today", rules.MaxAdvanceDays)}}
	}

	train, err := s.Inventory.Find(req.TrainNo)
	if err != nil {
		return nil, err
	}
	fare, err := rules.FareFor(req.Class)
	if err != nil {
		return nil, err
	}

	if err := s.Inventory.Reserve(req.TrainNo, req.Class); err != nil {
		return nil, err
	}

	pnr, err := s.allocatePNR()
	if err != nil {
		s.compensate(req.TrainNo, req.Class)
		return nil, err
	}

	ticket := models.Ticket{
		PNR:         pnr,
		User:        email,
		Name:        req.Passenger.Name,
		From:        req.Passenger.From,
		To:          req.Passenger.To,
		Mobile:      req.Passenger.Mobile,
		Age:         req.Passenger.Age,
		Nationality: req.Passenger.Nationality,
		Address:     req.Passenger.Address,
		JourneyDate: rules.FormatJourneyDate(journey),
		Train:       train.Name,
		TrainNo:     train.TrainNo,
		Class:       req.Class,
		Fare:        fare,
		Departure:   train.Departure,
		Arrival:     train.Arrival,
		BookingTime: s.now().Format(bookingTimeLayout),
		Status:      models.StatusConfirmed,
	}

	if err := s.DB.CreateTicket(ticket); err != nil {
		s.compensate(req.TrainNo, req.Class)
		return nil, fmt.Errorf("failed to persist ticket: %w", err)
	}
	if err := s.Accounts.AppendTicket(email, pnr); err != nil {
		_ = s.DB.DeleteTicket(pnr)
		s.compensate(req.TrainNo, req.Class)
		return nil, fmt.Errorf("failed to record ticket ownership: %w", err)
	}

	s.Logger.LogBooking("BOOK", pnr, fmt.Sprintf("train %s class %s for %s", train.TrainNo, req.Class, email))

	if s.Publisher != nil {
		if err := s.Publisher.PublishTicketBooked(ticket); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish booking event for %s: %v", pnr, err))
		}
	}

	// Notification happens after the booking is durable. A transport failure
	// here is a warning on a successful result, never a rollback.
	warning := s.sendTicketMail(ticket)

	return &BookResult{Ticket: ticket, Warning: warning}, nil
}

// CancelResult carries the cancelled ticket and the display-only refund.
type CancelResult struct {
	Ticket models.Ticket
	Refund int
}

// Cancel flips a confirmed ticket to CANCELLED. The seat is not released;
// cancelled inventory is not resold. Refund is 80% of the fare snapshot.
func (s *Service) Cancel(pnr, email string) (*CancelResult, error) {
	ticket, err := s.ownedTicket(pnr, email)
	if err != nil {
		return nil, err
	}
	if !ticket.IsConfirmed() {
		return nil, ErrInvalidState
	}

	ticket.Status = models.StatusCancelled
	if err := s.DB.UpdateTicket(*ticket); err != nil {
		return nil, fmt.Errorf("failed to persist cancellation: %w", err)
	}

	refund := ticket.Fare * refundNumerator / refundDenominator
	s.Logger.LogBooking("CANCEL", pnr, fmt.Sprintf("refund Rs.%d", refund))

	if s.Publisher != nil {
		if err := s.Publisher.PublishTicketCancelled(*ticket); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish cancel event for %s: %v", pnr, err))
		}
	}

	return &CancelResult{Ticket: *ticket, Refund: refund}, nil
}

// EditRequest carries the mutable fields of a ticket. Route and mobile are
// frozen at booking time.
type EditRequest struct {
	Name        string
	Age         int
	Nationality string
	Address     string
	Class       string
	JourneyDate string // YYYY-MM-DD
}

// Edit updates passenger fields, class, and journey date, refreshing the
// fare snapshot and booking timestamp. A class change moves the seat claim:
// release old, reserve new, and re-reserve old if the new class is sold out.
func (s *Service) Edit(pnr, email string, req EditRequest) (*models.Ticket, error) {
	ticket, err := s.ownedTicket(pnr, email)
	if err != nil {
		return nil, err
	}

	merged := rules.Passenger{
		Name:        req.Name,
		Age:         req.Age,
		Mobile:      ticket.Mobile,
		Nationality: req.Nationality,
		Address:     req.Address,
		From:        ticket.From,
		To:          ticket.To,
	}
	if err := rules.ValidatePassenger(merged); err != nil {
		return nil, err
	}
	journey, err := rules.ParseJourneyDate(req.JourneyDate)
	if err != nil {
		return nil, &rules.ValidationError{Problems: []string{"journey date must be YYYY-MM-DD"}}
	}
	if !rules.JourneyDateValid(journey, s.now()) {
		return nil, &rules.ValidationError{Problems: []string{
			fmt.Sprintf("journey date must be within %d days from today", rules.MaxAdvanceDays)}}
	}
	fare, err := rules.FareFor(req.Class)
	if err != nil {
		return nil, err
	}

	oldClass := ticket.Class
	classChanged := req.Class != oldClass
	if classChanged {
		if err := s.Inventory.Release(ticket.TrainNo, oldClass); err != nil {
			return nil, fmt.Errorf("failed to release seat: %w", err)
		}
		if err := s.Inventory.Reserve(ticket.TrainNo, req.Class); err != nil {
			s.reclaim(ticket.TrainNo, oldClass)
			return nil, err
		}
	}

	ticket.Name = req.Name
	ticket.Age = req.Age
	ticket.Nationality = req.Nationality
	ticket.Address = req.Address
	ticket.Class = req.Class
	ticket.JourneyDate = rules.FormatJourneyDate(journey)
	ticket.Fare = fare
	ticket.BookingTime = s.now().Format(bookingTimeLayout)

	if err := s.DB.UpdateTicket(*ticket); err != nil {
		if classChanged {
			s.compensate(ticket.TrainNo, req.Class)
			s.reclaim(ticket.TrainNo, oldClass)
		}
		return nil, fmt.Errorf("failed to persist edit: %w", err)
	}

	s.Logger.LogBooking("EDIT", pnr, fmt.Sprintf("class %s, journey %s", ticket.Class, ticket.JourneyDate))

	if s.Publisher != nil {
		if err := s.Publisher.PublishTicketUpdated(*ticket); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("failed to publish update event for %s: %v", pnr, err))
		}
	}

	return ticket, nil
}

// ListForUser projects the account's ticket-id list through the ledger,
// skipping ids with no matching record.
func (s *Service) ListForUser(email string) ([]models.Ticket, error) {
	pnrs, err := s.Accounts.Tickets(identity.Normalize(email))
	if err != nil {
		return nil, err
	}
	tickets := make([]models.Ticket, 0, len(pnrs))
	for _, pnr := range pnrs {
		ticket, err := s.DB.GetTicketByPNR(pnr)
		if err != nil {
			continue // stale reference
		}
		tickets = append(tickets, *ticket)
	}
	return tickets, nil
}

// ClearAll removes every ticket the account owns from the ledger and empties
// the list. Seats are not released, matching the cancellation policy.
func (s *Service) ClearAll(email string) error {
	email = identity.Normalize(email)
	pnrs, err := s.Accounts.Tickets(email)
	if err != nil {
		return err
	}
	for _, pnr := range pnrs {
		if err := s.DB.DeleteTicket(pnr); err != nil {
			return fmt.Errorf("failed to delete ticket %s: %w", pnr, err)
		}
	}
	if err := s.Accounts.ClearTickets(email); err != nil {
		return err
	}
	s.Logger.LogBooking("CLEAR", email, fmt.Sprintf("%d tickets removed", len(pnrs)))
	return nil
}

// TrackByPNR is an unauthenticated lookup, as a station kiosk would do.
func (s *Service) TrackByPNR(pnr string) (*models.Ticket, error) {
	ticket, err := s.DB.GetTicketByPNR(pnr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, pnr)
	}
	return ticket, nil
}

func (s *Service) ownedTicket(pnr, email string) (*models.Ticket, error) {
	ticket, err := s.DB.GetTicketByPNR(pnr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, pnr)
	}
	if ticket.User != identity.Normalize(email) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, pnr)
	}
	return ticket, nil
}

func (s *Service) allocatePNR() (string, error) {
	for i := 0; i < pnrAttempts; i++ {
		pnr := utils.NewPNR()
		if !s.DB.PNRExists(pnr) {
			return pnr, nil
		}
	}
	return "", ErrPNRExhausted
}

// compensate undoes a reservation after a downstream failure.
func (s *Service) compensate(trainNo, classCode string) {
	if err := s.Inventory.Release(trainNo, classCode); err != nil {
		s.Logger.Error("BOOKING", fmt.Sprintf("compensating release failed for %s/%s: %v", trainNo, classCode, err))
	}
}

// reclaim re-reserves a seat that was released during a class change that
// then failed. The seat was just freed, so this should not fail.
func (s *Service) reclaim(trainNo, classCode string) {
	if err := s.Inventory.Reserve(trainNo, classCode); err != nil {
		s.Logger.Error("BOOKING", fmt.Sprintf("rollback re-reserve failed for %s/%s: %v", trainNo, classCode, err))
	}
}

func (s *Service) sendTicketMail(ticket models.Ticket) string {
	if s.Mailer == nil {
		return ""
	}
	var qrPNG []byte
	if s.QR != nil {
		var err error
		qrPNG, err = s.QR.GenerateTicketQR(ticket)
		if err != nil {
			s.Logger.Error("QR", fmt.Sprintf("failed to generate QR for %s: %v", ticket.PNR, err))
			qrPNG = nil
		}
	}
	if err := s.Mailer.SendTicket(ticket.User, ticket, qrPNG); err != nil {
		s.Logger.Error("MAIL", fmt.Sprintf("failed to email ticket %s: %v", ticket.PNR, err))
		return "ticket booked successfully, but we could not email the ticket copy"
	}
	s.Logger.LogMail("TICKET", ticket.User, "e-ticket sent for PNR "+ticket.PNR)
	return ""
}
