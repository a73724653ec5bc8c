package identity

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"railbooking/internal/models"
	"railbooking/internal/rules"
	"railbooking/internal/storage"
)

var (
	ErrAlreadyExists  = errors.New("account already exists")
	ErrInvalidEmail   = errors.New("invalid email address")
	ErrNotFound       = errors.New("account not found")
	ErrBadCredentials = errors.New("invalid email or password")
)

// Store holds registered accounts keyed by lowercased email and persists the
// full users document on every mutation.
type Store struct {
	mu       sync.Mutex
	users    map[string]*models.User
	docs     storage.DocumentStore
	document string
}

// NewStore loads the users document. A missing document starts empty.
func NewStore(docs storage.DocumentStore, document string) (*Store, error) {
	users := make(map[string]*models.User)
	if err := docs.Load(document, &users); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}
	return &Store{users: users, docs: docs, document: document}, nil
}

// Normalize lowercases and trims an email address.
func Normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates an account with a bcrypt-hashed password.
func (s *Store) Register(email, password string) error {
	email = Normalize(email)
	if !rules.ValidEmail(email) {
		return fmt.Errorf("%w: %s", ErrInvalidEmail, email)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	s.users[email] = &models.User{Password: string(hash), Bookings: []string{}}
	return s.save()
}

// Exists reports whether an account is registered for the email. The login
// flow uses this to short-circuit OTP issuance for unknown accounts.
func (s *Store) Exists(email string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[Normalize(email)]
	return ok
}

// Authenticate checks the password against the stored hash.
func (s *Store) Authenticate(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[Normalize(email)]
	if !ok {
		return ErrBadCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return ErrBadCredentials
	}
	return nil
}

// Tickets returns the account's owned PNRs in booking order.
func (s *Store) Tickets(email string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[Normalize(email)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	return append([]string(nil), user.Bookings...), nil
}

// AppendTicket records ownership of a newly booked PNR.
func (s *Store) AppendTicket(email, pnr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[Normalize(email)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	user.Bookings = append(user.Bookings, pnr)
	return s.save()
}

// RemoveTicket drops a PNR from the account's list. Removing an absent PNR
// is not an error.
func (s *Store) RemoveTicket(email, pnr string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[Normalize(email)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	kept := user.Bookings[:0]
	for _, owned := range user.Bookings {
		if owned != pnr {
			kept = append(kept, owned)
		}
	}
	user.Bookings = kept
	return s.save()
}

// ClearTickets empties the account's ticket list.
func (s *Store) ClearTickets(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[Normalize(email)]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, email)
	}
	user.Bookings = []string{}
	return s.save()
}

func (s *Store) save() error {
	if err := s.docs.Save(s.document, s.users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}
	return nil
}
