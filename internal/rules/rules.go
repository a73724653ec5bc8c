package rules

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrUnknownClass is returned for a class code outside the fare chart.
var ErrUnknownClass = errors.New("unknown travel class")

// FareChart maps class code to fare in rupees.
var FareChart = map[string]int{
	"SL": 600,
	"3A": 1000,
	"2A": 1500,
}

// MaxAdvanceDays is how far ahead a journey may be booked, inclusive.
const MaxAdvanceDays = 60

const (
	// JourneyDateLayout is the stored/display format for journey dates.
	JourneyDateLayout = "02-01-2006"
	// JourneyDateInputLayout is the wire format accepted from callers.
	JourneyDateInputLayout = "2006-01-02"
)

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// FareFor returns the fare for a class code.
func FareFor(classCode string) (int, error) {
	fare, ok := FareChart[classCode]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownClass, classCode)
	}
	return fare, nil
}

// ValidEmail checks the address shape: local part, single @, dotted domain.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// JourneyDateValid reports whether the journey falls within the booking
// window: today up to MaxAdvanceDays ahead, both ends inclusive.
func JourneyDateValid(journey, today time.Time) bool {
	j := truncateToDay(journey)
	t := truncateToDay(today)
	delta := int(j.Sub(t).Hours() / 24)
	return delta >= 0 && delta <= MaxAdvanceDays
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseJourneyDate parses the wire format (YYYY-MM-DD).
func ParseJourneyDate(s string) (time.Time, error) {
	return time.Parse(JourneyDateInputLayout, s)
}

// FormatJourneyDate renders a date in the stored format (DD-MM-YYYY).
func FormatJourneyDate(t time.Time) string {
	return t.Format(JourneyDateLayout)
}

// Passenger holds the caller-supplied passenger fields for validation.
type Passenger struct {
	Name        string
	Age         int
	Mobile      string
	Nationality string
	Address     string
	From        string
	To          string
}

// ValidationError accumulates per-field problems. No state was changed.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Problems, "; ")
}

// ValidatePassenger checks required fields and the age range.
func ValidatePassenger(p Passenger) error {
	var problems []string
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is required")
	}
	if strings.TrimSpace(p.Mobile) == "" {
		problems = append(problems, "mobile is required")
	}
	if strings.TrimSpace(p.From) == "" {
		problems = append(problems, "from station is required")
	}
	if strings.TrimSpace(p.To) == "" {
		problems = append(problems, "to station is required")
	}
	if p.Age < 1 || p.Age > 120 {
		problems = append(problems, "age must be between 1 and 120")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
