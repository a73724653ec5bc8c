package rules_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"railbooking/internal/rules"
)

func TestFareFor(t *testing.T) {
	fare, err := rules.FareFor("SL")
	require.NoError(t, err)
	assert.Equal(t, 600, fare)

	fare, err = rules.FareFor("3A")
	require.NoError(t, err)
	assert.Equal(t, 1000, fare)

	fare, err = rules.FareFor("2A")
	require.NoError(t, err)
	assert.Equal(t, 1500, fare)

	_, err = rules.FareFor("1A")
	assert.ErrorIs(t, err, rules.ErrUnknownClass)
}

func TestJourneyDateWindow(t *testing.T) {
	today := time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		daysOut int
		valid   bool
	}{
		{"today", 0, true},
		{"tomorrow", 1, true},
		{"last day of window", 60, true},
		{"one past the window", 61, false},
		{"yesterday", -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			journey := today.AddDate(0, 0, tt.daysOut)
			assert.Equal(t, tt.valid, rules.JourneyDateValid(journey, today))
		})
	}
}

func TestJourneyDateIgnoresTimeOfDay(t *testing.T) {
	// A journey later today is valid even if the clock time already passed.
	today := time.Date(2025, 3, 10, 23, 59, 0, 0, time.UTC)
	journey := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, rules.JourneyDateValid(journey, today))
}

func TestValidatePassenger(t *testing.T) {
	valid := rules.Passenger{
		Name: "Asha Verma", Age: 34, Mobile: "9876543210",
		Nationality: "Indian", Address: "Lucknow",
		From: "Lucknow", To: "Delhi",
	}
	assert.NoError(t, rules.ValidatePassenger(valid))

	missing := rules.Passenger{Age: 200}
	err := rules.ValidatePassenger(missing)
	require.Error(t, err)

	var validation *rules.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Len(t, validation.Problems, 5)
}

func TestValidatePassengerAgeBounds(t *testing.T) {
	p := rules.Passenger{Name: "A", Mobile: "1", From: "X", To: "Y"}

	p.Age = 1
	assert.NoError(t, rules.ValidatePassenger(p))
	p.Age = 120
	assert.NoError(t, rules.ValidatePassenger(p))
	p.Age = 0
	assert.Error(t, rules.ValidatePassenger(p))
	p.Age = 121
	assert.Error(t, rules.ValidatePassenger(p))
}

func TestValidEmail(t *testing.T) {
	assert.True(t, rules.ValidEmail("a@b.com"))
	assert.True(t, rules.ValidEmail("first.last@sub.example.co"))
	assert.False(t, rules.ValidEmail("not-an-email"))
	assert.False(t, rules.ValidEmail("missing@domain"))
	assert.False(t, rules.ValidEmail("@example.com"))
}

func TestJourneyDateFormats(t *testing.T) {
	parsed, err := rules.ParseJourneyDate("2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, "10-03-2025", rules.FormatJourneyDate(parsed))

	_, err = rules.ParseJourneyDate("10-03-2025")
	assert.Error(t, err)
}
