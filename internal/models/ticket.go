package models

// Ticket statuses. A cancelled ticket keeps every other field frozen.
const (
	StatusConfirmed = "CONFIRMED"
	StatusCancelled = "CANCELLED"
)

// Ticket is the persisted booking record. JSON field names match the
// on-disk tickets document, which external tooling reads directly.
type Ticket struct {
	PNR         string `json:"PNR"`
	User        string `json:"User"`
	Name        string `json:"Name"`
	From        string `json:"From"`
	To          string `json:"To"`
	Mobile      string `json:"Mobile"`
	Age         int    `json:"Age"`
	Nationality string `json:"Nationality"`
	Address     string `json:"Address"`
	JourneyDate string `json:"Journey Date"` // DD-MM-YYYY
	Train       string `json:"Train"`
	TrainNo     string `json:"Train No"`
	Class       string `json:"Class"`
	Fare        int    `json:"Fare"`
	Departure   string `json:"Departure"`
	Arrival     string `json:"Arrival"`
	BookingTime string `json:"Booking Time"` // DD-MM-YYYY HH:MM
	Status      string `json:"Status"`
}

// IsConfirmed reports whether the ticket still holds its seat claim.
func (t Ticket) IsConfirmed() bool {
	return t.Status == StatusConfirmed
}
