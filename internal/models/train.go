package models

// Train is a static catalog entry. Seats maps class code (SL/3A/2A) to the
// number of unsold seats; bookings mutate it through the inventory catalog only.
type Train struct {
	TrainNo   string         `json:"train_no"`
	Name      string         `json:"name"`
	From      string         `json:"from"`
	To        string         `json:"to"`
	Departure string         `json:"departure"`
	Arrival   string         `json:"arrival"`
	Seats     map[string]int `json:"seats"`
}

// Clone returns a deep copy so callers can't reach into the live seat map.
func (t Train) Clone() Train {
	seats := make(map[string]int, len(t.Seats))
	for class, n := range t.Seats {
		seats[class] = n
	}
	t.Seats = seats
	return t
}
