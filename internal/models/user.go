package models

// User is the persisted account record in the users document, keyed by
// lowercased email. Password holds a bcrypt hash, never the raw credential.
type User struct {
	Password string   `json:"password"`
	Bookings []string `json:"bookings"`
}
