package account

import "time"

// User represents a registered account. The donor directory is a filtered
// projection of this document, not a separately owned record.
type User struct {
	ID           string
	Name         string
	Email        string
	Phone        string
	PasswordHash []byte
	BloodGroup   string
	Address      string
	City         string
	State        string
	IsDonor      bool
	IsDisabled   bool
	Photo        string
	CreatedAt    time.Time
}

// Credentials carries a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// Profile captures the mutable profile fields.
type Profile struct {
	Name       string
	Email      string
	Phone      string
	BloodGroup string
	Address    string
	City       string
	State      string
}
