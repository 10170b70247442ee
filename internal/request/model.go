package request

import "time"

// Peer request states. pending is the only non-terminal state.
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// BloodRequest is an immutable record of a submitted need for blood.
type BloodRequest struct {
	ID         string
	Name       string
	Gender     string
	Mobile     string
	Email      string
	BloodGroup string
	City       string
	State      string
	CreatedAt  time.Time
}

// PeerRequest is a direct help request between two registered users. Only the
// addressed recipient may transition its status, and only out of pending.
type PeerRequest struct {
	ID        string
	FromUser  string
	ToUser    string
	Message   string
	Status    string
	CreatedAt time.Time
}

// Submission carries the blood-request form. All fields are required.
type Submission struct {
	Name       string
	Gender     string
	Mobile     string
	Email      string
	BloodGroup string
	City       string
	State      string
}

// Alert carries a broadcast-only donor alert; nothing is persisted for it.
type Alert struct {
	PatientName  string
	PatientPhone string
	BloodGroup   string
	City         string
	State        string
}
