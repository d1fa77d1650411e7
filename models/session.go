package models

import "time"

// SessionStatus is the lifecycle state of a booked session.
type SessionStatus string

const (
	StatusScheduled SessionStatus = "scheduled"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
	StatusNoShow    SessionStatus = "no-show"
)

// IsTerminal reports whether no further transition may leave the status.
func (s SessionStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Valid reports whether s is one of the known statuses.
func (s SessionStatus) Valid() bool {
	switch s {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// SessionType is the kind of session booked.
type SessionType string

const (
	SessionIndividual SessionType = "individual"
	SessionCouple     SessionType = "couple"
	SessionFamily     SessionType = "family"
	SessionGroup      SessionType = "group"
)

// PaymentStatus is tracked on the session but owned by billing.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Session is a single booked appointment between a client and a provider.
type Session struct {
	ID            string        `bson:"id" json:"id"`
	ClientID      string        `bson:"clientId" json:"clientId"`
	ProviderID    string        `bson:"providerId" json:"providerId"`
	Date          time.Time     `bson:"date" json:"date"`           // UTC midnight of the calendar day
	StartTime     string        `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime       string        `bson:"endTime" json:"endTime"`     // "HH:MM"
	Duration      int           `bson:"duration" json:"duration"`   // minutes
	SessionType   SessionType   `bson:"sessionType" json:"sessionType"`
	Status        SessionStatus `bson:"status" json:"status"`
	ClientNotes   string        `bson:"clientNotes,omitempty" json:"clientNotes,omitempty"`
	ProviderNotes string        `bson:"providerNotes,omitempty" json:"providerNotes,omitempty"`
	Cost          float64       `bson:"cost" json:"cost"`
	PaymentStatus PaymentStatus `bson:"paymentStatus" json:"paymentStatus"`
	MeetingLink   string        `bson:"meetingLink,omitempty" json:"meetingLink,omitempty"`
	IsOnline      bool          `bson:"isOnline" json:"isOnline"`
	Version       int           `bson:"version" json:"-"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// SessionPatch carries the mutable fields of an update request. Nil means
// the field was not supplied.
type SessionPatch struct {
	Status        *SessionStatus `json:"status,omitempty"`
	ClientNotes   *string        `json:"clientNotes,omitempty"`
	ProviderNotes *string        `json:"providerNotes,omitempty"`
	MeetingLink   *string        `json:"meetingLink,omitempty"`
}

// IsEmpty reports whether no field is set.
func (p SessionPatch) IsEmpty() bool {
	return p.Status == nil && p.ClientNotes == nil && p.ProviderNotes == nil && p.MeetingLink == nil
}

// SessionFilter holds the optional caller-supplied listing filters.
type SessionFilter struct {
	Status SessionStatus
	Date   *time.Time
}

// SessionQuery is the fully scoped query handed to the repository.
type SessionQuery struct {
	ClientID   string
	ProviderID string
	Status     SessionStatus
	Date       *time.Time
	Skip       int64
	Limit      int64
}
