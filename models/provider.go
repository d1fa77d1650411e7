package models

import "time"

// AvailabilityWindow is one recurring weekly open-hours block.
type AvailabilityWindow struct {
	Day       string `bson:"day" json:"day"`             // "Monday" .. "Sunday"
	StartTime string `bson:"startTime" json:"startTime"` // "HH:MM"
	EndTime   string `bson:"endTime" json:"endTime"`     // "HH:MM"
}

// Provider is the professional offering sessions. The scheduling core reads
// it and only ever touches TotalSessions.
type Provider struct {
	ID            string               `bson:"id" json:"id"`
	UserID        string               `bson:"userId" json:"userId"`
	HourlyRate    float64              `bson:"hourlyRate" json:"hourlyRate"`
	Availability  []AvailabilityWindow `bson:"availability" json:"availability"`
	SessionTypes  []SessionType        `bson:"sessionTypes,omitempty" json:"sessionTypes,omitempty"`
	IsVerified    bool                 `bson:"isVerified" json:"isVerified"`
	TotalSessions int                  `bson:"totalSessions" json:"totalSessions"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt,omitzero"`
}
