package models

// AvailableInterval represents a continuous time block inside a provider's open hours.
type AvailableInterval struct {
	StartTime string `json:"startTime"` // "HH:MM"
	EndTime   string `json:"endTime"`   // "HH:MM"
	Label     string `json:"label"`     // e.g., "9:00 AM - 10:30 AM"
}
