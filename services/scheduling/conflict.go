package scheduling

import (
	"context"
	"time"

	sessionRepo "theray/database/repository/session"
)

// ConflictDetector checks candidate intervals against a provider's stored,
// non-cancelled sessions.
type ConflictDetector struct {
	Sessions sessionRepo.SessionRepository
}

// BookedIntervals returns the intervals of the provider's non-cancelled sessions on date.
func (d *ConflictDetector) BookedIntervals(ctx context.Context, providerID string, date time.Time) ([]Interval, error) {
	sessions, err := d.Sessions.FindActiveByProviderAndDate(ctx, providerID, date)
	if err != nil {
		return nil, storageError("failed to load provider sessions", err)
	}
	booked := make([]Interval, 0, len(sessions))
	for _, s := range sessions {
		iv, err := NewInterval(s.StartTime, s.EndTime)
		if err != nil {
			return nil, storageError("stored session "+s.ID+" has an unreadable interval", err)
		}
		booked = append(booked, iv)
	}
	return booked, nil
}

// HasConflict reports whether iv overlaps any booked interval for the provider on date.
func (d *ConflictDetector) HasConflict(ctx context.Context, providerID string, date time.Time, iv Interval) (bool, error) {
	booked, err := d.BookedIntervals(ctx, providerID, date)
	if err != nil {
		return false, err
	}
	for _, b := range booked {
		if iv.Overlaps(b) {
			return true, nil
		}
	}
	return false, nil
}
