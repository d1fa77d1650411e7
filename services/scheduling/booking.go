package scheduling

import (
	"context"
	"errors"
	"math"
	"time"

	"theray/database/repository"
	"theray/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateSessionRequest is a client's booking request. Shape validation
// (enums, note length, duration range) happens at the transport.
type CreateSessionRequest struct {
	ClientID    string
	ProviderID  string
	Date        time.Time
	StartTime   string
	EndTime     string
	Duration    int
	SessionType models.SessionType
	IsOnline    bool
	ClientNotes string
}

// BookingResult is a committed booking plus any non-fatal problems.
type BookingResult struct {
	Session  *models.Session
	Warnings []string
}

// CreateSession books a session if the provider is free for the whole interval.
func (s *DefaultSessionService) CreateSession(ctx context.Context, req CreateSessionRequest) (*BookingResult, error) {
	provider, err := s.Providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindProviderNotFound, "provider %s not found", req.ProviderID)
		}
		return nil, storageError("failed to load provider", err)
	}

	iv, err := NewInterval(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	duration := req.Duration
	if duration == 0 {
		duration = iv.Minutes()
	}
	if duration != iv.Minutes() {
		return nil, newError(KindInvalidInterval, "duration %d does not match %s (%d minutes)", req.Duration, iv, iv.Minutes())
	}
	day := DayOf(req.Date)

	if s.EnforceAvailability {
		catalog := NewCatalog(provider.Availability)
		if !catalog.Empty() && !catalog.Covers(day, iv) {
			return nil, newError(KindSlotUnavailable, "%s on %s is outside the provider's availability", iv, day.Format(DateLayout))
		}
	}

	lease, err := s.Locker.Acquire(ctx, LockKey(provider.ID, day))
	if err != nil {
		return nil, storageError("failed to acquire booking lock", err)
	}
	defer lease.Release()

	session, err := s.bookUnderLease(ctx, lease, req, provider, day, iv, duration)
	if err != nil {
		return nil, err
	}
	lease.Release()

	s.Logger.Info("CreateSession: session booked",
		zap.String("sessionID", session.ID),
		zap.String("providerID", session.ProviderID),
		zap.String("clientID", session.ClientID),
		zap.String("interval", iv.String()),
		zap.Float64("cost", session.Cost))

	return &BookingResult{
		Session:  session,
		Warnings: s.incrementProviderCounter(context.WithoutCancel(ctx), session),
	}, nil
}

// bookUnderLease runs the conflict check and insert. Both are abandoned once
// the lease can no longer be trusted, so an expired lock never commits.
func (s *DefaultSessionService) bookUnderLease(ctx context.Context, lease *Lease, req CreateSessionRequest, provider *models.Provider, day time.Time, iv Interval, duration int) (*models.Session, error) {
	ctx, cancel := lease.Bind(ctx)
	defer cancel()

	conflict, err := s.conflicts().HasConflict(ctx, provider.ID, day, iv)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, newError(KindSlotUnavailable, "%s on %s is already booked", iv, day.Format(DateLayout))
	}

	now := s.now()
	session := &models.Session{
		ID:            uuid.New().String(),
		ClientID:      req.ClientID,
		ProviderID:    provider.ID,
		Date:          day,
		StartTime:     iv.Start.String(),
		EndTime:       iv.End.String(),
		Duration:      duration,
		SessionType:   req.SessionType,
		Status:        models.StatusScheduled,
		ClientNotes:   req.ClientNotes,
		Cost:          computeCost(duration, provider.HourlyRate),
		PaymentStatus: models.PaymentPending,
		IsOnline:      req.IsOnline,
		Version:       1,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := ctx.Err(); err != nil {
		return nil, storageError("booking lock lapsed before the session was saved", err)
	}
	if err := s.Sessions.Create(ctx, session); err != nil {
		return nil, storageError("failed to save session", err)
	}
	return session, nil
}

// computeCost prices a session at the provider's hourly rate, rounded to cents.
func computeCost(durationMinutes int, hourlyRate float64) float64 {
	return math.Round(float64(durationMinutes)/60*hourlyRate*100) / 100
}
