package scheduling

import (
	"context"

	"theray/models"

	"go.uber.org/zap"
)

// CounterRetryEnqueuer defers a provider counter increment to a background worker.
type CounterRetryEnqueuer interface {
	EnqueueCounterIncrement(ctx context.Context, payload models.CounterTaskPayload) error
}

// incrementProviderCounter bumps totalSessions for a committed booking.
// It never fails the booking; problems come back as warnings.
func (s *DefaultSessionService) incrementProviderCounter(ctx context.Context, session *models.Session) []string {
	err := s.Providers.IncrementTotalSessions(ctx, session.ProviderID, 1)
	if err == nil {
		return nil
	}

	s.Logger.Warn("CreateSession: failed to increment provider session count",
		zap.String("providerID", session.ProviderID),
		zap.String("sessionID", session.ID),
		zap.Error(err))
	warnings := []string{"provider session count was not updated"}

	if s.Retries == nil {
		return warnings
	}
	payload := models.CounterTaskPayload{ProviderID: session.ProviderID, SessionID: session.ID}
	if qerr := s.Retries.EnqueueCounterIncrement(ctx, payload); qerr != nil {
		s.Logger.Error("CreateSession: failed to enqueue counter retry",
			zap.String("providerID", session.ProviderID),
			zap.String("sessionID", session.ID),
			zap.Error(qerr))
		return warnings
	}
	return append(warnings, "provider session count update was queued for retry")
}
