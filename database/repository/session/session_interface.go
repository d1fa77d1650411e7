package sessionRepo

import (
	"context"
	"time"

	"theray/models"
)

// SessionRepository defines methods for session data access.
type SessionRepository interface {
	// Create inserts a new session record.
	Create(ctx context.Context, session *models.Session) error
	// GetByID retrieves a session by its id, or repository.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Session, error)
	// FindActiveByProviderAndDate returns the provider's non-cancelled sessions on a day.
	FindActiveByProviderAndDate(ctx context.Context, providerID string, date time.Time) ([]models.Session, error)
	// List returns one page of sessions matching the query, newest first.
	List(ctx context.Context, query models.SessionQuery) ([]models.Session, error)
	// Count returns the number of sessions matching the query, ignoring paging.
	Count(ctx context.Context, query models.SessionQuery) (int64, error)
	// UpdateIfVersion writes the mutable fields of session when the stored
	// version equals expectedVersion, or returns repository.ErrVersionConflict.
	UpdateIfVersion(ctx context.Context, session *models.Session, expectedVersion int) (*models.Session, error)
}
