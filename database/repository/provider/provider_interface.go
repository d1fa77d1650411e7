package providerRepo

import (
	"context"

	"theray/models"
)

// ProviderRepository defines the provider data access the scheduling core needs.
type ProviderRepository interface {
	// GetByID retrieves a provider by its unique ID, or repository.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	// GetByUserID retrieves the provider profile owned by an account.
	GetByUserID(ctx context.Context, userID string) (*models.Provider, error)
	// IncrementTotalSessions bumps the provider's lifetime session counter.
	IncrementTotalSessions(ctx context.Context, id string, delta int) error
}
