package scheduling

import (
	"context"
	"time"

	providerRepo "theray/database/repository/provider"
	sessionRepo "theray/database/repository/session"
	"theray/models"

	"go.uber.org/zap"
)

// Role is the requester's account role.
type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
)

// Actor identifies who is asking. ID is the account id, never a provider profile id.
type Actor struct {
	ID   string
	Role Role
}

// SessionService is the scheduling core as seen by transports.
type SessionService interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*BookingResult, error)
	ApplyUpdate(ctx context.Context, sessionID string, actor Actor, patch models.SessionPatch) (*models.Session, error)
	CancelSession(ctx context.Context, sessionID string, actor Actor) (*models.Session, error)
	GetSession(ctx context.Context, sessionID string, actor Actor) (*models.Session, error)
	ListSessions(ctx context.Context, actor Actor, filter models.SessionFilter, page, pageSize int) (*SessionPage, error)
	ProviderAvailability(ctx context.Context, providerID string, date time.Time) (*AvailabilityView, error)
}

// DefaultSessionService implements SessionService on the session and provider repositories.
type DefaultSessionService struct {
	Sessions  sessionRepo.SessionRepository
	Providers providerRepo.ProviderRepository
	Locker    Locker
	// Retries receives counter increments that failed inline. Optional.
	Retries             CounterRetryEnqueuer
	EnforceAvailability bool
	Logger              *zap.Logger
	Now                 func() time.Time
}

// NewSessionService wires the default service. Availability windows are enforced
// unless the caller turns EnforceAvailability off afterwards.
func NewSessionService(sessions sessionRepo.SessionRepository, providers providerRepo.ProviderRepository, locker Locker, logger *zap.Logger) *DefaultSessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locker == nil {
		locker = NewMemoryLocker()
	}
	return &DefaultSessionService{
		Sessions:            sessions,
		Providers:           providers,
		Locker:              locker,
		EnforceAvailability: true,
		Logger:              logger,
		Now:                 func() time.Time { return time.Now().UTC() },
	}
}

func (s *DefaultSessionService) conflicts() *ConflictDetector {
	return &ConflictDetector{Sessions: s.Sessions}
}

func (s *DefaultSessionService) now() time.Time {
	if s.Now == nil {
		return time.Now().UTC()
	}
	return s.Now()
}

var _ SessionService = (*DefaultSessionService)(nil)
