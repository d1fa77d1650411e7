package scheduling

import (
	"context"
	"errors"
	"time"

	"theray/database/repository"
	"theray/models"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SessionPage is one page of a session listing.
type SessionPage struct {
	Sessions   []models.Session  `json:"sessions"`
	Pagination models.Pagination `json:"pagination"`
}

// ListSessions returns the actor's own sessions, newest first.
func (s *DefaultSessionService) ListSessions(ctx context.Context, actor Actor, filter models.SessionFilter, page, pageSize int) (*SessionPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	query := models.SessionQuery{
		Status: filter.Status,
		Skip:   int64(page-1) * int64(pageSize),
		Limit:  int64(pageSize),
	}
	if filter.Date != nil {
		day := DayOf(*filter.Date)
		query.Date = &day
	}

	switch actor.Role {
	case RoleClient:
		query.ClientID = actor.ID
	case RoleProvider:
		provider, err := s.Providers.GetByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, newError(KindProviderProfileNotFound, "no provider profile for this account")
			}
			return nil, storageError("failed to load provider profile", err)
		}
		query.ProviderID = provider.ID
	default:
		return nil, newError(KindAccessDenied, "role %q cannot list sessions", actor.Role)
	}
	if query.ClientID == "" && query.ProviderID == "" {
		return nil, newError(KindAccessDenied, "missing account id")
	}

	total, err := s.Sessions.Count(ctx, query)
	if err != nil {
		return nil, storageError("failed to count sessions", err)
	}
	sessions, err := s.Sessions.List(ctx, query)
	if err != nil {
		return nil, storageError("failed to list sessions", err)
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	return &SessionPage{
		Sessions: sessions,
		Pagination: models.Pagination{
			CurrentPage:  page,
			TotalPages:   totalPages(total, pageSize),
			TotalItems:   total,
			ItemsPerPage: pageSize,
		},
	}, nil
}

func totalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// GetSession returns a session the actor is a party to.
func (s *DefaultSessionService) GetSession(ctx context.Context, sessionID string, actor Actor) (*models.Session, error) {
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, session, actor); err != nil {
		return nil, err
	}
	return session, nil
}

// AvailabilityView is a provider's open hours on one day and what is still free.
type AvailabilityView struct {
	ProviderID string                     `json:"providerId"`
	Date       string                     `json:"date"`
	Windows    []models.AvailableInterval `json:"windows"`
	Free       []models.AvailableInterval `json:"free"`
}

// ProviderAvailability lists the provider's windows on date minus booked sessions.
func (s *DefaultSessionService) ProviderAvailability(ctx context.Context, providerID string, date time.Time) (*AvailabilityView, error) {
	provider, err := s.Providers.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindProviderNotFound, "provider %s not found", providerID)
		}
		return nil, storageError("failed to load provider", err)
	}

	day := DayOf(date)
	booked, err := s.conflicts().BookedIntervals(ctx, provider.ID, day)
	if err != nil {
		return nil, err
	}
	catalog := NewCatalog(provider.Availability)

	return &AvailabilityView{
		ProviderID: provider.ID,
		Date:       day.Format(DateLayout),
		Windows:    toAvailableIntervals(catalog.WindowsOn(day)),
		Free:       toAvailableIntervals(catalog.FreeIntervals(day, booked)),
	}, nil
}

func toAvailableIntervals(ivs []Interval) []models.AvailableInterval {
	out := make([]models.AvailableInterval, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, models.AvailableInterval{
			StartTime: iv.Start.String(),
			EndTime:   iv.End.String(),
			Label:     iv.Start.Label() + " - " + iv.End.Label(),
		})
	}
	return out
}
