package scheduling

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"theray/database/repository"
	"theray/models"
)

var monday = time.Date(2030, 5, 6, 0, 0, 0, 0, time.UTC)

// memorySessionRepo is an in-memory SessionRepository.
type memorySessionRepo struct {
	mu        sync.Mutex
	sessions  map[string]models.Session
	createErr error
	findErr   error
	// createDelay stalls Create like a slow primary; afterCreate runs once the write lands.
	createDelay time.Duration
	afterCreate func()
	// bumpBeforeUpdate simulates that many concurrent writers winning the race.
	bumpBeforeUpdate int
	updateCalls      int
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]models.Session)}
}

func (r *memorySessionRepo) Create(ctx context.Context, s *models.Session) error {
	if r.createDelay > 0 {
		select {
		case <-time.After(r.createDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	if r.createErr != nil {
		r.mu.Unlock()
		return r.createErr
	}
	r.sessions[s.ID] = *s
	r.mu.Unlock()
	if r.afterCreate != nil {
		r.afterCreate()
	}
	return nil
}

func (r *memorySessionRepo) GetByID(_ context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &s, nil
}

func (r *memorySessionRepo) FindActiveByProviderAndDate(_ context.Context, providerID string, date time.Time) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	var out []models.Session
	for _, s := range r.sessions {
		if s.ProviderID == providerID && s.Date.Equal(date) && s.Status != models.StatusCancelled {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *memorySessionRepo) matching(q models.SessionQuery) []models.Session {
	var out []models.Session
	for _, s := range r.sessions {
		if q.ClientID != "" && s.ClientID != q.ClientID {
			continue
		}
		if q.ProviderID != "" && s.ProviderID != q.ProviderID {
			continue
		}
		if q.Status != "" && s.Status != q.Status {
			continue
		}
		if q.Date != nil && !s.Date.Equal(*q.Date) {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].StartTime > out[j].StartTime
	})
	return out
}

func (r *memorySessionRepo) List(_ context.Context, q models.SessionQuery) ([]models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.matching(q)
	if q.Skip >= int64(len(all)) {
		return []models.Session{}, nil
	}
	all = all[q.Skip:]
	if q.Limit > 0 && int64(len(all)) > q.Limit {
		all = all[:q.Limit]
	}
	return all, nil
}

func (r *memorySessionRepo) Count(_ context.Context, q models.SessionQuery) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.matching(q))), nil
}

func (r *memorySessionRepo) UpdateIfVersion(_ context.Context, s *models.Session, expectedVersion int) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateCalls++
	stored, ok := r.sessions[s.ID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if r.bumpBeforeUpdate > 0 {
		r.bumpBeforeUpdate--
		stored.Version++
		r.sessions[s.ID] = stored
	}
	if stored.Version != expectedVersion {
		return nil, repository.ErrVersionConflict
	}
	stored.Status = s.Status
	stored.ClientNotes = s.ClientNotes
	stored.ProviderNotes = s.ProviderNotes
	stored.MeetingLink = s.MeetingLink
	stored.Version++
	r.sessions[s.ID] = stored
	return &stored, nil
}

func (r *memorySessionRepo) put(s models.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s.Version == 0 {
		s.Version = 1
	}
	r.sessions[s.ID] = s
}

// memoryProviderRepo is an in-memory ProviderRepository.
type memoryProviderRepo struct {
	mu           sync.Mutex
	providers    map[string]models.Provider
	incrementErr error
}

func newMemoryProviderRepo(providers ...models.Provider) *memoryProviderRepo {
	r := &memoryProviderRepo{providers: make(map[string]models.Provider)}
	for _, p := range providers {
		r.providers[p.ID] = p
	}
	return r
}

func (r *memoryProviderRepo) GetByID(_ context.Context, id string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.providers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r *memoryProviderRepo) GetByUserID(_ context.Context, userID string) (*models.Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.providers {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memoryProviderRepo) IncrementTotalSessions(ctx context.Context, id string, delta int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.incrementErr != nil {
		return r.incrementErr
	}
	p, ok := r.providers[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.TotalSessions += delta
	r.providers[id] = p
	return nil
}

func (r *memoryProviderRepo) totalSessions(id string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.providers[id].TotalSessions
}

type recordingEnqueuer struct {
	mu       sync.Mutex
	payloads []models.CounterTaskPayload
	err      error
}

func (e *recordingEnqueuer) EnqueueCounterIncrement(ctx context.Context, p models.CounterTaskPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.err != nil {
		return e.err
	}
	e.payloads = append(e.payloads, p)
	return nil
}

var errBoom = errors.New("boom")

func testProvider() models.Provider {
	return models.Provider{
		ID:         "prov-1",
		UserID:     "user-prov-1",
		HourlyRate: 120,
	}
}

func newTestService(providers ...models.Provider) (*DefaultSessionService, *memorySessionRepo, *memoryProviderRepo) {
	if len(providers) == 0 {
		providers = []models.Provider{testProvider()}
	}
	sessions := newMemorySessionRepo()
	provs := newMemoryProviderRepo(providers...)
	svc := NewSessionService(sessions, provs, NewMemoryLocker(), nil)
	return svc, sessions, provs
}

func bookingRequest(start, end string, duration int) CreateSessionRequest {
	return CreateSessionRequest{
		ClientID:    "client-1",
		ProviderID:  "prov-1",
		Date:        monday,
		StartTime:   start,
		EndTime:     end,
		Duration:    duration,
		SessionType: models.SessionIndividual,
	}
}
