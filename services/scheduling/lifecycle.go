package scheduling

import (
	"context"
	"errors"

	"theray/database/repository"
	"theray/models"

	"go.uber.org/zap"
)

// maxCommitAttempts bounds the re-read and retry loop when a concurrent
// writer bumps the session version between our read and our write.
const maxCommitAttempts = 3

// fieldRights lists the patch fields a role may write.
type fieldRights struct {
	Status        bool
	ClientNotes   bool
	ProviderNotes bool
	MeetingLink   bool
}

var fieldMatrix = map[Role]fieldRights{
	RoleClient:   {Status: true, ClientNotes: true},
	RoleProvider: {Status: true, ProviderNotes: true, MeetingLink: true},
}

// filterPatch drops the fields the role is not allowed to set.
func filterPatch(role Role, patch models.SessionPatch) models.SessionPatch {
	rights := fieldMatrix[role]
	var out models.SessionPatch
	if rights.Status && patch.Status != nil && patch.Status.Valid() {
		out.Status = patch.Status
	}
	if rights.ClientNotes {
		out.ClientNotes = patch.ClientNotes
	}
	if rights.ProviderNotes {
		out.ProviderNotes = patch.ProviderNotes
	}
	if rights.MeetingLink {
		out.MeetingLink = patch.MeetingLink
	}
	return out
}

// applyPatch returns the session with the patch applied, or nil when there is
// nothing to write.
func applyPatch(current *models.Session, patch models.SessionPatch) (*models.Session, error) {
	if patch.Status != nil {
		switch {
		case current.Status.IsTerminal():
			return nil, newError(KindAlreadyTerminal, "session %s is already %s", current.ID, current.Status)
		case *patch.Status == current.Status:
			patch.Status = nil
		}
	}
	if patch.IsEmpty() {
		return nil, nil
	}

	next := *current
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.ClientNotes != nil {
		next.ClientNotes = *patch.ClientNotes
	}
	if patch.ProviderNotes != nil {
		next.ProviderNotes = *patch.ProviderNotes
	}
	if patch.MeetingLink != nil {
		next.MeetingLink = *patch.MeetingLink
	}
	return &next, nil
}

// ApplyUpdate authorizes the actor, filters the patch by role and commits it
// with a compare-and-set on the session version.
func (s *DefaultSessionService) ApplyUpdate(ctx context.Context, sessionID string, actor Actor, patch models.SessionPatch) (*models.Session, error) {
	authorized := false
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		current, err := s.loadSession(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		if !authorized {
			if err := s.authorize(ctx, current, actor); err != nil {
				return nil, err
			}
			authorized = true
		}

		next, err := applyPatch(current, filterPatch(actor.Role, patch))
		if err != nil {
			return nil, err
		}
		if next == nil {
			return current, nil
		}

		updated, err := s.Sessions.UpdateIfVersion(ctx, next, current.Version)
		switch {
		case err == nil:
			if updated.Status != current.Status {
				s.Logger.Info("ApplyUpdate: session status changed",
					zap.String("sessionID", sessionID),
					zap.String("from", string(current.Status)),
					zap.String("to", string(updated.Status)),
					zap.String("actorRole", string(actor.Role)))
			}
			return updated, nil
		case errors.Is(err, repository.ErrVersionConflict):
			s.Logger.Debug("ApplyUpdate: version conflict, retrying",
				zap.String("sessionID", sessionID), zap.Int("attempt", attempt))
			continue
		case errors.Is(err, repository.ErrNotFound):
			return nil, newError(KindNotFound, "session %s not found", sessionID)
		default:
			return nil, storageError("failed to update session", err)
		}
	}
	return nil, storageError("session kept changing during update", repository.ErrVersionConflict)
}

// CancelSession moves a scheduled session to cancelled.
func (s *DefaultSessionService) CancelSession(ctx context.Context, sessionID string, actor Actor) (*models.Session, error) {
	cancelled := models.StatusCancelled
	return s.ApplyUpdate(ctx, sessionID, actor, models.SessionPatch{Status: &cancelled})
}

func (s *DefaultSessionService) loadSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.Sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, newError(KindNotFound, "session %s not found", sessionID)
		}
		return nil, storageError("failed to load session", err)
	}
	return session, nil
}

// authorize checks that the actor is a party to the session. Providers are
// matched through the profile they own, not their account id.
func (s *DefaultSessionService) authorize(ctx context.Context, session *models.Session, actor Actor) error {
	switch actor.Role {
	case RoleClient:
		if actor.ID != "" && session.ClientID == actor.ID {
			return nil
		}
	case RoleProvider:
		provider, err := s.Providers.GetByUserID(ctx, actor.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return newError(KindAccessDenied, "no provider profile for this account")
			}
			return storageError("failed to load provider profile", err)
		}
		if provider.ID == session.ProviderID {
			return nil
		}
	}
	return newError(KindAccessDenied, "not allowed to access session %s", session.ID)
}
