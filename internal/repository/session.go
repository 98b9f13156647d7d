package repository

import (
	"context"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// SessionRepository - keeps sessions between requests. Missing or expired sessions yield apperror.ErrSessionNotFound.
type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
	Close() error
}

func cloneSession(session *entity.Session) *entity.Session {
	clone := *session
	if session.Outcome != nil {
		outcome := *session.Outcome
		clone.Outcome = &outcome
	}

	return &clone
}
