package repository

import (
	"context"
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (that *fakeClock) Now() time.Time {
	return that.now
}

func newTestSession(id string) *entity.Session {
	return entity.NewSession(id, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateOrUpdate and GetByID", func(t *testing.T) {
		// Given: a stored session
		repo := NewMemorySessionRepository(0)
		session := newTestSession("123")
		session.Game.Board[4] = entity.X
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: GetByID is called with its ID
		stored, err := repo.GetByID(ctx, "123")

		// Then: the same session comes back
		require.NoError(t, err)
		assert.Equal(t, session, stored)
	})

	t.Run("Stored sessions are copies", func(t *testing.T) {
		repo := NewMemorySessionRepository(0)
		session := newTestSession("123")
		session.Outcome = &entity.Outcome{Winner: entity.X, Line: entity.WinLine{0, 1, 2}}
		require.NoError(t, repo.CreateOrUpdate(ctx, session))

		// When: the caller keeps mutating its own value
		session.Game.Board[0] = entity.O
		session.Outcome.Winner = entity.O

		// Then: the repository is not affected
		stored, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.Empty, stored.Game.Board[0])
		assert.Equal(t, entity.X, stored.Outcome.Winner)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		repo := NewMemorySessionRepository(0)

		_, err := repo.GetByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("DeleteByID", func(t *testing.T) {
		repo := NewMemorySessionRepository(0)
		require.NoError(t, repo.CreateOrUpdate(ctx, newTestSession("123")))

		require.NoError(t, repo.DeleteByID(ctx, "123"))

		_, err := repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Sessions expire", func(t *testing.T) {
		// Given: a repository with a one hour ttl
		clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
		repo := newMemorySessionRepository(time.Hour, clock.Now)
		require.NoError(t, repo.CreateOrUpdate(ctx, newTestSession("123")))

		// When: just under an hour passes the session is still there
		clock.now = clock.now.Add(59 * time.Minute)
		_, err := repo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: a write refreshes the ttl
		require.NoError(t, repo.CreateOrUpdate(ctx, newTestSession("123")))
		clock.now = clock.now.Add(59 * time.Minute)
		_, err = repo.GetByID(ctx, "123")
		require.NoError(t, err)

		// Then: after a full hour without writes it is gone
		clock.now = clock.now.Add(time.Minute)
		_, err = repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Empty(t, repo.entries)
	})

	t.Run("Close drops everything", func(t *testing.T) {
		repo := NewMemorySessionRepository(0)
		require.NoError(t, repo.CreateOrUpdate(ctx, newTestSession("123")))

		require.NoError(t, repo.Close())

		_, err := repo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})
}
