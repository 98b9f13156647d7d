package tictactoe

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession() *entity.Session {
	return entity.NewSession("123", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

// playAll - alternates X and O over cells starting with X.
func playAll(t *testing.T, session *entity.Session, cells ...int) *entity.Outcome {
	t.Helper()

	var outcome *entity.Outcome
	for _, cell := range cells {
		var err error
		outcome, err = MakeTurn(session, session.Game.Current, cell)
		require.NoError(t, err)
	}

	return outcome
}

func TestMakeTurn(t *testing.T) {
	t.Run("MakeTurn", func(t *testing.T) {
		// Given: a new session
		session := newSession()

		// When: player X makes a turn
		outcome, err := MakeTurn(session, entity.X, 0)
		require.NoError(t, err)

		// Then: the mark is placed and the turn passes to O
		assert.Nil(t, outcome)
		assert.Equal(t, entity.X, session.Game.Board[0])
		assert.Equal(t, entity.O, session.Game.Current)
		assert.True(t, session.Game.Running)
	})

	t.Run("Error on cell already occupied", func(t *testing.T) {
		// Given: X took cell 0
		session := newSession()
		playAll(t, session, 0)
		before := *session

		// When: player O tries to make a move to the same square
		_, err := MakeTurn(session, entity.O, 0)

		// Then: an error ErrCellOccupied is returned and nothing changes
		require.ErrorIs(t, err, apperror.ErrCellOccupied)
		require.Equal(t, before, *session)
	})

	t.Run("Error on invalid cell", func(t *testing.T) {
		session := newSession()

		for _, cell := range []int{-1, 9, 100} {
			_, err := MakeTurn(session, entity.X, cell)
			require.ErrorIs(t, err, apperror.ErrInvalidCell)
		}

		assert.Equal(t, entity.Board{}, session.Game.Board)
	})

	t.Run("Error on not your turn", func(t *testing.T) {
		session := newSession()

		_, err := MakeTurn(session, entity.O, 4)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, entity.Empty, session.Game.Board[4])
	})

	t.Run("Win is scored once", func(t *testing.T) {
		// Given: X plays 0, 1, 2 and O plays 3, 4
		session := newSession()

		// When: the game is played out
		outcome := playAll(t, session, 0, 3, 1, 4, 2)

		// Then: X wins on the top row and gets one point
		require.NotNil(t, outcome)
		assert.Equal(t, entity.X, outcome.Winner)
		assert.Equal(t, entity.WinLine{0, 1, 2}, outcome.Line)
		assert.Equal(t, outcome, session.Outcome)
		assert.Equal(t, entity.ScoreBoard{X: 1}, session.Scores)
		assert.False(t, session.Game.Running)

		// Then: the winner keeps the turn marker and further moves are rejected
		assert.Equal(t, entity.X, session.Game.Current)
		_, err := MakeTurn(session, entity.X, 8)
		require.ErrorIs(t, err, apperror.ErrGameFinished)
		assert.Equal(t, entity.ScoreBoard{X: 1}, session.Scores)
	})

	t.Run("Draw is scored once", func(t *testing.T) {
		session := newSession()

		outcome := playAll(t, session, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		require.NotNil(t, outcome)
		assert.True(t, outcome.Draw)
		assert.Equal(t, entity.ScoreBoard{Draws: 1}, session.Scores)
		assert.Equal(t, "It's a draw! 🤝", session.StatusText())
	})

	t.Run("Score survives a new game", func(t *testing.T) {
		session := newSession()
		playAll(t, session, 0, 3, 1, 4, 2)

		session.NewGame()
		outcome := playAll(t, session, 0, 3, 1, 4, 8, 5)

		require.NotNil(t, outcome)
		assert.Equal(t, entity.O, outcome.Winner)
		assert.Equal(t, entity.ScoreBoard{X: 1, O: 1}, session.Scores)
	})
}
