package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

func newSession() *entity.Session {
	return entity.NewSession("abc", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
}

func TestNewGame(t *testing.T) {
	t.Run("Fresh session", func(t *testing.T) {
		game := NewGame(newSession())

		assert.Equal(t, "X's turn", game.Status)
		assert.False(t, game.VsComputer)
		require.Len(t, game.Cells, entity.BoardSize)
		for _, cell := range game.Cells {
			assert.False(t, cell.Disabled)
			assert.False(t, cell.Winning)
		}
		assert.True(t, game.Modes[0].Selected)
		assert.True(t, game.Difficulties[1].Selected)
	})

	t.Run("Occupied cells are disabled", func(t *testing.T) {
		session := newSession()
		session.Game.Board[4] = entity.X
		session.Game.Current = entity.O

		game := NewGame(session)

		assert.True(t, game.Cells[4].Disabled)
		assert.Equal(t, "X", game.Cells[4].Mark)
		assert.False(t, game.Cells[0].Disabled)
	})

	t.Run("Board is locked while the computer thinks", func(t *testing.T) {
		session := newSession()
		session.Mode = entity.ModePlayerVsComputer
		session.Game.Board[0] = entity.X
		session.Game.Current = entity.O

		game := NewGame(session)

		for _, cell := range game.Cells {
			assert.True(t, cell.Disabled)
		}
	})

	t.Run("Finished game highlights the line", func(t *testing.T) {
		session := newSession()
		session.Game.Board = entity.Board{entity.X, entity.X, entity.X, entity.O, entity.O}
		session.Game.Running = false
		session.Outcome = &entity.Outcome{Winner: entity.X, Line: entity.WinLine{0, 1, 2}}

		game := NewGame(session)

		assert.Equal(t, "Winner: X! 🏆", game.Status)
		for _, cell := range game.Cells {
			assert.True(t, cell.Disabled)
			assert.Equal(t, cell.Index <= 2, cell.Winning)
		}
	})
}

func TestPage(t *testing.T) {
	var out bytes.Buffer

	require.NoError(t, Page(&out, newSession()))

	body := out.String()
	assert.Contains(t, body, `ws-connect="/ws/abc"`)
	assert.Contains(t, body, `id="game"`)
	assert.Equal(t, 9, strings.Count(body, `hx-post="/session/abc/cell"`))
}

func TestBoard(t *testing.T) {
	t.Run("Difficulty selector only against the computer", func(t *testing.T) {
		session := newSession()

		fragment, err := BoardBytes(session)
		require.NoError(t, err)
		assert.NotContains(t, string(fragment), `name="difficulty"`)
		assert.NotContains(t, string(fragment), "<html")

		session.Mode = entity.ModePlayerVsComputer
		fragment, err = BoardBytes(session)
		require.NoError(t, err)
		assert.Contains(t, string(fragment), `name="difficulty"`)
	})

	t.Run("Scores and draw status", func(t *testing.T) {
		session := newSession()
		session.Scores = entity.ScoreBoard{X: 2, O: 1, Draws: 3}
		session.Game.Running = false
		session.Outcome = &entity.Outcome{Draw: true}

		fragment, err := BoardBytes(session)

		require.NoError(t, err)
		body := string(fragment)
		assert.Contains(t, body, `<b class="score-x">2</b>`)
		assert.Contains(t, body, `<b class="score-draws">3</b>`)
		assert.Contains(t, body, "It&#39;s a draw! 🤝")
		assert.Equal(t, 9, strings.Count(body, " disabled>"))
	})
}
