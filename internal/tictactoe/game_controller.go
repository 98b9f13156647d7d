package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// MakeTurn - plays player's marker at cell on the session's game.
// When the move ends the game the result is counted on the score board and kept on the session.
// It returns the outcome, or nil while the game goes on. A rejected move leaves the session untouched.
func MakeTurn(session *entity.Session, player entity.Marker, cell int) (*entity.Outcome, error) {
	game := &session.Game

	if !game.Running {
		return nil, apperror.ErrGameFinished
	}

	if game.Current != player {
		return nil, fmt.Errorf("invalid turn: %w", apperror.ErrNotYourTurn)
	}

	if err := game.ApplyMove(cell, player); err != nil {
		return nil, fmt.Errorf("invalid turn: %w", err)
	}

	outcome := game.Evaluate()
	if outcome == nil {
		game.NextTurn()

		return nil, nil
	}

	session.Scores.RecordResult(outcome)
	session.Outcome = outcome

	return outcome, nil
}
