package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
)

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

var ErrInvalidBoard = errors.New("invalid board")

// GameState - the single authoritative board, turn and running flag of one game.
// Generation grows with every Reset so that deferred moves can tell a fresh game from a stale one.
type GameState struct {
	Board      Board  `json:"board"`
	Current    Marker `json:"current"`
	Running    bool   `json:"running"`
	Generation uint64 `json:"generation"`
}

func NewGameState() *GameState {
	return &GameState{
		Current: X,
		Running: true,
	}
}

// ApplyMove - places marker at index. Does not advance the turn.
func (that *GameState) ApplyMove(index int, marker Marker) error {
	if !that.Running {
		return apperror.ErrGameFinished
	}

	if index < 0 || index >= BoardSize {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, index)
	}

	if that.Board[index] != Empty {
		return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, index)
	}

	that.Board[index] = marker

	return nil
}

// NextTurn - hands the move to the other player.
func (that *GameState) NextTurn() {
	that.Current = that.Current.Opponent()
}

// Evaluate - returns the outcome of a finished game and stops it, or nil if the game continues.
func (that *GameState) Evaluate() *Outcome {
	outcome := that.Board.Outcome()
	if outcome != nil {
		that.Running = false
	}

	return outcome
}

// Reset - starts a new game on the same state. Scores live elsewhere and are untouched.
func (that *GameState) Reset() {
	that.Board = Board{}
	that.Current = X
	that.Running = true
	that.Generation++
}

func (that *GameState) Status() string {
	outcome := that.Board.Outcome()

	switch {
	case outcome == nil:
		return StatusInProgress
	case outcome.Draw:
		return StatusDraw
	default:
		return StatusWon
	}
}
