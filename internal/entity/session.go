package entity

import (
	"fmt"
	"time"
)

type Mode string

const (
	ModePlayerVsPlayer   Mode = "pvp"
	ModePlayerVsComputer Mode = "ai"
)

func (that Mode) Valid() bool {
	return that == ModePlayerVsPlayer || that == ModePlayerVsComputer
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

func (that Difficulty) Valid() bool {
	switch that {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ComputerMarker - the computer always plays O.
const ComputerMarker = O

// Session - one browser session: the current game, its settings and the running score.
type Session struct {
	ID         string     `json:"id"`
	Mode       Mode       `json:"mode"`
	Difficulty Difficulty `json:"difficulty"`
	Game       GameState  `json:"game"`
	Scores     ScoreBoard `json:"scores"`
	Outcome    *Outcome   `json:"outcome,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewSession(id string, now time.Time) *Session {
	return &Session{
		ID:         id,
		Mode:       ModePlayerVsPlayer,
		Difficulty: DifficultyMedium,
		Game:       *NewGameState(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewGame - resets the board and keeps the score.
func (that *Session) NewGame() {
	that.Game.Reset()
	that.Outcome = nil
}

func (that *Session) IsVsComputer() bool {
	return that.Mode == ModePlayerVsComputer
}

// AwaitsComputer - reports whether the computer is expected to move next.
func (that *Session) AwaitsComputer() bool {
	return that.IsVsComputer() && that.Game.Running && that.Game.Current == ComputerMarker
}

// WinningCells - cells to highlight, empty unless the last game was won.
func (that *Session) WinningCells() []int {
	if that.Outcome == nil || that.Outcome.Draw {
		return nil
	}

	return that.Outcome.Line[:]
}

// StatusText - the line shown above the board.
func (that *Session) StatusText() string {
	switch {
	case that.Outcome != nil && that.Outcome.Draw:
		return "It's a draw! 🤝"
	case that.Outcome != nil:
		return fmt.Sprintf("Winner: %s! 🏆", that.Outcome.Winner)
	default:
		return fmt.Sprintf("%s's turn", that.Game.Current)
	}
}
