package opponent

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

var ErrNoAvailableMoves = errors.New("no available moves")

// Strategy - picks the computer's next cell. The set of strategies is closed: Random, Heuristic, Minimax.
type Strategy interface {
	Choose(board entity.Board, me entity.Marker) (int, error)

	difficulty() entity.Difficulty
}

// New - returns the strategy played at the given difficulty. Random strategies draw from rng.
func New(difficulty entity.Difficulty, rng *rand.Rand) (Strategy, error) {
	switch difficulty {
	case entity.DifficultyEasy:
		return NewRandom(rng), nil
	case entity.DifficultyMedium:
		return NewHeuristic(rng), nil
	case entity.DifficultyHard:
		return NewMinimax(), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}
}

// Random - uniformly random empty cell, no lookahead.
type Random struct {
	rng *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

func (that *Random) Choose(board entity.Board, _ entity.Marker) (int, error) {
	available := board.Available()
	if len(available) == 0 {
		return 0, ErrNoAvailableMoves
	}

	return pick(that.rng, available), nil
}

func (that *Random) difficulty() entity.Difficulty {
	return entity.DifficultyEasy
}

func pick(rng *rand.Rand, cells []int) int {
	return cells[rng.IntN(len(cells))]
}
