package opponent

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

const DefaultSmartProbability = 0.6

// Heuristic - beatable but competent play. With probability SmartProbability it follows
// win, block, center, corner; otherwise, and when no rule applies, it plays randomly.
type Heuristic struct {
	rng *rand.Rand

	SmartProbability float64
}

func NewHeuristic(rng *rand.Rand) *Heuristic {
	return &Heuristic{
		rng:              rng,
		SmartProbability: DefaultSmartProbability,
	}
}

func (that *Heuristic) Choose(board entity.Board, me entity.Marker) (int, error) {
	available := board.Available()
	if len(available) == 0 {
		return 0, ErrNoAvailableMoves
	}

	if that.rng.Float64() < that.SmartProbability {
		if cell, ok := completingMove(&board, available, me); ok {
			return cell, nil
		}

		if cell, ok := completingMove(&board, available, me.Opponent()); ok {
			return cell, nil
		}

		if board[entity.CenterCell] == entity.Empty {
			return entity.CenterCell, nil
		}

		if corners := freeCorners(&board); len(corners) > 0 {
			return pick(that.rng, corners), nil
		}
	}

	return pick(that.rng, available), nil
}

func (that *Heuristic) difficulty() entity.Difficulty {
	return entity.DifficultyMedium
}

// completingMove - first empty cell, in index order, that gives marker a full line.
func completingMove(board *entity.Board, available []int, marker entity.Marker) (int, bool) {
	for _, cell := range available {
		next := board.With(cell, marker)
		if next.HasLine(marker) {
			return cell, true
		}
	}

	return 0, false
}

func freeCorners(board *entity.Board) []int {
	corners := make([]int, 0, len(entity.Corners))
	for _, cell := range entity.Corners {
		if board[cell] == entity.Empty {
			corners = append(corners, cell)
		}
	}

	return corners
}
