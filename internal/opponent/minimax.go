package opponent

import (
	"math"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// Minimax - perfect play by exhaustive search. It never loses.
type Minimax struct{}

func NewMinimax() *Minimax {
	return &Minimax{}
}

func (that *Minimax) Choose(board entity.Board, me entity.Marker) (int, error) {
	cell, ok := BestMove(board, me)
	if !ok {
		return 0, ErrNoAvailableMoves
	}

	return cell, nil
}

func (that *Minimax) difficulty() entity.Difficulty {
	return entity.DifficultyHard
}

// BestMove - optimal cell for player, false if the board is already decided.
// Scores are always taken from O's side: O keeps the highest, X the lowest.
// Ties go to the lowest cell index.
func BestMove(board entity.Board, player entity.Marker) (int, bool) {
	if board.Outcome() != nil {
		return 0, false
	}

	available := board.Available()
	move := available[0]

	best := math.MaxInt
	if player == entity.O {
		best = math.MinInt
	}

	for _, cell := range available {
		score := Score(board.With(cell, player), player.Opponent())

		if (player == entity.O && score > best) || (player != entity.O && score < best) {
			best = score
			move = cell
		}
	}

	return move, true
}

// Score - minimax value of board with toMove to play: +10 O wins, -10 X wins, 0 draw.
// There is no depth discount, so a slow win counts as much as a quick one.
func Score(board entity.Board, toMove entity.Marker) int {
	if outcome := board.Outcome(); outcome != nil {
		return outcome.Score()
	}

	if toMove == entity.O {
		best := math.MinInt
		for _, cell := range board.Available() {
			best = max(best, Score(board.With(cell, entity.O), entity.X))
		}

		return best
	}

	best := math.MaxInt
	for _, cell := range board.Available() {
		best = min(best, Score(board.With(cell, entity.X), entity.O))
	}

	return best
}
