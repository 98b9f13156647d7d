package entity

import "fmt"

// Marker - content of a board cell.
type Marker string

const (
	Empty Marker = ""
	X     Marker = "X"
	O     Marker = "O"
)

const (
	BoardSize   = 9
	CenterCell  = 4
	outcomeWin  = 10
	outcomeLoss = -10
)

// WinLine - indexes of three cells forming a winning pattern.
type WinLine [3]int

// WinLines - rows, then columns, then diagonals. The order is part of the evaluation contract.
var WinLines = [8]WinLine{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Corners - corner cells of the board.
var Corners = [4]int{0, 2, 6, 8}

// Opponent - returns the other marker.
func (that Marker) Opponent() Marker {
	switch that {
	case X:
		return O
	case O:
		return X
	default:
		return Empty
	}
}

func (that Marker) Valid() bool {
	return that == X || that == O
}

// Board - 9 cells, row-major.
type Board [BoardSize]Marker

// Outcome - result of a finished game. Line is meaningful only when Draw is false.
type Outcome struct {
	Winner Marker  `json:"winner,omitempty"`
	Line   WinLine `json:"line"`
	Draw   bool    `json:"draw,omitempty"`
}

// Score - static value of a finished game from O's perspective: +10 O win, -10 X win, 0 draw.
func (that *Outcome) Score() int {
	switch {
	case that.Draw:
		return 0
	case that.Winner == O:
		return outcomeWin
	default:
		return outcomeLoss
	}
}

// Available - empty cell indexes in ascending order.
func (that *Board) Available() []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range that {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

func (that *Board) IsFull() bool {
	for _, cell := range that {
		if cell == Empty {
			return false
		}
	}

	return true
}

// HasLine - reports whether marker holds any complete line.
func (that *Board) HasLine(marker Marker) bool {
	for _, line := range WinLines {
		if that[line[0]] == marker && that[line[1]] == marker && that[line[2]] == marker {
			return true
		}
	}

	return false
}

// With - copy of the board with marker placed at index.
func (that *Board) With(index int, marker Marker) Board {
	next := *that
	next[index] = marker

	return next
}

// Outcome - terminal evaluation of the board, nil if the game goes on.
// Panics if both markers hold a completed line, which no legal sequence of moves produces.
func (that *Board) Outcome() *Outcome {
	var result *Outcome

	for _, line := range WinLines {
		a, b, c := that[line[0]], that[line[1]], that[line[2]]
		if a == Empty || a != b || b != c {
			continue
		}

		if result == nil {
			result = &Outcome{Winner: a, Line: line}
			continue
		}

		if result.Winner != a {
			panic(fmt.Sprintf("corrupted board %v: both %s and %s hold a line", *that, result.Winner, a))
		}
	}

	if result != nil {
		return result
	}

	if that.IsFull() {
		return &Outcome{Draw: true}
	}

	return nil
}

// Validate - checks that the board can be reached from an empty board with X moving first.
func (that *Board) Validate() error {
	var xCount, oCount int
	for i, cell := range that {
		switch cell {
		case X:
			xCount++
		case O:
			oCount++
		case Empty:
		default:
			return fmt.Errorf("%w: cell %d holds %q", ErrInvalidBoard, i, cell)
		}
	}

	if diff := xCount - oCount; diff != 0 && diff != 1 {
		return fmt.Errorf("%w: %d X against %d O", ErrInvalidBoard, xCount, oCount)
	}

	return nil
}
