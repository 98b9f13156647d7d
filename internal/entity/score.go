package entity

// ScoreBoard - tallies of finished games within a session.
type ScoreBoard struct {
	X     int `json:"x"`
	O     int `json:"o"`
	Draws int `json:"draws"`
}

func (that *ScoreBoard) RecordResult(outcome *Outcome) {
	switch {
	case outcome == nil:
		return
	case outcome.Draw:
		that.Draws++
	case outcome.Winner == X:
		that.X++
	case outcome.Winner == O:
		that.O++
	}
}

func (that *ScoreBoard) Reset() {
	*that = ScoreBoard{}
}
