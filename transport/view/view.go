package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"slices"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
)

// Cell - one square as drawn on the page.
type Cell struct {
	Index    int
	Mark     string
	Disabled bool
	Winning  bool
}

type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Game - everything the board fragment needs, derived from a session.
type Game struct {
	ID           string
	Status       string
	Running      bool
	VsComputer   bool
	Cells        []Cell
	Scores       entity.ScoreBoard
	Modes        []Option
	Difficulties []Option
}

func NewGame(session *entity.Session) *Game {
	winning := session.WinningCells()

	cells := make([]Cell, entity.BoardSize)
	for i, mark := range session.Game.Board {
		cells[i] = Cell{
			Index:    i,
			Mark:     string(mark),
			Disabled: !session.Game.Running || mark != entity.Empty || session.AwaitsComputer(),
			Winning:  slices.Contains(winning, i),
		}
	}

	return &Game{
		ID:         session.ID,
		Status:     session.StatusText(),
		Running:    session.Game.Running,
		VsComputer: session.IsVsComputer(),
		Cells:      cells,
		Scores:     session.Scores,
		Modes: []Option{
			{Value: string(entity.ModePlayerVsPlayer), Label: "Player vs Player", Selected: session.Mode == entity.ModePlayerVsPlayer},
			{Value: string(entity.ModePlayerVsComputer), Label: "Player vs Computer", Selected: session.Mode == entity.ModePlayerVsComputer},
		},
		Difficulties: []Option{
			{Value: string(entity.DifficultyEasy), Label: "Easy", Selected: session.Difficulty == entity.DifficultyEasy},
			{Value: string(entity.DifficultyMedium), Label: "Medium", Selected: session.Difficulty == entity.DifficultyMedium},
			{Value: string(entity.DifficultyHard), Label: "Hard", Selected: session.Difficulty == entity.DifficultyHard},
		},
	}
}

var templates = template.Must(template.New("page").Parse(pageTemplate))

func init() {
	template.Must(templates.New("game").Parse(gameTemplate))
}

// Page - the full document with the board and the websocket wiring.
func Page(w io.Writer, session *entity.Session) error {
	if err := templates.ExecuteTemplate(w, "page", NewGame(session)); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}

	return nil
}

// Board - the #game fragment. htmx swaps it by id, both from responses and from websocket pushes.
func Board(w io.Writer, session *entity.Session) error {
	if err := templates.ExecuteTemplate(w, "game", NewGame(session)); err != nil {
		return fmt.Errorf("failed to render board: %w", err)
	}

	return nil
}

func BoardBytes(session *entity.Session) ([]byte, error) {
	var buf bytes.Buffer
	if err := Board(&buf, session); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

const pageTemplate = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<meta name="viewport" content="width=device-width, initial-scale=1"/>
<title>Tic-Tac-Toe</title>
<script src="https://unpkg.com/htmx.org@1.9.12"></script>
<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/ws.js"></script>
<style>
  body { font-family: sans-serif; display: flex; justify-content: center; }
  .board { display: grid; grid-template-columns: repeat(3, 5rem); gap: .4rem; margin: 1rem 0; }
  .cell { width: 5rem; height: 5rem; font-size: 2.5rem; }
  .cell.winning { background: #ffe08a; }
  .scores { display: flex; gap: 1rem; }
</style>
</head>
<body>
<main hx-ext="ws" ws-connect="/ws/{{.ID}}">
<h1>Tic-Tac-Toe</h1>
{{template "game" .}}
</main>
</body>
</html>`

const gameTemplate = `<div id="game" data-session="{{.ID}}">
  <p class="status">{{.Status}}</p>
  <form class="controls" hx-target="#game" hx-swap="outerHTML">
    <select name="mode" hx-post="/session/{{.ID}}/mode" hx-trigger="change">
      {{range .Modes}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
    {{if .VsComputer}}
    <select name="difficulty" hx-post="/session/{{.ID}}/difficulty" hx-trigger="change">
      {{range .Difficulties}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>{{end}}
    </select>
    {{end}}
  </form>
  <div class="board">
    {{range .Cells}}
    <button class="cell{{if .Winning}} winning{{end}}" name="index" value="{{.Index}}"
      hx-post="/session/{{$.ID}}/cell" hx-target="#game" hx-swap="outerHTML"{{if .Disabled}} disabled{{end}}>{{.Mark}}</button>
    {{end}}
  </div>
  <div class="scores">
    <span>X: <b class="score-x">{{.Scores.X}}</b></span>
    <span>O: <b class="score-o">{{.Scores.O}}</b></span>
    <span>Draws: <b class="score-draws">{{.Scores.Draws}}</b></span>
  </div>
  <button hx-post="/session/{{.ID}}/new" hx-target="#game" hx-swap="outerHTML">New Game</button>
  <button hx-post="/session/{{.ID}}/scores/reset" hx-target="#game" hx-swap="outerHTML">Reset Scores</button>
</div>`
