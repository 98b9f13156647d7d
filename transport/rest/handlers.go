package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/transport/view"
)

type gameManager interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	Play(ctx context.Context, id string, cell int) (*entity.Session, error)
	NewGame(ctx context.Context, id string) (*entity.Session, error)
	ResetScores(ctx context.Context, id string) (*entity.Session, error)
	SetMode(ctx context.Context, id string, mode entity.Mode) (*entity.Session, error)
	SetDifficulty(ctx context.Context, id string, difficulty entity.Difficulty) (*entity.Session, error)
}

type sessionResponse struct {
	ID          string            `json:"id"`
	Board       entity.Board      `json:"board"`
	Current     entity.Marker     `json:"current"`
	Running     bool              `json:"running"`
	Status      string            `json:"status"`
	StatusText  string            `json:"status_text"`
	WinningLine []int             `json:"winning_line"`
	Scores      entity.ScoreBoard `json:"scores"`
	Mode        entity.Mode       `json:"mode"`
	Difficulty  entity.Difficulty `json:"difficulty"`
}

type handlers struct {
	logger *slog.Logger
	games  gameManager
}

// Index - every page load starts a new session.
func (that *handlers) Index(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.CreateSession(r.Context())
	if err != nil {
		that.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = view.Page(w, session); err != nil {
		that.logger.Error("failed to render page", "error", err)
	}
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.fail(w, r, err)
		return
	}

	response := sessionResponse{
		ID:          session.ID,
		Board:       session.Game.Board,
		Current:     session.Game.Current,
		Running:     session.Game.Running,
		Status:      session.Game.Status(),
		StatusText:  session.StatusText(),
		WinningLine: session.WinningCells(),
		Scores:      session.Scores,
		Mode:        session.Mode,
		Difficulty:  session.Difficulty,
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(response); err != nil {
		that.logger.Error("failed to encode session", "error", err)
	}
}

func (that *handlers) GetBoard(w http.ResponseWriter, r *http.Request) {
	that.renderCurrent(w, r)
}

// PlayCell - the human move. Moves the rules reject are ignored and the board is drawn as it is.
func (that *handlers) PlayCell(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "PlayCell")

	req, err := parseCellRequest(r)
	if err != nil {
		log.Debug("ignoring malformed move", "error", err)
		that.renderCurrent(w, r)

		return
	}

	session, err := that.games.Play(r.Context(), chi.URLParam(r, "id"), req.Index)
	if isRejectedMove(err) {
		log.Debug("ignoring rejected move", "cell", req.Index, "error", err)
		that.renderCurrent(w, r)

		return
	}

	that.render(w, r, session, err)
}

func (that *handlers) NewGame(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.NewGame(r.Context(), chi.URLParam(r, "id"))
	that.render(w, r, session, err)
}

func (that *handlers) ResetScores(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.ResetScores(r.Context(), chi.URLParam(r, "id"))
	that.render(w, r, session, err)
}

func (that *handlers) SetMode(w http.ResponseWriter, r *http.Request) {
	req, err := parseModeRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := that.games.SetMode(r.Context(), chi.URLParam(r, "id"), entity.Mode(req.Mode))
	that.render(w, r, session, err)
}

func (that *handlers) SetDifficulty(w http.ResponseWriter, r *http.Request) {
	req, err := parseDifficultyRequest(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := that.games.SetDifficulty(r.Context(), chi.URLParam(r, "id"), entity.Difficulty(req.Difficulty))
	that.render(w, r, session, err)
}

func (that *handlers) renderCurrent(w http.ResponseWriter, r *http.Request) {
	session, err := that.games.GetSession(r.Context(), chi.URLParam(r, "id"))
	that.render(w, r, session, err)
}

func (that *handlers) render(w http.ResponseWriter, r *http.Request, session *entity.Session, err error) {
	if err != nil {
		that.fail(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = view.Board(w, session); err != nil {
		that.logger.Error("failed to render board", "error", err)
	}
}

func (that *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, apperror.ErrUnknownMode), errors.Is(err, apperror.ErrUnknownDifficulty):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		that.logger.Error("request failed", "path", r.URL.Path, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func isRejectedMove(err error) bool {
	return errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrCellOccupied) ||
		errors.Is(err, apperror.ErrInvalidCell)
}
