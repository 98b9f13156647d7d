package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-web/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/internal/opponent"
	"github.com/rocketscienceinc/tictactoe-web/internal/tictactoe"
)

const instrumentationName = "github.com/rocketscienceinc/tictactoe-web/internal/usecase"

var tracer = otel.Tracer(instrumentationName)

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
}

// Publisher - receives every saved session so that connected clients can be refreshed.
type Publisher interface {
	Publish(ctx context.Context, session *entity.Session)
}

// GameManager - owns every session. All mutations, including the deferred computer move,
// go through it one at a time.
type GameManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	publisher   Publisher
	scheduler   Scheduler

	rng           *rand.Rand
	computerDelay time.Duration
	now           func() time.Time

	gamesCompleted metric.Int64Counter

	mu      sync.Mutex
	pending map[string]func()
	closed  bool
}

func NewGameManager(
	logger *slog.Logger,
	sessionRepo sessionRepo,
	publisher Publisher,
	rng *rand.Rand,
	computerDelay time.Duration,
) *GameManager {
	log := logger.With("component", "game_manager")

	gamesCompleted, err := otel.Meter(instrumentationName).Int64Counter(
		"tictactoe.games.completed",
		metric.WithDescription("Number of finished games by result"),
	)
	if err != nil {
		log.Warn("failed to create games counter", "error", err)
		gamesCompleted = noop.Int64Counter{}
	}

	return &GameManager{
		logger:      log,
		sessionRepo: sessionRepo,
		publisher:   publisher,
		scheduler:   NewTimerScheduler(),

		rng:           rng,
		computerDelay: computerDelay,
		now:           time.Now,

		gamesCompleted: gamesCompleted,

		pending: make(map[string]func()),
	}
}

// CreateSession - starts a fresh session: player vs player, medium difficulty, zero scores.
func (that *GameManager) CreateSession(ctx context.Context) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session := entity.NewSession(uuid.NewString(), that.now())
	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Debug("session created", "session_id", session.ID)

	return session, nil
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

// Play - the human move at cell. In computer mode the human always plays X, and the
// computer's answer is scheduled after computerDelay.
func (that *GameManager) Play(ctx context.Context, id string, cell int) (*entity.Session, error) {
	ctx, span := tracer.Start(ctx, "GameManager.Play", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.Int("cell", cell),
	))
	defer span.End()

	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	if session.AwaitsComputer() {
		return nil, apperror.ErrNotYourTurn
	}

	outcome, err := tictactoe.MakeTurn(session, session.Game.Current, cell)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	if err = that.save(ctx, session, outcome); err != nil {
		return nil, err
	}

	if session.AwaitsComputer() {
		that.scheduleComputerTurn(session)
	}

	return session, nil
}

// NewGame - clears the board and keeps the score. A pending computer move is dropped.
func (that *GameManager) NewGame(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, func(session *entity.Session) {
		session.NewGame()
	})
}

// ResetScores - zeroes the score board. The game in progress is untouched.
func (that *GameManager) ResetScores(ctx context.Context, id string) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Scores.Reset()

	if err = that.save(ctx, session, nil); err != nil {
		return nil, err
	}

	return session, nil
}

// SetMode - switches between player vs player and player vs computer and starts a new game.
func (that *GameManager) SetMode(ctx context.Context, id string, mode entity.Mode) (*entity.Session, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownMode, mode)
	}

	return that.update(ctx, id, func(session *entity.Session) {
		session.Mode = mode
		session.NewGame()
	})
}

// SetDifficulty - picks the computer strategy and starts a new game.
func (that *GameManager) SetDifficulty(ctx context.Context, id string, difficulty entity.Difficulty) (*entity.Session, error) {
	if !difficulty.Valid() {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownDifficulty, difficulty)
	}

	return that.update(ctx, id, func(session *entity.Session) {
		session.Difficulty = difficulty
		session.NewGame()
	})
}

// Close - cancels every pending computer move. Later calls to the scheduled tasks do nothing.
func (that *GameManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	for id, cancel := range that.pending {
		cancel()
		delete(that.pending, id)
	}
}

// update - loads the session, applies a change that starts a new game, and saves it.
func (that *GameManager) update(ctx context.Context, id string, change func(session *entity.Session)) (*entity.Session, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	session, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	change(session)
	that.cancelComputerTurn(id)

	if err = that.save(ctx, session, nil); err != nil {
		return nil, err
	}

	return session, nil
}

func (that *GameManager) scheduleComputerTurn(session *entity.Session) {
	that.cancelComputerTurn(session.ID)

	id, generation := session.ID, session.Game.Generation
	that.pending[id] = that.scheduler.Schedule(that.computerDelay, func() {
		that.computerTurn(id, generation)
	})
}

func (that *GameManager) cancelComputerTurn(id string) {
	if cancel, ok := that.pending[id]; ok {
		cancel()
		delete(that.pending, id)
	}
}

// computerTurn - the deferred computer move. It only plays into the game it was scheduled for.
func (that *GameManager) computerTurn(id string, generation uint64) {
	log := that.logger.With("method", "computerTurn", "session_id", id)

	ctx, span := tracer.Start(context.Background(), "GameManager.computerTurn", trace.WithAttributes(
		attribute.String("session.id", id),
		attribute.Int64("game.generation", int64(generation)),
	))
	defer span.End()

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return
	}

	delete(that.pending, id)

	session, err := that.GetSession(ctx, id)
	if errors.Is(err, apperror.ErrSessionNotFound) {
		log.Debug("session is gone, skipping computer move")
		return
	}

	if err != nil {
		span.RecordError(err)
		log.Error("failed to load session", "error", err)

		return
	}

	if session.Game.Generation != generation || !session.AwaitsComputer() {
		log.Debug("stale computer move skipped", "generation", generation, "current_generation", session.Game.Generation)
		return
	}

	strategy, err := opponent.New(session.Difficulty, that.rng)
	if err != nil {
		span.RecordError(err)
		log.Error("failed to pick strategy", "error", err)

		return
	}

	cell, err := strategy.Choose(session.Game.Board, entity.ComputerMarker)
	if err != nil {
		span.RecordError(err)
		log.Error("computer could not choose a cell", "error", err)

		return
	}

	span.SetAttributes(
		attribute.String("game.difficulty", string(session.Difficulty)),
		attribute.Int("cell", cell),
	)

	outcome, err := tictactoe.MakeTurn(session, entity.ComputerMarker, cell)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "computer move rejected")
		log.Error("computer move rejected", "cell", cell, "error", err)

		return
	}

	if err = that.save(ctx, session, outcome); err != nil {
		span.RecordError(err)
		log.Error("failed to save computer move", "error", err)
	}
}

// save - stores the session, counts a finished game and notifies subscribers.
func (that *GameManager) save(ctx context.Context, session *entity.Session, outcome *entity.Outcome) error {
	session.UpdatedAt = that.now()

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if outcome != nil {
		that.gamesCompleted.Add(ctx, 1, metric.WithAttributes(
			attribute.String("result", resultLabel(outcome)),
			attribute.String("mode", string(session.Mode)),
		))

		that.logger.Info("game finished", "session_id", session.ID, "result", resultLabel(outcome))
	}

	that.publisher.Publish(ctx, session)

	return nil
}

func resultLabel(outcome *entity.Outcome) string {
	if outcome.Draw {
		return "draw"
	}

	return string(outcome.Winner)
}
