package application

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository"
	"github.com/rocketscienceinc/tictactoe-web/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-web/transport/rest"
	"github.com/rocketscienceinc/tictactoe-web/transport/websocket"
)

const shutdownTimeout = 10 * time.Second

// RunApp - runs the application until SIGINT/SIGTERM or a server failure.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sessionRepo, err := repository.New(ctx, conf.Storage)
	if err != nil {
		return fmt.Errorf("could not create session storage: %w", err)
	}

	defer func() {
		if err = sessionRepo.Close(); err != nil {
			log.Error("could not close session storage", "error", err)
		}
	}()

	hub := websocket.NewHub(logger)
	defer hub.Close()

	gameManager := usecase.NewGameManager(logger, sessionRepo, hub, newRand(conf.Game.Seed), conf.Game.ComputerDelay)
	defer gameManager.Close()

	hub.SetSessions(gameManager)

	server := rest.New(logger, conf.HTTPPort, rest.NewRouter(logger, gameManager, hub.ServeWS))

	httpErrCh := make(chan error, 1)
	go func() {
		httpErrCh <- server.Start()
	}()

	log.Info("application started", "storage", conf.Storage.Driver, "port", conf.HTTPPort)

	select {
	case err = <-httpErrCh:
		if err != nil {
			return fmt.Errorf("HTTP server error: %w", err)
		}

		return nil
	case <-ctx.Done():
		log.Info("Received signal, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("HTTP server shutdown: %w", err)
	}

	return nil
}

// newRand - a fixed seed makes the computer's choices reproducible, zero seeds from the clock.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	return rand.New(rand.NewPCG(seed, seed>>1|1))
}

// Exit - prints err and terminates with a failure code.
func Exit(err error) {
	fmt.Fprintf(os.Stderr, "%v\n", err)
	os.Exit(1)
}
