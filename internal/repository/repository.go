package repository

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
	"github.com/rocketscienceinc/tictactoe-web/internal/repository/storage"
)

// New - builds the session repository selected by conf.Driver.
func New(ctx context.Context, conf config.Storage) (SessionRepository, error) {
	switch conf.Driver {
	case config.StorageMemory:
		return NewMemorySessionRepository(conf.SessionTTL), nil
	case config.StorageRedis:
		redisStorage, err := storage.NewRedisStorage(ctx, conf.Redis.GetRedisAddr())
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return NewRedisSessionRepository(redisStorage.Connection, conf.SessionTTL), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", conf.Driver)
	}
}
