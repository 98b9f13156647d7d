package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-web/internal/config"
)

func TestInitOtel(t *testing.T) {
	t.Run("Disabled without an endpoint", func(t *testing.T) {
		// Given: no collector endpoint
		conf := config.Telemetry{ServiceName: "tictactoe-web"}

		// When: telemetry is initialised
		shutdown, err := InitOtel(context.Background(), conf)

		// Then: nothing is exported and shutdown is a no-op
		require.NoError(t, err)
		assert.False(t, Enabled(conf))
		assert.NoError(t, shutdown(context.Background()))
	})

	t.Run("Providers start lazily against an endpoint", func(t *testing.T) {
		conf := config.Telemetry{ServiceName: "tictactoe-web", OTLPEndpoint: "localhost:4317"}

		shutdown, err := InitOtel(context.Background(), conf)

		require.NoError(t, err)
		assert.True(t, Enabled(conf))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		// nothing was recorded, so shutdown has nothing to push
		_ = shutdown(ctx)
	})
}
