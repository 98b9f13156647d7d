package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rocketscienceinc/tictactoe-web/internal/entity"
	"github.com/rocketscienceinc/tictactoe-web/transport/view"
)

var tracer = otel.Tracer("github.com/rocketscienceinc/tictactoe-web/transport/websocket")

type sessionGetter interface {
	GetSession(ctx context.Context, id string) (*entity.Session, error)
}

// Hub - keeps the open connections of every session and pushes the rendered board to them.
type Hub struct {
	logger   *slog.Logger
	games    sessionGetter
	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[string]map[*client]struct{}
	closed  bool
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger: logger.With("component", "websocket"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		clients: make(map[string]map[*client]struct{}),
	}
}

// SetSessions - the source of the board sent right after a client connects.
func (that *Hub) SetSessions(games sessionGetter) {
	that.games = games
}

// ServeWS - upgrades GET /ws/{id} and subscribes the connection to the session.
func (that *Hub) ServeWS(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	log := that.logger.With("method", "ServeWS", "session_id", id)

	ctx, span := tracer.Start(r.Context(), "websocket.ServeWS", trace.WithAttributes(
		attribute.String("session.id", id),
	))
	defer span.End()

	session, err := that.games.GetSession(ctx, id)
	if err != nil {
		log.Debug("refusing websocket for unknown session", "error", err)
		span.SetStatus(codes.Error, "unknown session")
		http.NotFound(w, r)

		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		span.RecordError(err)

		return
	}

	board, err := view.BoardBytes(session)
	if err != nil {
		log.Error("failed to render board", "error", err)
		_ = conn.Close()

		return
	}

	c := newClient(that, id, conn)
	if !that.register(c, board) {
		_ = conn.Close()
		return
	}

	log.Info("WebSocket connection established")

	go c.writePump()
	go c.readPump()
}

// Publish - renders the board once and queues it for every connection of the session.
// Connections that cannot keep up are dropped.
func (that *Hub) Publish(ctx context.Context, session *entity.Session) {
	_, span := tracer.Start(ctx, "websocket.Publish", trace.WithAttributes(
		attribute.String("session.id", session.ID),
	))
	defer span.End()

	that.mu.Lock()
	defer that.mu.Unlock()

	clients := that.clients[session.ID]
	if len(clients) == 0 {
		return
	}

	board, err := view.BoardBytes(session)
	if err != nil {
		span.RecordError(err)
		that.logger.Error("failed to render board", "session_id", session.ID, "error", err)

		return
	}

	span.SetAttributes(attribute.Int("clients", len(clients)))

	for c := range clients {
		if !c.enqueue(board) {
			that.logger.Warn("dropping slow websocket client", "session_id", session.ID)
			that.removeLocked(c)
		}
	}
}

// Close - disconnects everyone. Later connections are refused.
func (that *Hub) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.closed = true
	for _, clients := range that.clients {
		for c := range clients {
			that.removeLocked(c)
		}
	}
}

// Connections - number of open connections of a session.
func (that *Hub) Connections(id string) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return len(that.clients[id])
}

// register - adds the client with its first message already queued.
func (that *Hub) register(c *client, first []byte) bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.closed {
		return false
	}

	c.enqueue(first)

	if that.clients[c.sessionID] == nil {
		that.clients[c.sessionID] = make(map[*client]struct{})
	}
	that.clients[c.sessionID][c] = struct{}{}

	return true
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.removeLocked(c)
}

func (that *Hub) removeLocked(c *client) {
	clients, ok := that.clients[c.sessionID]
	if !ok {
		return
	}

	if _, ok = clients[c]; !ok {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(that.clients, c.sessionID)
	}

	close(c.send)
}
