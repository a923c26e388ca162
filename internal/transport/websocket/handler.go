package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
	"github.com/iamasit07/4-in-a-row/hotseat/internal/service/game"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

type GameSession interface {
	Start(player1Color, player2Color string) (domain.Snapshot, error)
	DropPiece(ctx context.Context, column int) (game.MoveResult, error)
	Snapshot() (domain.Snapshot, bool)
	Subscribe(fn func(domain.Snapshot)) (unsubscribe func())
}

// Handler pushes game state to renderers and accepts their input.
type Handler struct {
	ConnManager *ConnectionManager
	Session     GameSession
	Upgrader    websocket.Upgrader

	unsubscribe func()
}

// NewHandler wires the handler to session so every state change is
// broadcast to all connections. allowedOrigins empty accepts any origin.
func NewHandler(cm *ConnectionManager, session GameSession, allowedOrigins []string) *Handler {
	h := &Handler{
		ConnManager: cm,
		Session:     session,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || len(allowedOrigins) == 0 || lo.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	h.unsubscribe = session.Subscribe(func(snap domain.Snapshot) {
		cm.BroadcastMessage(stateMessage(snap))
	})
	return h
}

// Close detaches the handler from the session.
func (h *Handler) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
}

func (h *Handler) HandleWebSocket(c *gin.Context) {
	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Str("component", "ws").Err(err).Msg("upgrade failed")
		return
	}

	h.handleConnection(conn)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn) {
	id := h.ConnManager.AddConnection(conn)
	logger := log.With().Str("component", "ws").Int64("conn", id).Logger()
	logger.Info().Msg("renderer connected")

	defer func() {
		logger.Info().Msg("renderer disconnected")
		h.ConnManager.RemoveConnection(id)
	}()

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go h.keepAlive(id, conn, done)

	// a late joiner renders the game in progress straight away
	if snap, ok := h.Session.Snapshot(); ok {
		h.ConnManager.SendMessage(id, stateMessage(snap))
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn().Err(err).Msg("unexpected close")
			}
			return
		}

		var msg domain.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug().Err(err).Msg("invalid message format")
			h.ConnManager.SendMessage(id, errorMessage("invalid message format"))
			continue
		}

		h.processMessage(id, msg)
	}
}

func (h *Handler) keepAlive(id int64, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				log.Debug().Str("component", "ws").Int64("conn", id).Err(err).Msg("ping failed")
				return
			}
		}
	}
}

// processMessage routes specific actions. Successful changes reach every
// renderer through the session subscription; only failures are answered
// directly.
func (h *Handler) processMessage(id int64, msg domain.ClientMessage) {
	switch msg.Type {
	case "start":
		if _, err := h.Session.Start(msg.Player1Color, msg.Player2Color); err != nil {
			h.ConnManager.SendMessage(id, errorMessage(err.Error()))
		}

	case "drop_piece":
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if _, err := h.Session.DropPiece(ctx, msg.Column); err != nil {
			h.ConnManager.SendMessage(id, errorMessage(err.Error()))
		}

	case "sync":
		snap, ok := h.Session.Snapshot()
		if !ok {
			h.ConnManager.SendMessage(id, errorMessage(game.ErrNoGame.Error()))
			return
		}
		h.ConnManager.SendMessage(id, stateMessage(snap))

	default:
		h.ConnManager.SendMessage(id, errorMessage("unknown message type"))
	}
}

func stateMessage(snap domain.Snapshot) domain.ServerMessage {
	return domain.ServerMessage{Type: "state", State: &snap}
}

func errorMessage(text string) domain.ServerMessage {
	return domain.ServerMessage{Type: "error", Message: text}
}
