package websocket

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/iamasit07/4-in-a-row/hotseat/internal/domain"
)

const writeWait = 10 * time.Second

type client struct {
	conn *websocket.Conn
	// writeMu serializes writes; conn.WriteJSON is not safe for concurrent use.
	writeMu sync.Mutex
}

// ConnectionManager tracks every open renderer connection.
type ConnectionManager struct {
	nextID  atomic.Int64
	clients map[int64]*client
	mu      sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		clients: make(map[int64]*client),
	}
}

// AddConnection registers conn and returns the id used to address it.
func (cm *ConnectionManager) AddConnection(conn *websocket.Conn) int64 {
	id := cm.nextID.Add(1)

	cm.mu.Lock()
	cm.clients[id] = &client{conn: conn}
	cm.mu.Unlock()

	return id
}

func (cm *ConnectionManager) RemoveConnection(id int64) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if c, exists := cm.clients[id]; exists {
		c.conn.Close()
		delete(cm.clients, id)
	}
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// SendMessage writes message to one connection. Unknown ids are ignored.
func (cm *ConnectionManager) SendMessage(id int64, message domain.ServerMessage) error {
	cm.mu.RLock()
	c, exists := cm.clients[id]
	cm.mu.RUnlock()

	if !exists {
		return nil
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

// BroadcastMessage sends message to every connection.
func (cm *ConnectionManager) BroadcastMessage(message domain.ServerMessage) {
	cm.mu.RLock()
	ids := make([]int64, 0, len(cm.clients))
	for id := range cm.clients {
		ids = append(ids, id)
	}
	cm.mu.RUnlock()

	for _, id := range ids {
		if err := cm.SendMessage(id, message); err != nil {
			log.Debug().Str("component", "ws").Int64("conn", id).Err(err).Msg("broadcast write failed")
		}
	}
}
