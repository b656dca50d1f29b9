package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// ConnectionManager tracks one live connection per game. A second
// connection for the same game replaces the first.
type ConnectionManager struct {
	connections map[string]*websocket.Conn

	// conn.WriteJSON is not safe for concurrent use, so every write to a
	// game's socket goes through its mutex
	writeMu map[string]*sync.Mutex

	mu sync.RWMutex
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		connections: make(map[string]*websocket.Conn),
		writeMu:     make(map[string]*sync.Mutex),
	}
}

func (cm *ConnectionManager) AddConnection(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	old, exists := cm.connections[gameID]
	oldMu := cm.writeMu[gameID]
	cm.connections[gameID] = conn
	cm.writeMu[gameID] = &sync.Mutex{}
	cm.mu.Unlock()

	if exists && old != conn {
		oldMu.Lock()
		old.SetWriteDeadline(time.Now().Add(writeWait))
		_ = old.WriteJSON(ServerMessage{
			Type:    TypeForceDisconnect,
			GameID:  gameID,
			Message: "game opened in another connection",
		})
		oldMu.Unlock()
		old.Close()
	}
}

// RemoveConnectionIfMatching only removes conn if it is still the current
// connection of the game, so a replaced socket cannot evict its successor.
func (cm *ConnectionManager) RemoveConnectionIfMatching(gameID string, conn *websocket.Conn) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if current, exists := cm.connections[gameID]; exists && current == conn {
		delete(cm.connections, gameID)
		delete(cm.writeMu, gameID)
	}
	conn.Close()
}

func (cm *ConnectionManager) IsCurrentConnection(gameID string, conn *websocket.Conn) bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	current, exists := cm.connections[gameID]
	return exists && current == conn
}

// SendMessage writes a JSON message to the game's connection. A game
// without a connection is not an error.
func (cm *ConnectionManager) SendMessage(gameID string, message ServerMessage) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(message)
}

// Ping sends a control ping to the game's connection under its write lock.
func (cm *ConnectionManager) Ping(gameID string) error {
	cm.mu.RLock()
	conn, exists := cm.connections[gameID]
	mu, muExists := cm.writeMu[gameID]
	cm.mu.RUnlock()

	if !exists || !muExists {
		return websocket.ErrCloseSent
	}

	mu.Lock()
	defer mu.Unlock()
	return conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (cm *ConnectionManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.connections)
}
