package websocket

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/takitajwar17/my-chat-app/pkg/logger"
)

// Client is one WebSocket connection. A user may hold several at once, so
// clients are tracked by connection id rather than user id.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn

	mu     sync.Mutex
	send   chan []byte
	closed bool
}

func NewClient(id, userID string, conn *websocket.Conn) *Client {
	return &Client{
		ID:     id,
		UserID: userID,
		Conn:   conn,
		send:   make(chan []byte, 256),
	}
}

// Manager tracks all active WebSocket connections.
type Manager struct {
	clients    map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's registration loop until ctx is cancelled.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				m.clients[client.ID] = client
				m.mutex.Unlock()
				logger.Info("WebSocket client registered: user=%s conn=%s", client.UserID, client.ID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if _, ok := m.clients[client.ID]; ok {
					delete(m.clients, client.ID)
					client.shutdown()
				}
				m.mutex.Unlock()
				logger.Info("WebSocket client unregistered: user=%s conn=%s", client.UserID, client.ID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

// SendToUser delivers a frame to every connection the user holds.
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		if client.UserID == userID {
			client.Push(message)
		}
	}
}

// Push queues a frame on this client's outbound channel. Pushing to a closed
// client is a no-op; listener callbacks may still fire briefly after
// teardown. A full buffer drops the frame, the next snapshot supersedes it.
func (c *Client) Push(message []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	select {
	case c.send <- message:
	default:
		logger.Warn("Dropping frame for slow WebSocket client: user=%s conn=%s", c.UserID, c.ID)
	}
}

func (c *Client) shutdown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// ReadPump reads client frames until the connection closes, handing each one
// to handle. It blocks; run WritePump in a separate goroutine.
func (c *Client) ReadPump(m *Manager, handle func([]byte)) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket read error for user %s: %v", c.UserID, err)
			}
			break
		}
		handle(message)
	}
}

// WritePump drains the send channel onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		message, ok := <-c.send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
			logger.Error("WebSocket write error for user %s: %v", c.UserID, err)
			return
		}
	}
}
