package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"

	"tukarin/pkg/logger"
)

var (
	errInvalidFrame = errors.New("invalid frame")
	errMissingRoom  = errors.New("missing room_id")
	errUnknownFrame = errors.New("unknown frame type")
)

// Client represents one WebSocket connection. A user has at most one
// live connection; reconnecting replaces the old one.
type Client struct {
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte

	mu     sync.Mutex
	closed bool
}

// trySend enqueues a payload without blocking. Both returns false when
// the client is already closed; full reports a live client whose
// buffer had no room.
func (c *Client) trySend(payload []byte) (sent, full bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false, false
	}

	select {
	case c.Send <- payload:
		return true, false
	default:
		return false, true
	}
}

// closeSend closes the send channel exactly once. Every close goes
// through here so a publisher holding a stale reference can never send
// on a closed channel: trySend and closeSend serialize on the same
// mutex.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Manager owns all live connections and the room subscription registry.
// One topic per chat room: an event published to a room is fanned out
// to every client currently joined to it, in publish order (each Send
// channel is FIFO). There is no retroactive delivery; clients close the
// gap over the REST history endpoint after (re)subscribing.
type Manager struct {
	clients    map[string]*Client
	rooms      map[string]map[string]*Client
	Register   chan *Client
	Unregister chan *Client
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		rooms:      make(map[string]map[string]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Start runs the manager's registration loop in a goroutine.
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.mutex.Lock()
				old := m.clients[client.UserID]
				if old == client {
					old = nil
				}
				if old != nil {
					m.removeFromRoomsLocked(old)
				}
				m.clients[client.UserID] = client
				m.mutex.Unlock()

				if old != nil {
					old.closeSend()
				}
				logger.Info("WebSocket client registered: %s", client.UserID)

			case client := <-m.Unregister:
				m.mutex.Lock()
				if current, ok := m.clients[client.UserID]; ok && current == client {
					delete(m.clients, client.UserID)
				}
				m.removeFromRoomsLocked(client)
				m.mutex.Unlock()

				client.closeSend()
				logger.Info("WebSocket client unregistered: %s", client.UserID)

			case <-ctx.Done():
				return
			}
		}
	}()
}

func (m *Manager) removeFromRoomsLocked(client *Client) {
	for roomID, members := range m.rooms {
		if members[client.UserID] == client {
			delete(members, client.UserID)
			if len(members) == 0 {
				delete(m.rooms, roomID)
			}
		}
	}
}

// JoinRoom subscribes a client to a room topic. Re-joining the same
// room is a no-op, so reconnect loops are safe.
func (m *Manager) JoinRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members, ok := m.rooms[roomID]
	if !ok {
		members = make(map[string]*Client)
		m.rooms[roomID] = members
	}
	members[client.UserID] = client
}

// LeaveRoom unsubscribes a client from a room topic. Idempotent.
func (m *Manager) LeaveRoom(roomID string, client *Client) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	members, ok := m.rooms[roomID]
	if !ok {
		return
	}
	if members[client.UserID] == client {
		delete(members, client.UserID)
		if len(members) == 0 {
			delete(m.rooms, roomID)
		}
	}
}

// PublishToRoom fans an event out to every current subscriber of the
// room topic, excluding excludeUserID when non-empty. Delivery is
// best-effort: a subscriber whose buffer is full is dropped and must
// reconcile through message history on reconnect.
func (m *Manager) PublishToRoom(roomID string, event Event, excludeUserID string) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("WebSocket: failed to marshal event for room %s: %v", roomID, err)
		return
	}

	m.mutex.RLock()
	members := m.rooms[roomID]
	targets := make([]*Client, 0, len(members))
	for userID, client := range members {
		if userID == excludeUserID {
			continue
		}
		targets = append(targets, client)
	}
	m.mutex.RUnlock()

	for _, client := range targets {
		m.deliver(client, payload)
	}
}

// SendToUser sends an event to a single user's connection, if any.
func (m *Manager) SendToUser(userID string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("WebSocket: failed to marshal event for user %s: %v", userID, err)
		return
	}

	m.mutex.RLock()
	client, ok := m.clients[userID]
	m.mutex.RUnlock()

	if ok {
		m.deliver(client, payload)
	}
}

// deliver pushes a payload onto the client's buffer. Concurrent
// publishers may race a drop; the per-client mutex inside
// trySend/closeSend guarantees nobody sends after the channel closes.
func (m *Manager) deliver(client *Client, payload []byte) {
	sent, full := client.trySend(payload)
	if sent || !full {
		return
	}

	logger.Warn("WebSocket: client %s send buffer full, dropping connection", client.UserID)

	m.mutex.Lock()
	if current, ok := m.clients[client.UserID]; ok && current == client {
		delete(m.clients, client.UserID)
	}
	m.removeFromRoomsLocked(client)
	m.mutex.Unlock()

	client.closeSend()
}

// RoomSize returns the number of live subscribers on a room topic.
func (m *Manager) RoomSize(roomID string) int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.rooms[roomID])
}

// ReadPump reads and dispatches client frames until the connection
// drops. Must run in its own goroutine, one per connection.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Unregister <- c
		c.Conn.Close()
	}()

	for {
		_, raw, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("WebSocket read error for %s: %v", c.UserID, err)
			}
			break
		}

		frame, err := ParseClientFrame(raw)
		if err != nil {
			event := NewEvent(EventError)
			event.Error = err.Error()
			m.SendToUser(c.UserID, event)
			continue
		}

		switch frame.Type {
		case FramePing:
			m.SendToUser(c.UserID, NewEvent(EventPong))

		case FrameJoinRoom:
			m.JoinRoom(frame.RoomID, c)
			event := NewEvent(EventJoinedRoom)
			event.RoomID = frame.RoomID
			m.SendToUser(c.UserID, event)

		case FrameLeaveRoom:
			m.LeaveRoom(frame.RoomID, c)

		case FrameTyping:
			event := NewEvent(EventTyping)
			event.RoomID = frame.RoomID
			event.SenderID = c.UserID
			event.Typing = frame.Typing
			m.PublishToRoom(frame.RoomID, event, c.UserID)
		}
	}
}

// WritePump drains the send channel onto the connection.
func (c *Client) WritePump() {
	defer c.Conn.Close()

	for {
		payload, ok := <-c.Send
		if !ok {
			c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
			return
		}

		if err := c.Conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			logger.Warn("WebSocket write error for %s: %v", c.UserID, err)
			return
		}
	}
}
