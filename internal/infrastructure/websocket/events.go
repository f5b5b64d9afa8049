package websocket

import (
	"encoding/json"
	"time"

	"tukarin/internal/domain/entity"
)

// Event types delivered to subscribers.
const (
	EventMessage        = "message"
	EventChatListUpdate = "chat_list_update"
	EventTyping         = "typing_indicator"
	EventJoinedRoom     = "joined_room"
	EventPong           = "pong"
	EventError          = "error"
)

// Frame types accepted from clients.
const (
	FrameJoinRoom  = "join_room"
	FrameLeaveRoom = "leave_room"
	FramePing      = "ping"
	FrameTyping    = "typing"
)

// Event is the tagged envelope published on a room topic or sent to a
// single user. The message payload always carries the server-assigned
// id, seq and timestamp; clients never see their own unpersisted shape
// echoed back.
type Event struct {
	Type      string          `json:"type"`
	RoomID    string          `json:"room_id,omitempty"`
	Message   *entity.Message `json:"message,omitempty"`
	SenderID  string          `json:"sender_id,omitempty"`
	Sender    string          `json:"sender,omitempty"`
	Typing    bool            `json:"typing,omitempty"`
	Error     string          `json:"error,omitempty"`
	Timestamp string          `json:"timestamp"`
}

func NewEvent(eventType string) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// ClientFrame is the only shape accepted over the wire from clients.
// Everything else arrives via the REST surface; the socket is a
// delivery channel, not an ingestion path.
type ClientFrame struct {
	Type   string `json:"type"`
	RoomID string `json:"room_id,omitempty"`
	Typing bool   `json:"typing,omitempty"`
}

// ParseClientFrame validates an inbound frame at the subscription
// boundary. Unknown or malformed frames are rejected before they reach
// any room state.
func ParseClientFrame(raw []byte) (*ClientFrame, error) {
	var frame ClientFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		return nil, errInvalidFrame
	}

	switch frame.Type {
	case FramePing:
		return &frame, nil
	case FrameJoinRoom, FrameLeaveRoom, FrameTyping:
		if frame.RoomID == "" {
			return nil, errMissingRoom
		}
		return &frame, nil
	default:
		return nil, errUnknownFrame
	}
}
