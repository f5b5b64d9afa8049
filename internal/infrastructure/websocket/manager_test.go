package websocket

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID string, buffer int) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
}

func drain(c *Client) []Event {
	var events []Event
	for {
		select {
		case payload := <-c.Send:
			var event Event
			if err := json.Unmarshal(payload, &event); err == nil {
				events = append(events, event)
			}
		default:
			return events
		}
	}
}

func TestJoinRoomIsIdempotent(t *testing.T) {
	m := NewManager()
	alice := newTestClient("alice", 16)

	m.JoinRoom("room-1", alice)
	m.JoinRoom("room-1", alice)

	assert.Equal(t, 1, m.RoomSize("room-1"))
}

func TestPublishToRoomPreservesOrder(t *testing.T) {
	m := NewManager()
	alice := newTestClient("alice", 16)
	bob := newTestClient("bob", 16)

	m.JoinRoom("room-1", alice)
	m.JoinRoom("room-1", bob)

	for _, id := range []string{"a", "b", "c"} {
		event := NewEvent(EventMessage)
		event.RoomID = "room-1"
		event.SenderID = id
		m.PublishToRoom("room-1", event, "alice")
	}

	bobEvents := drain(bob)
	require.Len(t, bobEvents, 3)
	assert.Equal(t, "a", bobEvents[0].SenderID)
	assert.Equal(t, "b", bobEvents[1].SenderID)
	assert.Equal(t, "c", bobEvents[2].SenderID)

	assert.Empty(t, drain(alice), "publisher must be excluded")
}

func TestNoRetroactiveDelivery(t *testing.T) {
	m := NewManager()

	event := NewEvent(EventMessage)
	event.RoomID = "room-1"
	m.PublishToRoom("room-1", event, "")

	late := newTestClient("late", 16)
	m.JoinRoom("room-1", late)

	assert.Empty(t, drain(late), "joining must not replay past events")
}

func TestLeaveRoomStopsDelivery(t *testing.T) {
	m := NewManager()
	alice := newTestClient("alice", 16)

	m.JoinRoom("room-1", alice)
	m.LeaveRoom("room-1", alice)
	m.LeaveRoom("room-1", alice) // idempotent

	event := NewEvent(EventMessage)
	event.RoomID = "room-1"
	m.PublishToRoom("room-1", event, "")

	assert.Empty(t, drain(alice))
	assert.Equal(t, 0, m.RoomSize("room-1"))
}

func TestSlowSubscriberIsDropped(t *testing.T) {
	m := NewManager()
	slow := newTestClient("slow", 1)

	m.JoinRoom("room-1", slow)

	event := NewEvent(EventMessage)
	event.RoomID = "room-1"
	m.PublishToRoom("room-1", event, "")
	m.PublishToRoom("room-1", event, "")

	assert.Equal(t, 0, m.RoomSize("room-1"), "a subscriber with a full buffer is evicted")
}

func TestConcurrentPublishSurvivesSlowSubscriberDrop(t *testing.T) {
	// Publishers snapshot room members under a read lock and send
	// afterwards, so one of them dropping a full client must not make
	// another publisher send on a closed channel. Run with -race.
	for i := 0; i < 50; i++ {
		m := NewManager()
		slow := newTestClient("slow", 1)
		healthy := newTestClient("healthy", 256)

		m.JoinRoom("room-1", slow)
		m.JoinRoom("room-1", healthy)

		var wg sync.WaitGroup
		for p := 0; p < 8; p++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 4; j++ {
					event := NewEvent(EventMessage)
					event.RoomID = "room-1"
					m.PublishToRoom("room-1", event, "")
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, m.RoomSize("room-1"), "only the healthy subscriber remains")
		assert.Len(t, drain(healthy), 32)
	}
}

func TestPublishToDroppedClientIsNoOp(t *testing.T) {
	m := NewManager()
	slow := newTestClient("slow", 1)

	m.JoinRoom("room-1", slow)

	event := NewEvent(EventMessage)
	event.RoomID = "room-1"
	m.PublishToRoom("room-1", event, "")
	m.PublishToRoom("room-1", event, "")

	require.Equal(t, 0, m.RoomSize("room-1"))

	// A publisher that captured the client before the drop delivers
	// into a closed channel's guard, not the channel itself.
	m.deliver(slow, []byte(`{}`))
}

func TestSendToUserRequiresRegistration(t *testing.T) {
	m := NewManager()
	alice := newTestClient("alice", 16)

	m.SendToUser("alice", NewEvent(EventPong))
	assert.Empty(t, drain(alice))
}

func TestParseClientFrame(t *testing.T) {
	frame, err := ParseClientFrame([]byte(`{"type":"join_room","room_id":"room-1"}`))
	require.NoError(t, err)
	assert.Equal(t, FrameJoinRoom, frame.Type)
	assert.Equal(t, "room-1", frame.RoomID)

	frame, err = ParseClientFrame([]byte(`{"type":"ping"}`))
	require.NoError(t, err)
	assert.Equal(t, FramePing, frame.Type)

	_, err = ParseClientFrame([]byte(`{"type":"join_room"}`))
	assert.ErrorIs(t, err, errMissingRoom)

	_, err = ParseClientFrame([]byte(`{"type":"shutdown"}`))
	assert.ErrorIs(t, err, errUnknownFrame)

	_, err = ParseClientFrame([]byte(`not json`))
	assert.ErrorIs(t, err, errInvalidFrame)
}
