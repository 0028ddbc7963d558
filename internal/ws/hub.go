package ws

import (
	"context"
	"encoding/json"
	"log"
	"sync"
)

// Frame is the envelope for every message in both directions.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type roomMessage struct {
	room string
	all  bool
	body []byte
}

type joinRequest struct {
	client *Client
	room   string
}

// Hub owns the room table for this process. Membership changes happen only on
// the Run goroutine; the table is not shared between server instances.
type Hub struct {
	clients    map[*Client]string
	rooms      map[string]map[*Client]struct{}
	broadcast  chan roomMessage
	register   chan joinRequest
	unregister chan *Client
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[*Client]string),
		rooms:      make(map[string]map[*Client]struct{}),
		broadcast:  make(chan roomMessage, 1024),
		register:   make(chan joinRequest, 128),
		unregister: make(chan *Client, 128),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case req := <-h.register:
			h.handleJoin(req)

		case client := <-h.unregister:
			h.handleUnregister(client)

		case msg := <-h.broadcast:
			h.mutex.RLock()
			snapshot := make([]*Client, 0)
			if msg.all {
				for c := range h.clients {
					snapshot = append(snapshot, c)
				}
			} else {
				for c := range h.rooms[msg.room] {
					snapshot = append(snapshot, c)
				}
			}
			h.mutex.RUnlock()

			var slow []*Client
			for _, client := range snapshot {
				select {
				case client.send <- msg.body:
				default:
					slow = append(slow, client)
				}
			}
			if len(slow) > 0 {
				h.mutex.Lock()
				for _, c := range slow {
					h.remove(c)
				}
				h.mutex.Unlock()
				h.logf("WS dropped slow clients | count=%d", len(slow))
			}
		}
	}
}

func (h *Hub) handleJoin(req joinRequest) {
	if req.client == nil {
		return
	}
	h.mutex.Lock()
	h.join(req.client, req.room)
	total := len(h.clients)
	h.mutex.Unlock()
	h.logf("WS joined | room=%s total_clients=%d", req.room, total)
}

// handleUnregister may run before the client's join: the client is marked
// gone either way so a late join cannot add it back.
func (h *Hub) handleUnregister(c *Client) {
	if c == nil {
		return
	}
	h.mutex.Lock()
	removed := h.remove(c)
	if !removed && !c.gone {
		c.gone = true
		close(c.send)
	}
	total := len(h.clients)
	h.mutex.Unlock()
	if removed {
		h.logf("WS disconnected | total_clients=%d", total)
	}
}

// join moves c into room, leaving any room it was in before.
func (h *Hub) join(c *Client, room string) {
	if c.gone {
		return
	}
	if prev, ok := h.clients[c]; ok && prev != room {
		if members := h.rooms[prev]; members != nil {
			delete(members, c)
			if len(members) == 0 {
				delete(h.rooms, prev)
			}
		}
	}
	h.clients[c] = room
	members := h.rooms[room]
	if members == nil {
		members = make(map[*Client]struct{})
		h.rooms[room] = members
	}
	members[c] = struct{}{}
}

func (h *Hub) remove(c *Client) bool {
	room, ok := h.clients[c]
	if !ok {
		return false
	}
	delete(h.clients, c)
	if members := h.rooms[room]; members != nil {
		delete(members, c)
		if len(members) == 0 {
			delete(h.rooms, room)
		}
	}
	c.gone = true
	close(c.send)
	return true
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		h.remove(c)
	}
}

func (h *Hub) Join(client *Client, room string) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.register <- joinRequest{client: client, room: room}:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// EmitToRoom queues event for every connection in room. It never blocks and
// never fails; an empty room is a no-op.
func (h *Hub) EmitToRoom(room, event string, payload any) {
	if h == nil || room == "" {
		return
	}
	h.enqueue(roomMessage{room: room}, event, payload)
}

func (h *Hub) EmitToAll(event string, payload any) {
	if h == nil {
		return
	}
	h.enqueue(roomMessage{all: true}, event, payload)
}

func (h *Hub) enqueue(msg roomMessage, event string, payload any) {
	b, err := json.Marshal(Frame{Event: event, Data: payload})
	if err != nil {
		h.logf("WS emit dropped | event=%s reason=marshal err=%v", event, err)
		return
	}
	msg.body = b
	select {
	case h.broadcast <- msg:
	default:
		h.logf("WS emit dropped | event=%s reason=buffer_full", event)
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

func (h *Hub) RoomSize(room string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.rooms[room])
}

func (h *Hub) logf(format string, args ...any) {
	if h.logger != nil {
		h.logger.Printf(format, args...)
	}
}
