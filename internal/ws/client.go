package ws

import (
	"encoding/json"
	"log"
	"time"

	"jobboard/internal/domain/notification"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

type inboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type registerData struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

// Identity is the authenticated subject behind a connection.
type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (i Identity) Room() string {
	return notification.RoomFor(i.UserID, i.Role)
}

type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	identity Identity
	logger   *log.Logger

	// send is closed by the hub. direct carries replies to this client only
	// and is never closed.
	send   chan []byte
	direct chan []byte

	// gone is owned by the hub goroutine.
	gone bool
}

func NewClient(hub *Hub, conn *websocket.Conn, identity Identity, logger *log.Logger) *Client {
	return &Client{
		hub:      hub,
		conn:     conn,
		identity: identity,
		logger:   logger,
		send:     make(chan []byte, sendBuffer),
		direct:   make(chan []byte, 8),
	}
}

func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var in inboundFrame
		if err := json.Unmarshal(raw, &in); err != nil {
			continue
		}

		switch in.Event {
		case "ping":
			c.reply("pong", map[string]any{"time": time.Now().UTC().UnixMilli()})
		case "register":
			c.handleRegister(in.Data)
		}
	}
}

// handleRegister lets a connection re-join its own room. Naming any other
// subject is refused.
func (c *Client) handleRegister(raw json.RawMessage) {
	var d registerData
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &d); err != nil {
			c.reply("registered", map[string]any{"ok": false})
			return
		}
	}

	if d.UserID != "" && d.UserID != c.identity.UserID.String() {
		if c.logger != nil {
			c.logger.Printf("WS register refused | subject=%s requested=%s", c.identity.UserID, d.UserID)
		}
		c.reply("registered", map[string]any{"ok": false})
		return
	}
	if d.Role != "" && d.Role != c.identity.Role {
		c.reply("registered", map[string]any{"ok": false})
		return
	}

	c.hub.Join(c, c.identity.Room())
	c.reply("registered", map[string]any{"ok": true})
}

func (c *Client) reply(event string, data any) {
	b, err := json.Marshal(Frame{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case c.direct <- b:
	default:
	}
}

func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case message := <-c.direct:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
