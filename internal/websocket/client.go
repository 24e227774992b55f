package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024

	// sendBuffer is how many events may queue for one connection before it is evicted
	sendBuffer = 64
)

// SubscribeMessage is the only message a feed client sends: the entity kinds it wants.
// An empty list restores the full feed.
type SubscribeMessage struct {
	Entities []EntityType `json:"entities"`
}

// Client is one operator screen connected to its tenant's collection feed
type Client struct {
	id       string
	tenantID int32
	conn     *websocket.Conn
	hub      *Hub
	send     chan []byte
	done     chan struct{}
	stop     sync.Once

	mu       sync.RWMutex
	entities map[EntityType]bool
}

// NewClient creates a feed client. entities narrows the feed; none means everything.
func NewClient(conn *websocket.Conn, tenantID int32, hub *Hub, entities ...EntityType) *Client {
	c := &Client{
		id:       uuid.New().String(),
		tenantID: tenantID,
		conn:     conn,
		hub:      hub,
		send:     make(chan []byte, sendBuffer),
		done:     make(chan struct{}),
	}
	c.Subscribe(entities)
	return c
}

func (c *Client) ID() string { return c.id }

func (c *Client) TenantID() int32 { return c.tenantID }

// Subscribe replaces the entity filter
func (c *Client) Subscribe(entities []EntityType) {
	filter := make(map[EntityType]bool, len(entities))
	for _, e := range entities {
		filter[e] = true
	}
	c.mu.Lock()
	c.entities = filter
	c.mu.Unlock()
}

// Wants reports whether events about entity pass the client's filter
func (c *Client) Wants(entity EntityType) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entities) == 0 || c.entities[entity]
}

// Send queues data without blocking. A full queue yields ErrSlowClient.
func (c *Client) Send(data []byte) error {
	select {
	case <-c.done:
		return ErrClientClosed
	default:
	}
	select {
	case c.send <- data:
		return nil
	default:
		return ErrSlowClient
	}
}

// Close stops both pumps and closes the connection. Safe to call repeatedly.
func (c *Client) Close() error {
	var err error
	c.stop.Do(func() {
		close(c.done)
		err = c.conn.Close()
	})
	return err
}

// ReadPump applies subscribe messages until the peer goes away
func (c *Client) ReadPump() {
	defer func() {
		c.hub.Unregister(c)
		c.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Warn().Err(err).Str("client_id", c.id).Int32("tenant_id", c.tenantID).Msg("Feed connection closed unexpectedly")
			}
			return
		}

		var msg SubscribeMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			log.Debug().Err(err).Str("client_id", c.id).Msg("Ignoring malformed feed message")
			continue
		}
		c.Subscribe(msg.Entities)
		log.Debug().Str("client_id", c.id).Int("entities", len(msg.Entities)).Msg("Feed subscription changed")
	}
}

// WritePump drains the queue to the peer and keeps the connection alive with pings
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Warn().Err(err).Str("client_id", c.id).Int32("tenant_id", c.tenantID).Msg("Feed write failed")
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
