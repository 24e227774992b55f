package websocket

import (
	"errors"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	// ErrClientClosed is returned when sending to a closed client
	ErrClientClosed = errors.New("client is closed")
	// ErrSlowClient is returned when a client's queue is full
	ErrSlowClient = errors.New("client send queue is full")
)

// Subscriber is a feed connection as the hub sees it
type Subscriber interface {
	ID() string
	TenantID() int32
	Wants(entity EntityType) bool
	Send(data []byte) error
	Close() error
}

// Hub fans tenant events out to that tenant's feed subscribers only.
// Subscribers that cannot keep up are evicted instead of blocking the publisher.
type Hub struct {
	mu      sync.RWMutex
	tenants map[int32]map[string]Subscriber
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{tenants: make(map[int32]map[string]Subscriber)}
}

// Register adds s to its tenant's feed
func (h *Hub) Register(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	feed, ok := h.tenants[s.TenantID()]
	if !ok {
		feed = make(map[string]Subscriber)
		h.tenants[s.TenantID()] = feed
	}
	feed[s.ID()] = s
	log.Debug().Int32("tenant_id", s.TenantID()).Str("client_id", s.ID()).Int("subscribers", len(feed)).Msg("Feed subscriber registered")
}

// Unregister removes s; unknown subscribers are ignored
func (h *Hub) Unregister(s Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(s.TenantID(), s.ID())
}

func (h *Hub) removeLocked(tenantID int32, id string) bool {
	feed, ok := h.tenants[tenantID]
	if !ok {
		return false
	}
	if _, ok := feed[id]; !ok {
		return false
	}
	delete(feed, id)
	if len(feed) == 0 {
		delete(h.tenants, tenantID)
	}
	return true
}

// Broadcast delivers event to every subscriber of tenantID whose filter accepts it.
// It returns how many subscribers received it.
func (h *Hub) Broadcast(tenantID int32, event Event) int {
	data, err := event.ToJSON()
	if err != nil {
		log.Error().Err(err).Int32("tenant_id", tenantID).Str("event_type", event.Type).Msg("Failed to encode event")
		return 0
	}

	h.mu.RLock()
	targets := make([]Subscriber, 0, len(h.tenants[tenantID]))
	for _, s := range h.tenants[tenantID] {
		if s.Wants(event.Entity) {
			targets = append(targets, s)
		}
	}
	h.mu.RUnlock()

	delivered := 0
	var evicted []Subscriber
	for _, s := range targets {
		if err := s.Send(data); err != nil {
			log.Warn().Err(err).Int32("tenant_id", tenantID).Str("client_id", s.ID()).Msg("Evicting feed subscriber")
			evicted = append(evicted, s)
			continue
		}
		delivered++
	}

	if len(evicted) > 0 {
		h.mu.Lock()
		for _, s := range evicted {
			h.removeLocked(tenantID, s.ID())
		}
		h.mu.Unlock()
		for _, s := range evicted {
			s.Close()
		}
	}
	return delivered
}

// ClientCount returns the number of subscribers of a tenant
func (h *Hub) ClientCount(tenantID int32) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.tenants[tenantID])
}

// TotalClientCount returns the number of subscribers across tenants
func (h *Hub) TotalClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	total := 0
	for _, feed := range h.tenants {
		total += len(feed)
	}
	return total
}
