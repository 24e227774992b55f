package websocket

import "github.com/rs/zerolog/log"

// EventPublisher is how services announce committed changes
type EventPublisher interface {
	Publish(tenantID int32, event Event)
}

var (
	_ EventPublisher = (*Hub)(nil)
	_ EventPublisher = NoOpPublisher{}
)

// Publish broadcasts event to the tenant's feed
func (h *Hub) Publish(tenantID int32, event Event) {
	n := h.Broadcast(tenantID, event)
	log.Debug().Int32("tenant_id", tenantID).Str("event_type", event.Type).Int("delivered", n).Msg("Event published")
}

// NoOpPublisher discards events, for tools that run without a feed
type NoOpPublisher struct{}

func (NoOpPublisher) Publish(int32, Event) {}
