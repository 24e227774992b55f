package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType is what happened to an entity
type EventType string

const (
	EventTypeCreated     EventType = "created"
	EventTypeUpdated     EventType = "updated"
	EventTypeDeleted     EventType = "deleted"
	EventTypeRegenerated EventType = "regenerated"
	EventTypeSettled     EventType = "settled"
	EventTypePaid        EventType = "paid"
)

// EntityType is the kind of record an event is about
type EntityType string

const (
	EntityTypeCustomer    EntityType = "customer"
	EntityTypeLoan        EntityType = "loan"
	EntityTypeInstallment EntityType = "installment"
	EntityTypePayment     EntityType = "payment"
	EntityTypeSettings    EntityType = "settings"
)

// Event is the message pushed to tenant clients.
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`    // e.g. "installment.settled"
	Entity    EntityType  `json:"entity"`  // e.g. "installment"
	Payload   interface{} `json:"payload"` // full entity data
	Timestamp time.Time   `json:"timestamp"`
}

// NewEvent creates an event with the combined "<entity>.<type>" name
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

func CustomerCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeCustomer, payload)
}

func CustomerUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeCustomer, payload)
}

func CustomerDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeCustomer, payload)
}

func LoanCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypeLoan, payload)
}

func LoanRegenerated(payload interface{}) Event {
	return NewEvent(EventTypeRegenerated, EntityTypeLoan, payload)
}

func LoanDeleted(payload interface{}) Event {
	return NewEvent(EventTypeDeleted, EntityTypeLoan, payload)
}

// LoanPaid is published once, when a loan closes
func LoanPaid(payload interface{}) Event {
	return NewEvent(EventTypePaid, EntityTypeLoan, payload)
}

func InstallmentSettled(payload interface{}) Event {
	return NewEvent(EventTypeSettled, EntityTypeInstallment, payload)
}

func InstallmentUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeInstallment, payload)
}

func PaymentCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypePayment, payload)
}

func SettingsUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeSettings, payload)
}
