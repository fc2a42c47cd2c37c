// Package events delivers catalog domain events to their destinations.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/reoring/catalogpatch/catalog"
)

// Envelope is the serialized form of a domain event.
type Envelope struct {
	ID         uuid.UUID `json:"id"`
	Type       string    `json:"type"`
	SKU        string    `json:"sku"`
	Field      string    `json:"field"`
	Old        any       `json:"old"`
	New        any       `json:"new"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Seal assigns an ID to e and flattens it into an Envelope.
func Seal(e catalog.Event) Envelope {
	old, nw := e.Change()
	return Envelope{
		ID:         uuid.New(),
		Type:       e.EventType(),
		SKU:        e.AggregateID(),
		Field:      e.FieldName(),
		Old:        old,
		New:        nw,
		OccurredAt: e.OccurredOn(),
	}
}
