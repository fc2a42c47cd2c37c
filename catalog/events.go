package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event is a domain event raised by the update workflow.
type Event interface {
	// EventType is the stable type name, e.g. "product.description.changed".
	EventType() string
	AggregateID() string
	FieldName() string
	OccurredOn() time.Time
	// Change returns the old and new values as plain values (nil for null).
	Change() (old, new any)
}

// FieldChanged records that one field of a product took a new value.
type FieldChanged[V any] struct {
	SKU        string
	Field      string
	Old        V
	New        V
	OccurredAt time.Time
}

func (e FieldChanged[V]) EventType() string     { return "product." + e.Field + ".changed" }
func (e FieldChanged[V]) AggregateID() string   { return e.SKU }
func (e FieldChanged[V]) FieldName() string     { return e.Field }
func (e FieldChanged[V]) OccurredOn() time.Time { return e.OccurredAt }

func (e FieldChanged[V]) Change() (any, any) { return plain(e.Old), plain(e.New) }

func plain(v any) any {
	switch x := v.(type) {
	case *string:
		if x == nil {
			return nil
		}
		return *x
	case decimal.Decimal:
		return x.String()
	}
	return v
}

type (
	NameChanged        = FieldChanged[string]
	ImgURIChanged      = FieldChanged[string]
	PriceChanged       = FieldChanged[decimal.Decimal]
	DescriptionChanged = FieldChanged[*string]
)
