package catalog

import (
	"time"

	"github.com/shopspring/decimal"

	cp "github.com/reoring/catalogpatch"
)

// Step applies one field of a command to a snapshot.
type Step func(p Product, now time.Time) (Product, []Event, error)

// Mutation turns a Cleared or Value state into a new snapshot. It returns
// the input unchanged and no event when the value does not change.
type Mutation[V any] func(p Product, st cp.FieldState[V], now time.Time) (Product, []Event)

// Mutations is the update path table, one entry per updatable field. A nil
// entry means the field cannot be updated yet: a patch setting it fails with
// *catalogpatch.NotSupportedError.
type Mutations struct {
	Name        Mutation[string]
	ImgURI      Mutation[string]
	Price       Mutation[decimal.Decimal]
	Description Mutation[string]
}

// DefaultMutations returns the update paths available to the API.
func DefaultMutations() Mutations {
	return Mutations{
		nil,
		nil,
		ChangePrice,
		ChangeDescription,
	}
}

func step[V any](field string, st cp.FieldState[V], m Mutation[V]) Step {
	return func(p Product, now time.Time) (Product, []Event, error) {
		if st.IsUnset() {
			return p, nil, nil
		}
		if m == nil {
			return p, nil, &cp.NotSupportedError{Field: field}
		}
		next, events := m(p, st, now)
		return next, events, nil
	}
}

// Apply runs the default update paths. See ApplyWith.
func Apply(p Product, cmd Command, now time.Time) (Product, []Event, error) {
	return ApplyWith(DefaultMutations(), p, cmd, now)
}

// ApplyWith folds the command over p field by field in declared order and
// returns the new snapshot with the events raised along the way. p is never
// modified. On error neither a snapshot nor events are returned.
func ApplyWith(m Mutations, p Product, cmd Command, now time.Time) (Product, []Event, error) {
	cur := p
	var all []Event
	for _, s := range cmd.steps(m) {
		next, events, err := s(cur, now)
		if err != nil {
			return Product{}, nil, err
		}
		cur = next
		all = append(all, events...)
	}
	return cur, all, nil
}

// ChangeDescription sets or clears the description.
func ChangeDescription(p Product, st cp.FieldState[string], now time.Time) (Product, []Event) {
	next := cp.Fold(st,
		func() *string { return p.Description },
		func() *string { return nil },
		func(v string) *string { return &v },
	)
	if equalString(next, p.Description) {
		return p, nil
	}
	return p.WithDescription(next), []Event{DescriptionChanged{
		SKU:        p.SKU,
		Field:      FieldDescription,
		Old:        cloneString(p.Description),
		New:        cloneString(next),
		OccurredAt: now,
	}}
}

// ChangePrice sets the price. Price is not nullable, so Cleared is a no-op.
func ChangePrice(p Product, st cp.FieldState[decimal.Decimal], now time.Time) (Product, []Event) {
	next := cp.Fold(st,
		func() decimal.Decimal { return p.Price },
		func() decimal.Decimal { return p.Price },
		func(v decimal.Decimal) decimal.Decimal { return v },
	)
	if next.Equal(p.Price) {
		return p, nil
	}
	return p.WithPrice(next), []Event{PriceChanged{
		SKU:        p.SKU,
		Field:      FieldPrice,
		Old:        p.Price,
		New:        next,
		OccurredAt: now,
	}}
}

// ChangeName sets the name. It is not part of DefaultMutations.
func ChangeName(p Product, st cp.FieldState[string], now time.Time) (Product, []Event) {
	return changeString(p, st, now, FieldName, func(p Product) string { return p.Name }, Product.WithName)
}

// ChangeImgURI sets the image URI. It is not part of DefaultMutations.
func ChangeImgURI(p Product, st cp.FieldState[string], now time.Time) (Product, []Event) {
	return changeString(p, st, now, FieldImgURI, func(p Product) string { return p.ImgURI }, Product.WithImgURI)
}

func changeString(p Product, st cp.FieldState[string], now time.Time, field string,
	get func(Product) string, set func(Product, string) Product) (Product, []Event) {
	old := get(p)
	next := cp.Fold(st,
		func() string { return old },
		func() string { return old },
		func(v string) string { return v },
	)
	if next == old {
		return p, nil
	}
	return set(p, next), []Event{FieldChanged[string]{
		SKU:        p.SKU,
		Field:      field,
		Old:        old,
		New:        next,
		OccurredAt: now,
	}}
}
