package catalog

import (
	"github.com/shopspring/decimal"

	cp "github.com/reoring/catalogpatch"
)

// Command is the partial update of one product: the identity plus one
// FieldState per updatable field, in declared order.
type Command struct {
	SKU         string
	Name        cp.FieldState[string]
	ImgURI      cp.FieldState[string]
	Price       cp.FieldState[decimal.Decimal]
	Description cp.FieldState[string]
}

// IsEmpty reports whether no field is set.
func (c Command) IsEmpty() bool {
	return c.Name.IsUnset() && c.ImgURI.IsUnset() && c.Price.IsUnset() && c.Description.IsUnset()
}

func (c Command) steps(m Mutations) []Step {
	return []Step{
		step(FieldName, c.Name, m.Name),
		step(FieldImgURI, c.ImgURI, m.ImgURI),
		step(FieldPrice, c.Price, m.Price),
		step(FieldDescription, c.Description, m.Description),
	}
}
