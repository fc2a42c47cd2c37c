package codec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotNumber reports a JSON value that is not a number literal.
var ErrNotNumber = errors.New("expected a JSON number")

// JSONNumber returns a Codec between raw JSON number literals and
// decimal.Decimal. Quoted numbers are rejected; the literal keeps its exact
// decimal value.
func JSONNumber() Codec[[]byte, decimal.Decimal] { return numberCodec{} }

type numberCodec struct{}

func (numberCodec) Decode(raw []byte) (decimal.Decimal, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == '"' {
		return decimal.Decimal{}, ErrNotNumber
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", ErrNotNumber, err)
	}
	return d, nil
}

func (numberCodec) Encode(d decimal.Decimal) ([]byte, error) {
	return []byte(d.String()), nil
}
