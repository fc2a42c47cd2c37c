// Package codec converts values between their wire and domain forms.
package codec

// Codec converts a wire value A into a domain value B and back.
type Codec[A, B any] interface {
	Decode(a A) (B, error)
	Encode(b B) (A, error)
}
