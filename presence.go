package catalogpatch

import "sort"

// Presence is the bit flag recorded for a schema field seen in a patch.
type Presence uint8

const (
	PresenceSeen    Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                      // Field value was null.
)

// PresenceSet maps canonical schema field names to Presence flags.
// Keys of the patch document that did not match the schema never appear.
type PresenceSet map[string]Presence

// Has reports whether the field appeared in the patch, whatever its value.
func (ps PresenceSet) Has(name string) bool { return ps[name]&PresenceSeen != 0 }

// WasNull reports whether the field appeared with an explicit JSON null.
func (ps PresenceSet) WasNull(name string) bool { return ps[name]&PresenceWasNull != 0 }

// Len returns the number of fields present.
func (ps PresenceSet) Len() int { return len(ps) }

// Names returns the present field names in lexical order.
func (ps PresenceSet) Names() []string {
	out := make([]string, 0, len(ps))
	for k, v := range ps {
		if v&PresenceSeen != 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func (ps PresenceSet) mark(name string, p Presence) { ps[name] |= p }

