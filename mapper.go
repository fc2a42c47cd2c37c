package catalogpatch

import (
	"errors"
	"fmt"

	j "github.com/goccy/go-json"
	"go.uber.org/multierr"

	"github.com/reoring/catalogpatch/internal/jsonscan"
)

// Map decodes a merge patch document into the partial document P and records
// which schema fields appeared in it.
//
// The document must be a JSON object. Keys match schema fields ignoring case;
// keys that match nothing are dropped without being looked at. When several
// keys match the same field, the last one in the document wins. Values that
// do not decode into the field type fail with *MalformedFieldError, all of
// them reported together. A null value leaves the field nil and marks
// PresenceWasNull; nullability is enforced by Resolve, not here.
func Map[P any](data []byte, s *Schema[P]) (P, PresenceSet, error) {
	var zero P
	switch k := jsonscan.KindOf(data); k {
	case jsonscan.KindObject:
	case jsonscan.KindInvalid:
		return zero, nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidInput)
	default:
		return zero, nil, fmt.Errorf("%w: expected a JSON object for patch, but got %s", ErrInvalidInput, k)
	}

	keys, err := jsonscan.TopLevelKeys(data)
	if err != nil {
		return zero, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	matched := make(map[string]string, len(keys))
	for _, k := range keys {
		f, ok := s.Lookup(k)
		if !ok {
			continue
		}
		matched[f.Name()] = k
	}

	// RawMessage keeps unmatched values undecoded, so numbers of any
	// magnitude under unknown keys are accepted.
	var raw map[string]j.RawMessage
	if err := j.Unmarshal(data, &raw); err != nil {
		return zero, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	var (
		out  P
		errs error
	)
	presence := make(PresenceSet, len(matched))
	for _, f := range s.fields {
		key, ok := matched[f.Name()]
		if !ok {
			continue
		}
		isNull, err := f.decode(&out, raw[key])
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		presence.mark(f.Name(), PresenceSeen)
		if isNull {
			presence.mark(f.Name(), PresenceWasNull)
		}
	}
	if errs != nil {
		return zero, nil, errs
	}
	return out, presence, nil
}

// Malformed returns every *MalformedFieldError carried by err, which may be a
// single error or a multierr aggregate.
func Malformed(err error) []*MalformedFieldError {
	var out []*MalformedFieldError
	for _, e := range multierr.Errors(err) {
		var mf *MalformedFieldError
		if errors.As(e, &mf) {
			out = append(out, mf)
		}
	}
	return out
}
