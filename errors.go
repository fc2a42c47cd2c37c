package catalogpatch

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes produced by validation rules.
const (
	CodeRequired      = "required"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
)

// Error codes for request-level outcomes. They are stable strings meant for
// API payloads and logs.
const (
	CodeInvalidInput     = "invalid_input"
	CodeMalformedField   = "malformed_field"
	CodeValidationFailed = "validation_failed"
	CodeNotSupported     = "not_supported"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal"
)

var (
	// ErrInvalidInput reports a patch document that is not a JSON object.
	ErrInvalidInput = errors.New("invalid patch document")

	// ErrNullNotAllowed is the cause of a MalformedFieldError raised when a
	// non-nullable field carries an explicit null.
	ErrNullNotAllowed = errors.New("null is not allowed for this field")
)

// MalformedFieldError reports a patch field whose value could not be
// interpreted: a JSON type mismatch or an illegal null.
type MalformedFieldError struct {
	Field string
	Cause error
}

func (e *MalformedFieldError) Error() string {
	return fmt.Sprintf("malformed field %q: %v", e.Field, e.Cause)
}

func (e *MalformedFieldError) Unwrap() error { return e.Cause }

// NotSupportedError reports a field that was present and resolved but has no
// update path. It must never be silently dropped.
type NotSupportedError struct {
	Field string
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("updating %s is not yet supported", e.Field)
}

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /price).
	Field   string // Schema field name.
	Code    string // One of the codes listed above.
	Message string
	// Params carries structured parameters (e.g., {"max": 200}) for
	// i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. too_small at /price
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ByField groups issue messages by field name, keeping the order in which
// the issues were raised.
func (iss Issues) ByField() map[string][]string {
	out := make(map[string][]string, len(iss))
	for _, it := range iss {
		key := it.Field
		if key == "" {
			key = strings.TrimPrefix(it.Path, "/")
		}
		out[key] = append(out[key], it.Message)
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
