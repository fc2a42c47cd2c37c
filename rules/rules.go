// Package rules provides constructors for the common entries of a
// catalogpatch rule table. Each constructor takes an accessor returning the
// decoded value pointer of the field, nil when the patch carried null.
package rules

import (
	"net/url"
	"strings"
	"unicode/utf8"

	cp "github.com/reoring/catalogpatch"
)

// NotEmpty fails on null, "" and whitespace-only strings.
func NotEmpty[P any](field, msg string, get func(P) *string) cp.Rule[P] {
	return cp.Rule[P]{
		Field:   field,
		Code:    cp.CodeRequired,
		Message: msg,
		Check: func(p P) bool {
			v := get(p)
			return v != nil && strings.TrimSpace(*v) != ""
		},
	}
}

// NotNull fails when the field was present with a null value.
func NotNull[P, V any](field, msg string, get func(P) *V) cp.Rule[P] {
	return cp.Rule[P]{
		Field:   field,
		Code:    cp.CodeRequired,
		Message: msg,
		Check:   func(p P) bool { return get(p) != nil },
	}
}

// MaxLen fails when the string holds more than max characters (runes).
// Null passes.
func MaxLen[P any](field, msg string, max int, get func(P) *string) cp.Rule[P] {
	return cp.Rule[P]{
		Field:   field,
		Code:    cp.CodeTooLong,
		Message: msg,
		Params:  map[string]any{"max": max},
		Check: func(p P) bool {
			v := get(p)
			return v == nil || utf8.RuneCountInString(*v) <= max
		},
	}
}

// AbsoluteURI fails unless the string parses as an absolute URI. Null fails.
func AbsoluteURI[P any](field, msg string, get func(P) *string) cp.Rule[P] {
	return cp.Rule[P]{
		Field:   field,
		Code:    cp.CodeInvalidFormat,
		Message: msg,
		Params:  map[string]any{"format": "uri"},
		Check: func(p P) bool {
			v := get(p)
			if v == nil || *v == "" {
				return false
			}
			u, err := url.Parse(*v)
			return err == nil && u.IsAbs() && (u.Host != "" || u.Opaque != "" || u.Path != "")
		},
	}
}

// Must wraps an arbitrary predicate. Null values reach fn as nil.
func Must[P, V any](field, code, msg string, get func(P) *V, fn func(*V) bool) cp.Rule[P] {
	return cp.Rule[P]{
		Field:   field,
		Code:    code,
		Message: msg,
		Check:   func(p P) bool { return fn(get(p)) },
	}
}

// WhenNotNull restricts r to patches where the field carries a value.
func WhenNotNull[P, V any](r cp.Rule[P], get func(P) *V) cp.Rule[P] {
	prev := r.When
	r.When = func(p P) bool {
		if get(p) == nil {
			return false
		}
		return prev == nil || prev(p)
	}
	return r
}
