package catalogpatch_test

import (
	"errors"
	"strings"
	"testing"

	cp "github.com/reoring/catalogpatch"
)

func TestMap_PresenceAndValues(t *testing.T) {
	doc, presence, err := cp.Map([]byte(`{"title":"abc","note":null,"unknown":42}`), docSchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !presence.Has("title") || !presence.Has("note") {
		t.Fatalf("expected title and note present, got %v", presence.Names())
	}
	if presence.Has("count") || presence.Has("unknown") {
		t.Fatalf("unexpected presence: %v", presence.Names())
	}
	if presence.Len() != 2 {
		t.Fatalf("presence should hold exactly the matched keys, got %d", presence.Len())
	}
	if !presence.WasNull("note") || presence.WasNull("title") {
		t.Fatalf("null flags wrong: %+v", presence)
	}
	if doc.Title == nil || *doc.Title != "abc" {
		t.Fatalf("title not decoded: %+v", doc.Title)
	}
	if doc.Note != nil {
		t.Fatalf("null note must stay nil")
	}
}

func TestMap_CaseInsensitiveKeys(t *testing.T) {
	doc, presence, err := cp.Map([]byte(`{"TITLE":"x","Count":3}`), docSchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !presence.Has("title") || !presence.Has("count") {
		t.Fatalf("expected canonical names, got %v", presence.Names())
	}
	if *doc.Count != 3 {
		t.Fatalf("count = %d", *doc.Count)
	}
}

func TestMap_EmptyObject(t *testing.T) {
	_, presence, err := cp.Map([]byte(`{}`), docSchema)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if presence.Len() != 0 {
		t.Fatalf("expected empty presence, got %v", presence.Names())
	}
}

func TestMap_NonObjectRoot(t *testing.T) {
	for in, kind := range map[string]string{
		`[1,2]`: "array",
		`"x"`:   "string",
		`5`:     "number",
		`true`:  "boolean",
		`null`:  "null",
	} {
		_, _, err := cp.Map([]byte(in), docSchema)
		if !errors.Is(err, cp.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", in, err)
		}
		if !strings.Contains(err.Error(), kind) {
			t.Fatalf("%s: error should name kind %q: %v", in, kind, err)
		}
	}
}

func TestMap_InvalidJSON(t *testing.T) {
	_, _, err := cp.Map([]byte(`{"title":`), docSchema)
	if !errors.Is(err, cp.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMap_RepeatedKeysLastWins(t *testing.T) {
	for in, want := range map[string]string{
		`{"title":"a","Title":"b"}`: "b",
		`{"TITLE":"a","title":"b"}`: "b",
		`{"title":"a","title":"b"}`: "b",
	} {
		doc, presence, err := cp.Map([]byte(in), docSchema)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if !presence.Has("title") || presence.Len() != 1 {
			t.Fatalf("%s: presence = %v", in, presence.Names())
		}
		if doc.Title == nil || *doc.Title != want {
			t.Fatalf("%s: title = %v, want %q", in, doc.Title, want)
		}
	}
	if _, _, err := cp.Map([]byte(`{"x":1,"x":2}`), docSchema); err != nil {
		t.Fatalf("unexpected error for unmatched duplicates: %v", err)
	}
}

func TestMap_HugeNumberUnderUnknownKey(t *testing.T) {
	doc, presence, err := cp.Map([]byte(`{"extra":1e400,"title":"abc","nested":{"n":-1e999}}`), docSchema)
	if err != nil {
		t.Fatalf("unmatched values must not be looked at: %v", err)
	}
	if presence.Len() != 1 || doc.Title == nil || *doc.Title != "abc" {
		t.Fatalf("title not decoded: %v %v", presence.Names(), doc.Title)
	}
}

func TestMap_HugeNumberUnderKnownKeyIsMalformed(t *testing.T) {
	_, _, err := cp.Map([]byte(`{"count":1e400}`), docSchema)
	if errors.Is(err, cp.ErrInvalidInput) {
		t.Fatalf("an out-of-range field value is not a document error: %v", err)
	}
	mf := cp.Malformed(err)
	if len(mf) != 1 || mf[0].Field != "count" {
		t.Fatalf("expected count to be malformed, got %v", err)
	}
}

func TestMap_TrailingGarbage(t *testing.T) {
	for _, in := range []string{`{"title":"a"} x`, ``, `   `, `{"title":"a",}`} {
		_, _, err := cp.Map([]byte(in), docSchema)
		if !errors.Is(err, cp.ErrInvalidInput) {
			t.Fatalf("%q: expected ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestMap_MalformedFieldsAggregated(t *testing.T) {
	_, _, err := cp.Map([]byte(`{"title":12,"count":"many","note":"ok"}`), docSchema)
	if err == nil {
		t.Fatalf("expected malformed fields")
	}
	mf := cp.Malformed(err)
	if len(mf) != 2 {
		t.Fatalf("expected 2 malformed fields, got %d: %v", len(mf), err)
	}
	if mf[0].Field != "title" || mf[1].Field != "count" {
		t.Fatalf("malformed fields out of schema order: %s, %s", mf[0].Field, mf[1].Field)
	}
	var one *cp.MalformedFieldError
	if !errors.As(err, &one) {
		t.Fatalf("errors.As should find a MalformedFieldError")
	}
}
