package catalogpatch_test

import (
	"reflect"
	"testing"

	cp "github.com/reoring/catalogpatch"
)

func TestSchema_LookupAndNames(t *testing.T) {
	if !reflect.DeepEqual(docSchema.Names(), []string{"title", "note", "count"}) {
		t.Fatalf("names = %v", docSchema.Names())
	}
	f, ok := docSchema.Lookup("NoTe")
	if !ok || f.Name() != "note" || !f.Nullable() {
		t.Fatalf("lookup note failed: %v %v", f, ok)
	}
	if _, ok := docSchema.Lookup("sku"); ok {
		t.Fatalf("sku must not be part of the schema")
	}
}

func TestSchema_DuplicateNamePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on case-insensitive duplicate")
		}
	}()
	dup := cp.NewField[patchDoc, string]("Title", "string", func(p *patchDoc) **string { return &p.Note })
	cp.NewSchema[patchDoc](titleField, dup)
}

func TestSchema_JSONSchema(t *testing.T) {
	s := docSchema.JSONSchema()
	if s.Type != "object" || len(s.Properties) != 3 {
		t.Fatalf("unexpected schema: %+v", s)
	}
	if !s.Properties["note"].Nullable || s.Properties["title"].Nullable {
		t.Fatalf("nullable flags not exported")
	}
	if s.Properties["count"].Type != "integer" {
		t.Fatalf("count type = %s", s.Properties["count"].Type)
	}
}
