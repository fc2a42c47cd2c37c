package catalogpatch_test

import (
	"strings"

	cp "github.com/reoring/catalogpatch"
)

// patchDoc is a small partial document used across the engine tests.
type patchDoc struct {
	Title *string
	Note  *string
	Count *int
}

var (
	titleField = cp.NewField[patchDoc, string]("title", "string", func(p *patchDoc) **string { return &p.Title })
	noteField  = cp.NewField[patchDoc, string]("note", "string", func(p *patchDoc) **string { return &p.Note }).AllowNull()
	countField = cp.NewField[patchDoc, int]("count", "integer", func(p *patchDoc) **int { return &p.Count })

	docSchema = cp.NewSchema[patchDoc](titleField, noteField, countField)

	docValidator = cp.NewValidator(docSchema,
		cp.Rule[patchDoc]{
			Field: "title", Code: cp.CodeRequired, Message: "Title cannot be empty",
			Check: func(p patchDoc) bool { return p.Title != nil && strings.TrimSpace(*p.Title) != "" },
		},
		cp.Rule[patchDoc]{
			Field: "title", Code: cp.CodeTooLong, Message: "Title must not exceed 5 characters",
			Check: func(p patchDoc) bool { return p.Title == nil || len([]rune(*p.Title)) <= 5 },
		},
		cp.Rule[patchDoc]{
			Field: "note", Code: cp.CodeTooLong, Message: "Note must not exceed 3 characters",
			When:  func(p patchDoc) bool { return p.Note != nil },
			Check: func(p patchDoc) bool { return len(*p.Note) <= 3 },
		},
		cp.Rule[patchDoc]{
			Field: "count", Code: cp.CodeTooSmall, Message: "Count must be greater than or equal to 0",
			When:  func(p patchDoc) bool { return p.Count != nil },
			Check: func(p patchDoc) bool { return *p.Count >= 0 },
		},
	)
)
