package catalogpatch

import "fmt"

// Rule is one declarative validation entry. It runs only when Field is
// present in the patch and When (if set) holds; it fails when Check returns
// false.
type Rule[P any] struct {
	Field   string
	Code    string
	Message string
	When    func(P) bool
	Check   func(P) bool
	Params  map[string]any
}

// Validator evaluates a rule table against a partial document.
type Validator[P any] struct {
	rules []Rule[P]
}

// NewValidator binds rules to schema s. It panics when a rule names a field
// the schema does not declare or has no Check.
func NewValidator[P any](s *Schema[P], rules ...Rule[P]) *Validator[P] {
	out := make([]Rule[P], 0, len(rules))
	for _, r := range rules {
		f, ok := s.Lookup(r.Field)
		if !ok {
			panic(fmt.Sprintf("catalogpatch: rule for unknown field %q", r.Field))
		}
		if r.Check == nil {
			panic(fmt.Sprintf("catalogpatch: rule %q on %q has no check", r.Code, r.Field))
		}
		r.Field = f.Name()
		out = append(out, r)
	}
	return &Validator[P]{rules: out}
}

// Validate runs every rule whose field is present and returns the violations
// in declaration order. Absent fields are never validated.
func (v *Validator[P]) Validate(p P, presence PresenceSet) Issues {
	var iss Issues
	root := Root()
	for _, r := range v.rules {
		if !presence.Has(r.Field) {
			continue
		}
		if r.When != nil && !r.When(p) {
			continue
		}
		if r.Check(p) {
			continue
		}
		it := root.Field(r.Field).Issue(r.Code, r.Message)
		it.Params = r.Params
		iss = AppendIssues(iss, it)
	}
	return iss
}
