// Package catalogpatch provides:
//
// - Mapping of a JSON Merge Patch (RFC 7396) document onto a closed field table (Map)
// - A presence set telling absent fields apart from explicit nulls (PresenceSet)
// - Tri-state field resolution: Unset, Cleared or Value (Resolve, FieldState)
// - Presence-gated declarative validation (Validator, Rule, Issues)
//
// Design policy:
// - Fields are declared explicitly with NewField; nothing is discovered by reflection.
// - Keep the engine in the root package; the product domain lives in catalog/,
//   storage under store/, the HTTP shell under server/ and the CLI under cmd/catalogpatch.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	patch, presence, err := catalogpatch.Map(body, schema)
//	if iss := validator.Validate(patch, presence); len(iss) > 0 { ... }
//	price, err := catalogpatch.Resolve(priceField, presence, patch)
//	price.Match(
//		func() { /* leave alone */ },
//		func() { /* clear */ },
//		func(v decimal.Decimal) { /* set */ },
//	)
package catalogpatch
