package catalog

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	j "github.com/goccy/go-json"
)

// ChangeDocument returns the merge patch (RFC 7396) that turns before into
// after. It is "{}" when they are equal.
func ChangeDocument(before, after Product) ([]byte, error) {
	a, err := j.Marshal(before)
	if err != nil {
		return nil, fmt.Errorf("marshal before: %w", err)
	}
	b, err := j.Marshal(after)
	if err != nil {
		return nil, fmt.Errorf("marshal after: %w", err)
	}
	return jsonpatch.CreateMergePatch(a, b)
}
