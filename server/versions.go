package server

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Versions is the set of API versions served, addressed by URL segment
// ("v1", "v2") with a default for unversioned routes.
type Versions struct {
	all []*semver.Version
	def *semver.Version
}

// NewVersions parses the supported versions and the default. Versions are
// given as "1", "2", "v2" or full semver strings.
func NewVersions(def string, supported ...string) (*Versions, error) {
	vs := &Versions{}
	for _, s := range supported {
		v, err := semver.NewVersion(s)
		if err != nil {
			return nil, fmt.Errorf("invalid api version %q: %w", s, err)
		}
		vs.all = append(vs.all, v)
	}
	if len(vs.all) == 0 {
		return nil, fmt.Errorf("no api versions configured")
	}
	sort.Sort(semver.Collection(vs.all))

	d, err := semver.NewVersion(def)
	if err != nil {
		return nil, fmt.Errorf("invalid default api version %q: %w", def, err)
	}
	v, ok := vs.find(d)
	if !ok {
		return nil, fmt.Errorf("default api version %s is not supported", d)
	}
	vs.def = v
	return vs, nil
}

func (vs *Versions) find(v *semver.Version) (*semver.Version, bool) {
	for _, s := range vs.all {
		if s.Major() == v.Major() {
			return s, true
		}
	}
	return nil, false
}

// Default returns the version used by unversioned routes.
func (vs *Versions) Default() *semver.Version { return vs.def }

// All returns the supported versions in ascending order.
func (vs *Versions) All() []*semver.Version { return append([]*semver.Version(nil), vs.all...) }

// Resolve maps a URL segment to a supported version. An empty segment is
// the default version.
func (vs *Versions) Resolve(segment string) (*semver.Version, error) {
	if segment == "" {
		return vs.def, nil
	}
	if !strings.HasPrefix(segment, "v") {
		return nil, fmt.Errorf("api version segment %q must look like v1", segment)
	}
	v, err := semver.NewVersion(segment)
	if err != nil {
		return nil, fmt.Errorf("invalid api version %q: %w", segment, err)
	}
	s, ok := vs.find(v)
	if !ok {
		return nil, fmt.Errorf("api version %s is not supported", segment)
	}
	return s, nil
}

// Satisfies reports whether v meets constraint, e.g. ">= 2".
func Satisfies(v *semver.Version, constraint string) bool {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(v)
}

// DocumentName is the OpenAPI document name of v ("v1").
func DocumentName(v *semver.Version) string { return fmt.Sprintf("v%d", v.Major()) }
