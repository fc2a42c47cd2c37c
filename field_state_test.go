package catalogpatch_test

import (
	"testing"

	cp "github.com/reoring/catalogpatch"
)

func TestFieldState_MatchCallsOneHandler(t *testing.T) {
	cases := []struct {
		st   cp.FieldState[int]
		want string
	}{
		{cp.Unset[int](), "unset"},
		{cp.Cleared[int](), "cleared"},
		{cp.Value(7), "value:7"},
	}
	for _, c := range cases {
		var got []string
		c.st.Match(
			func() { got = append(got, "unset") },
			func() { got = append(got, "cleared") },
			func(v int) {
				if v == 7 {
					got = append(got, "value:7")
				}
			},
		)
		if len(got) != 1 || got[0] != c.want {
			t.Fatalf("%s: handlers called %v, want [%s]", c.st, got, c.want)
		}
	}
}

func TestFieldState_ZeroIsUnset(t *testing.T) {
	var st cp.FieldState[string]
	if !st.IsUnset() {
		t.Fatalf("zero value should be Unset")
	}
	if _, ok := st.Get(); ok {
		t.Fatalf("Get on Unset must report false")
	}
}

func TestFold(t *testing.T) {
	render := func(st cp.FieldState[string]) string {
		return cp.Fold(st,
			func() string { return "-" },
			func() string { return "null" },
			func(v string) string { return "=" + v },
		)
	}
	if got := render(cp.Unset[string]()); got != "-" {
		t.Fatalf("unset: %s", got)
	}
	if got := render(cp.Cleared[string]()); got != "null" {
		t.Fatalf("cleared: %s", got)
	}
	if got := render(cp.Value("x")); got != "=x" {
		t.Fatalf("value: %s", got)
	}
}
