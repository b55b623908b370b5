package modelcode

import (
	"regexp"
	"testing"
	"testing/quick"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeForMatching(t *testing.T) {
	tests := map[string]string{
		"EC 9865 M":     "EC9865M",
		"ECAM 22.110.B": "ECAM22110B",
		"ecam22.114.b":  "ECAM22114B",
		"DL EC885.BG":   "EC885BG",
		"DLSC310":       "DLSC310",
		"dlsc 002":      "DLSC002",
		"dl.sc5":        "SC5",
		"DLDL5":         "5",
		"Ёлка-42":       "42",
		"...":           "",
		"":              "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeForMatching(in), "input %q", in)
	}
}

var reKey = regexp.MustCompile(`^[A-Z0-9]*$`)

func TestNormalizeForMatching_Properties(t *testing.T) {
	alnumOnly := func(s string) bool { return reKey.MatchString(NormalizeForMatching(s)) }
	idempotent := func(s string) bool {
		n := NormalizeForMatching(s)
		return NormalizeForMatching(n) == n
	}
	assert.NoError(t, quick.Check(alnumOnly, nil))
	assert.NoError(t, quick.Check(idempotent, nil))

	for _, s := range []string{"DL.DLSC5", "D LDL5", "dl dl sc 1", "ECAM 22.114.B", "x D.LSC9"} {
		n := NormalizeForMatching(s)
		assert.Regexp(t, reKey, n)
		assert.Equal(t, n, NormalizeForMatching(n), "input %q", s)
	}
}
