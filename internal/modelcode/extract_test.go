package modelcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"parenthesized ecam", "DeLonghi Magnifica S (ECAM22.114.B)", "ECAM22.114.B"},
		{"spaced letter suffix", "DeLonghi EC 9865 M", "EC9865.M"},
		{"glued letter suffix", "Delonghi EC9865M", "EC9865.M"},
		{"dotted color", "Coffee Machine DeLonghi EC890.GR Dedica Duo", "EC890.GR"},
		{"spaced color word is not a suffix", "DeLonghi EC685 Red", "EC685"},
		{"accessory keeps DLSC", "DLSC310 cleaning tablets", "DLSC310"},
		{"lowercase input", "delonghi ecam 350.55.b", "ECAM350.55.B"},
		{"cyrillic lookalikes", "Кофемашина DeLonghi ЕСАМ22.114.В", "ECAM22.114.B"},
		{"georgian text", "ყავის აპარატი DeLonghi EC685.R", "EC685.R"},
		{"melitta e series", "Melitta Caffeo Solo E950-101", "E950"},
		{"melitta f dash", "Melitta Caffeo F30-101 Solo", "F30-101"},
		{"melitta aromaboy", "Melitta Aromaboy 1015-02", "AROMABOY1015"},
		{"melitta aroma zones", "Melitta Aroma Zones 1x4/10 Ultra", "AROMAZONES1X4/10ULTRA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.in)
			require.True(t, ok, "no model in %q", tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NoModel(t *testing.T) {
	for _, in := range []string{"", "   ", "Milk frother", "Кофемолка ручная"} {
		got, ok := Extract(in)
		assert.False(t, ok, in)
		assert.Empty(t, got, in)
	}
}

func TestExtractTagged_RulePerPrefix(t *testing.T) {
	tests := []struct {
		in, tag, raw string
	}{
		{"ECAM22.110.B", "ecam", "ECAM22.110.B"},
		{"EC685.R", "ec", "EC685.R"},
		{"ESAM4500", "esam", "ESAM4500"},
		{"ECI341.BK", "eci", "ECI341.BK"},
		{"EXAM440.55.B", "exam", "EXAM440.55.B"},
		{"KG520.M", "kg", "KG520.M"},
		{"KBOV2001.BL", "kb", "KBOV2001.BL"},
		{"CTOV2103.AZ", "ct", "CTOV2103.AZ"},
		{"ICM17210", "icm", "ICM17210"},
		{"DLSC002", "dlsc", "DLSC002"},
		{"Aromafresh 1021-01", "aromafresh", "AROMAFRESH1021"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			c, tag, ok := ExtractTagged(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.raw, c.Raw)
			assert.Equal(t, NormalizeForMatching(tt.raw), c.Normalized)
		})
	}
}

func TestExtract_Precedence(t *testing.T) {
	c, tag, ok := ExtractTagged("ECAM22.110.B + EC685.R bundle")
	require.True(t, ok)
	assert.Equal(t, "ecam", tag)
	assert.Equal(t, "ECAM22.110.B", c.Raw)
}

// Ordered patterns accept collisions: the generic F<digits> rule fires on a foreign code.
func TestExtract_GenericRuleCollision(t *testing.T) {
	c, tag, ok := ExtractTagged("Smeg espresso machine ECF01")
	require.True(t, ok)
	assert.Equal(t, "f", tag)
	assert.Equal(t, "F01", c.Raw)
}

func TestRules(t *testing.T) {
	r := Rules()
	require.Len(t, r, 16)
	assert.Equal(t, "ecam", r[0])
	assert.Equal(t, "dlsc", r[9])
	assert.Equal(t, "f", r[len(r)-1])
}
