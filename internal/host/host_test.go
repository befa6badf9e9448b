package host

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeRef(t *testing.T) {
	assert.Equal(t, "A1", RangeRef("A1", ""))
	assert.Equal(t, "A1:B2", RangeRef("A1", "B2"))
	assert.Equal(t, "Totals", RangeRef("Totals", ""))
}

func TestHAlignString(t *testing.T) {
	assert.Equal(t, "center", AlignCenter.String())
	assert.Equal(t, "general", AlignGeneral.String())
	assert.Equal(t, "general", HAlign(42).String())
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := ParseHexColor("#F8696B")
	require.NoError(t, err)
	assert.Equal(t, uint8(0xF8), r)
	assert.Equal(t, uint8(0x69), g)
	assert.Equal(t, uint8(0x6B), b)

	_, _, _, err = ParseHexColor("63BE7B")
	assert.NoError(t, err)

	for _, bad := range []string{"", "#FFF", "#12345Z", "#+12345"} {
		_, _, _, err = ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorScaleValidate(t *testing.T) {
	require.NoError(t, DefaultColorScale().Validate())

	scale := DefaultColorScale()
	scale.Mid.Value = ""
	assert.Error(t, scale.Validate(), "percentile point without value")

	scale = DefaultColorScale()
	scale.Max.Type = "median"
	assert.Error(t, scale.Validate())

	scale = DefaultColorScale()
	scale.Min.Color = "red"
	assert.Error(t, scale.Validate())
}
