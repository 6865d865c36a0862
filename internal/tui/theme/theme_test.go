package theme

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSiteDarkPalette(t *testing.T) {
	t.Parallel()

	th := NewSiteDark()
	require.Equal(t, "site-dark", th.Name)
	require.True(t, th.IsDark)
	for name, c := range map[string]string{
		"Primary": th.Primary, "Accent": th.Accent, "FgBase": th.FgBase,
		"BorderFocused": th.BorderFocused, "Error": th.Error,
	} {
		require.Len(t, c, 7, name)
		require.Equal(t, byte('#'), c[0], name)
	}
	require.NotNil(t, th.S())
	require.Same(t, th.S(), th.S())
}

func TestParseAndFormatHexColor(t *testing.T) {
	t.Parallel()

	r, g, b := ParseHexColor("#00a4b8")
	require.Equal(t, [3]uint8{0x00, 0xa4, 0xb8}, [3]uint8{r, g, b})
	require.Equal(t, "#00a4b8", FormatHexColor(r, g, b))

	r, g, b = ParseHexColor("bad")
	require.Zero(t, r+g+b)
}

func TestInterpolateColor(t *testing.T) {
	t.Parallel()

	require.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	require.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	require.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
}

func TestApplyGradient(t *testing.T) {
	t.Parallel()

	require.Empty(t, ApplyGradient("", "#000000", "#ffffff"))
	require.Contains(t, ApplyGradient("x", "#000000", "#ffffff"), "x")
}

func TestSetCurrentIgnoresNil(t *testing.T) {
	before := Current()
	SetCurrent(nil)
	require.Same(t, before, Current())
}
