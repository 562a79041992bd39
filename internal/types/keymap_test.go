package types

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestKeymapUnmarshalPreservesLayerOrder(t *testing.T) {
	doc := `layers:
  zulu: [A]
  alpha: [B]
  mike: [C]
`
	var keymap Keymap
	require.NoError(t, yaml.Unmarshal([]byte(doc), &keymap))
	assert.Equal(t, []string{"zulu", "alpha", "mike"}, keymap.Layers.Names())
}

func TestKeymapRoundTrip(t *testing.T) {
	doc := `layout:
  qmk_keyboard: ferris/sweep
layers:
  base:
    - Q
    - {t: W, s: "@", h: Ctrl}
  nav:
    - Home
    - Up
combos:
  - p: [0, 1]
    k: Esc
    l: [base]
`
	var keymap Keymap
	require.NoError(t, yaml.Unmarshal([]byte(doc), &keymap))

	out, err := yaml.Marshal(keymap)
	require.NoError(t, err)

	var again Keymap
	require.NoError(t, yaml.Unmarshal(out, &again))
	if diff := cmp.Diff(keymap, again, cmp.AllowUnexported(Layers{})); diff != "" {
		t.Fatalf("round trip changed the document (-want +got):\n%s", diff)
	}
}

func TestKeyLegendUnmarshal(t *testing.T) {
	tests := []struct {
		name     string
		doc      string
		expected KeyLegend
	}{
		{"plain scalar", `Q`, KeyLegend{Tap: "Q"}},
		{"numeric scalar", `5`, KeyLegend{Tap: "5"}},
		{"null is empty", `null`, KeyLegend{}},
		{"tilde is empty", `~`, KeyLegend{}},
		{
			"full mapping",
			`{t: W, s: "@", h: Ctrl, type: held}`,
			KeyLegend{Tap: "W", Shifted: "@", Hold: "Ctrl", Type: "held"},
		},
		{
			"long tap key",
			`{tap: W}`,
			KeyLegend{Tap: "W"},
		},
		{
			"corner fields",
			`{t: Q, tl: "1", tr: "2", bl: "3", br: "4"}`,
			KeyLegend{Tap: "Q", TL: "1", TR: "2", BL: "3", BR: "4"},
		},
		{
			"null mapping value is empty string",
			`{t: Q, h: null}`,
			KeyLegend{Tap: "Q"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			var key KeyLegend
			require.NoError(t, yaml.Unmarshal([]byte(tt.doc), &key))
			assert.Equal(t, tt.expected, key)
		})
	}
}

func TestKeyLegendUnmarshalRejectsSequence(t *testing.T) {
	var key KeyLegend
	err := yaml.Unmarshal([]byte(`[A, B]`), &key)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "scalar or mapping")
}

func TestKeyLegendMarshalCollapsesTapOnly(t *testing.T) {
	out, err := yaml.Marshal([]KeyLegend{
		{Tap: "Q"},
		{Tap: "W", Hold: "Ctrl"},
	})
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "- Q\n")
	assert.Contains(t, text, "t: W")
	assert.Contains(t, text, "h: Ctrl")
	assert.False(t, strings.Contains(text, "t: Q"), "tap-only keys must stay scalars")
}

func TestKeyLegendHelpers(t *testing.T) {
	key := KeyLegend{Tap: "Q", Hold: "Ctrl", TL: "1"}

	assert.True(t, key.HasCorners())
	assert.Equal(t, "1", key.Corner(CornerTL))
	assert.Empty(t, key.Corner(CornerBR))

	key.SetCorner(CornerBR, "4")
	assert.Equal(t, "4", key.Corner(CornerBR))

	stripped := key.StripCorners()
	assert.False(t, stripped.HasCorners())
	assert.Equal(t, "Q", stripped.Tap)

	assert.True(t, KeyLegend{}.IsEmpty())
	assert.False(t, KeyLegend{Tap: "Q"}.IsEmpty())
	assert.False(t, KeyLegend{TL: "1"}.IsEmpty())
}

func TestKeyLegendTransparentHandling(t *testing.T) {
	trans := KeyLegend{Tap: "base", Type: "trans"}
	assert.Empty(t, trans.TapLegend())
	assert.Equal(t, KeyLegend{}, trans.CenterLegend())

	normal := KeyLegend{Tap: "Q", Shifted: "@", TL: "stale"}
	assert.Equal(t, "Q", normal.TapLegend())
	assert.Equal(t, KeyLegend{Tap: "Q", Shifted: "@"}, normal.CenterLegend())
}

func TestComboActiveOn(t *testing.T) {
	everywhere := Combo{KeyPositions: []int{0, 1}}
	assert.True(t, everywhere.ActiveOn("base"))
	assert.True(t, everywhere.ActiveOn("nav"))

	scoped := Combo{KeyPositions: []int{0, 1}, Layers: []string{"base", "num"}}
	assert.True(t, scoped.ActiveOn("base"))
	assert.False(t, scoped.ActiveOn("nav"))
}

func TestLayersSetAndGet(t *testing.T) {
	layers := NewLayers()
	layers.Set("base", []KeyLegend{{Tap: "Q"}})
	layers.Set("nav", []KeyLegend{{Tap: "Up"}})
	layers.Set("base", []KeyLegend{{Tap: "Z"}})

	// Re-setting replaces the keys but keeps the original position.
	assert.Equal(t, []string{"base", "nav"}, layers.Names())
	keys, ok := layers.Get("base")
	require.True(t, ok)
	assert.Equal(t, "Z", keys[0].Tap)

	_, ok = layers.Get("bogus")
	assert.False(t, ok)
	assert.Equal(t, 2, layers.Len())
}
