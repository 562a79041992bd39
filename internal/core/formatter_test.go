package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatLayerGrid(t *testing.T) {
	input := `LAYER(base,
&kp Q     &kp W
    &kp A &kp B
)`
	expected := `LAYER(base,
    &kp Q &kp W
    &kp A &kp B
)`

	got := NewFormatter(2).Format(input)
	assert.Equal(t, expected, got)
}

func TestFormatAlignsToWidestBindingAcrossLayers(t *testing.T) {
	input := `LAYER(base,
&kp Q &kp W
)
LAYER(nav,
&kp HOME &kp END
)`

	got := NewFormatter(2).Format(input)

	// &kp HOME is the widest binding, so &kp Q pads to its width.
	assert.Contains(t, got, "    &kp Q    &kp W")
	assert.Contains(t, got, "    &kp HOME &kp END")
}

func TestFormatThumbRowIndent(t *testing.T) {
	input := `LAYER(base,
&kp Q &kp W
&kp A &kp B
&kp SPACE
)`

	got := NewFormatter(2).Format(input)

	// The short trailing row indents past the first columns: widest
	// binding is "&kp SPACE" (9 chars), so 4 + 3*(9+1) = 34 spaces.
	assert.Contains(t, got, "\n"+strings.Repeat(" ", 34)+"&kp SPACE\n")
}

func TestFormatRecognizesKeyMacroBindings(t *testing.T) {
	input := `DEFINE HRM_A &hm LGUI A
LAYER(base,
HRM_A &kp W
&kp A &kp B
)`

	got := NewFormatter(2).Format(input)
	assert.Contains(t, got, "    HRM_A &kp W")
}

func TestFormatMacroBlocks(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "hold tap gets one property per line",
			input: `HOLD_TAP(hrm, flavor = "balanced"; tapping-term-ms = <280>;)`,
			expected: `HOLD_TAP(hrm,
    flavor = "balanced";
    tapping-term-ms = <280>;
)`,
		},
		{
			name:  "behavior keeps its kind on the opening line",
			input: `BEHAVIOR(sk, sticky_key, release-after-ms = <900>; quick-release;)`,
			expected: `BEHAVIOR(sk, sticky_key,
    release-after-ms = <900>;
    quick-release;
)`,
		},
		{
			name:  "semicolons inside brackets do not split",
			input: `MACRO(greet, bindings = <&kp H &kp I>; wait-ms = <0>;)`,
			expected: `MACRO(greet,
    bindings = <&kp H &kp I>;
    wait-ms = <0>;
)`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := NewFormatter(10).Format(tt.input)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormatPassesThroughContinuedDefines(t *testing.T) {
	input := `DEFINE MORPH(name, base, shifted) \
    BEHAVIOR(name, mod_morph, \
        bindings = <base>, <shifted>;)

LAYER(base,
&kp Q &kp W
)`

	got := NewFormatter(2).Format(input)
	assert.Contains(t, got, `DEFINE MORPH(name, base, shifted) \`)
	assert.Contains(t, got, "    &kp Q &kp W")
}

func TestFormatCollapsesBlankRuns(t *testing.T) {
	input := "DEFINE BASE 0\n\n\n\n\nDEFINE NAV 1"
	got := NewFormatter(10).Format(input)
	assert.Equal(t, "DEFINE BASE 0\n\nDEFINE NAV 1", got)
}

func TestFormatTrimsNodeTrailingWhitespace(t *testing.T) {
	input := "&mt {\n    tapping-term-ms = <200>;   \n};"
	got := NewFormatter(10).Format(input)
	assert.Contains(t, got, "    tapping-term-ms = <200>;\n")
}

func TestFormatIsIdempotent(t *testing.T) {
	input := `DEFINE BASE 0

LAYER(base,
&kp Q &kp W
&kp A &kp B
&kp SPACE
)

HOLD_TAP(hrm, flavor = "balanced"; tapping-term-ms = <280>;)`

	once := NewFormatter(2).Format(input)
	twice := NewFormatter(2).Format(once)
	require.Equal(t, once, twice)
}

func TestNewFormatterDefaultsColumns(t *testing.T) {
	assert.Equal(t, DefaultFormatCols, NewFormatter(0).Cols)
	assert.Equal(t, DefaultFormatCols, NewFormatter(-3).Cols)
	assert.Equal(t, 12, NewFormatter(12).Cols)
}
