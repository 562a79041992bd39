package types

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// CornerAssignments names the layer occupying each visual corner of a
// composite diagram. Empty means the corner is unassigned.
type CornerAssignments struct {
	TL string
	TR string
	BL string
	BR string
}

// Layer returns the layer assigned to a corner.
func (a CornerAssignments) Layer(corner Corner) string {
	switch corner {
	case CornerTL:
		return a.TL
	case CornerTR:
		return a.TR
	case CornerBL:
		return a.BL
	case CornerBR:
		return a.BR
	}
	return ""
}

// IsEmpty reports whether no corner is assigned.
func (a CornerAssignments) IsEmpty() bool {
	return a.TL == "" && a.TR == "" && a.BL == "" && a.BR == ""
}

// Assigned lists the populated corners in drawing order.
func (a CornerAssignments) Assigned() []Corner {
	var corners []Corner
	for _, corner := range Corners {
		if a.Layer(corner) != "" {
			corners = append(corners, corner)
		}
	}
	return corners
}

// MergeConfig controls the merge step: which key positions are
// suppressed per corner, which positions represent held layer
// activators, and how large corner glyphs render.
type MergeConfig struct {
	CornerHide      map[Corner][]int  `yaml:"corner_hide,omitempty"`
	HeldKeyColors   map[int]Corner    `yaml:"held_key_colors,omitempty"`
	HeldHide        []string          `yaml:"held_hide,omitempty"`
	CornerGlyphSize int               `yaml:"corner_glyph_size,omitempty"`
}

// DefaultGlyphSize is the corner glyph size used when the merge config
// does not set one.
const DefaultGlyphSize = 11

func (c MergeConfig) Validate() error {
	if err := validation.Validate(c.CornerGlyphSize,
		validation.Min(0), validation.Max(24)); err != nil {
		return fmt.Errorf("corner_glyph_size: %w", err)
	}
	if c.CornerGlyphSize != 0 && c.CornerGlyphSize < 6 {
		return fmt.Errorf("corner_glyph_size: must be no less than 6")
	}
	for corner := range c.CornerHide {
		if !knownCorner(corner) {
			return fmt.Errorf("corner_hide: unknown corner %q", corner)
		}
	}
	for pos, corner := range c.HeldKeyColors {
		if pos < 0 {
			return fmt.Errorf("held_key_colors: negative key position %d", pos)
		}
		if !knownCorner(corner) {
			return fmt.Errorf("held_key_colors: unknown corner %q for position %d", corner, pos)
		}
	}
	return nil
}

// GlyphSize returns the configured glyph size or the default.
func (c MergeConfig) GlyphSize() int {
	if c.CornerGlyphSize == 0 {
		return DefaultGlyphSize
	}
	return c.CornerGlyphSize
}

// Hidden reports whether the given key position is suppressed for the
// given corner.
func (c MergeConfig) Hidden(corner Corner, position int) bool {
	for _, hidden := range c.CornerHide[corner] {
		if hidden == position {
			return true
		}
	}
	return false
}

func knownCorner(corner Corner) bool {
	switch corner {
	case CornerTL, CornerTR, CornerBL, CornerBR:
		return true
	}
	return false
}

// DrawConfig carries the key geometry the external renderer draws with,
// read from the draw_config section of its config file.
type DrawConfig struct {
	KeyW     float64 `yaml:"key_w"`
	KeyH     float64 `yaml:"key_h"`
	SmallPad float64 `yaml:"small_pad"`
}

// DefaultDrawConfig matches the renderer's defaults.
func DefaultDrawConfig() DrawConfig {
	return DrawConfig{KeyW: 60, KeyH: 56, SmallPad: 2}
}
