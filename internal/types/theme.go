package types

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lucasb-eyer/go-colorful"
)

// ThemeColors is the color set applied to a composite diagram: one color
// per corner plus text, key background, and combo background.
type ThemeColors struct {
	TL      string `yaml:"tl"`
	TR      string `yaml:"tr"`
	BL      string `yaml:"bl"`
	BR      string `yaml:"br"`
	Text    string `yaml:"text"`
	Bg      string `yaml:"bg"`
	ComboBg string `yaml:"combo_bg,omitempty"`
}

// DefaultThemeColors matches the renderer's light palette.
func DefaultThemeColors() ThemeColors {
	return ThemeColors{
		TL:   "#e5c07b",
		TR:   "#61afef",
		BL:   "#98c379",
		BR:   "#c678dd",
		Text: "#000000",
		Bg:   "#ffffff",
	}
}

func (c ThemeColors) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.TL, validation.Required, validation.By(validColorToken)),
		validation.Field(&c.TR, validation.Required, validation.By(validColorToken)),
		validation.Field(&c.BL, validation.Required, validation.By(validColorToken)),
		validation.Field(&c.BR, validation.Required, validation.By(validColorToken)),
		validation.Field(&c.Text, validation.Required, validation.By(validColorToken)),
		validation.Field(&c.Bg, validation.Required, validation.By(validColorToken)),
		validation.Field(&c.ComboBg, validation.By(optionalColorToken)),
	)
}

// Fill returns the corner's fill color.
func (c ThemeColors) Fill(corner Corner) string {
	switch corner {
	case CornerTL:
		return c.TL
	case CornerTR:
		return c.TR
	case CornerBL:
		return c.BL
	case CornerBR:
		return c.BR
	}
	return "#000"
}

// EffectiveComboBg falls back to the key background when no dedicated
// combo background is configured.
func (c ThemeColors) EffectiveComboBg() string {
	if c.ComboBg == "" {
		return c.Bg
	}
	return c.ComboBg
}

func validColorToken(value any) error {
	token, _ := value.(string)
	if _, err := colorful.Hex(token); err != nil {
		return fmt.Errorf("invalid color token %q", token)
	}
	return nil
}

func optionalColorToken(value any) error {
	token, _ := value.(string)
	if token == "" {
		return nil
	}
	return validColorToken(value)
}

// Theme is one named color scheme from the themes document.
type Theme struct {
	DarkMode bool        `yaml:"dark_mode"`
	Colors   ThemeColors `yaml:"colors"`
}

func (t Theme) Validate() error {
	return t.Colors.Validate()
}

// ThemesFile maps theme names to themes and names the default.
type ThemesFile struct {
	Default string           `yaml:"default"`
	Themes  map[string]Theme `yaml:"themes"`
}

func (f ThemesFile) Validate() error {
	if len(f.Themes) == 0 {
		return fmt.Errorf("themes document defines no themes")
	}
	if f.Default != "" {
		if _, ok := f.Themes[f.Default]; !ok {
			return fmt.Errorf("default theme %q is not defined", f.Default)
		}
	}
	for name, theme := range f.Themes {
		if err := theme.Validate(); err != nil {
			return fmt.Errorf("theme %s: %w", name, err)
		}
	}
	return nil
}

// Select returns the named theme, or the default theme when name is
// empty.
func (f ThemesFile) Select(name string) (Theme, error) {
	if name == "" {
		name = f.Default
	}
	if name == "" {
		return Theme{}, fmt.Errorf("no theme requested and no default configured")
	}
	theme, ok := f.Themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("theme %q is not defined", name)
	}
	return theme, nil
}
