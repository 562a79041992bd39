package core

import (
	"strings"
	"text/template"

	"keymap-tools/internal/types"
)

// cornerCSSTemplate styles the injected corner legends and overrides
// the renderer's default colors with the theme. The !important marks
// are needed to win against the renderer's own stylesheet.
var cornerCSSTemplate = template.Must(template.New("corner-css").Parse(`
/* Theme colors */
rect.key { fill: {{.Bg}} !important; }
rect.combo, rect.combo-separate { fill: {{.ComboBg}} !important; }
text, use { fill: {{.Text}}; }
/* Corner legend styles for the merged view */
text.tl {
    text-anchor: start;
    dominant-baseline: hanging;
    font-size: {{.GlyphSize}}px;
    fill: {{.TL}};
}
text.tr {
    text-anchor: end;
    dominant-baseline: hanging;
    font-size: {{.GlyphSize}}px;
    fill: {{.TR}};
}
text.bl {
    text-anchor: start;
    dominant-baseline: text-after-edge;
    font-size: {{.GlyphSize}}px;
    fill: {{.BL}};
}
text.br {
    text-anchor: end;
    dominant-baseline: text-after-edge;
    font-size: {{.GlyphSize}}px;
    fill: {{.BR}};
}
/* Corner glyph/icon colors */
use.tl, .tl path { fill: {{.TL}}; }
use.tr, .tr path { fill: {{.TR}}; }
use.bl, .bl path { fill: {{.BL}}; }
use.br, .br path { fill: {{.BR}}; }
/* Layer activator keys */
.layer-tl text, .layer-tl use { fill: {{.TL}}; }
.layer-tr text, .layer-tr use { fill: {{.TR}}; }
.layer-bl text, .layer-bl use { fill: {{.BL}}; }
.layer-br text, .layer-br use { fill: {{.BR}}; }
/* Held key text */
text.held-tl { fill: {{.TL}}; }
text.held-tr { fill: {{.TR}}; }
text.held-bl { fill: {{.BL}}; }
text.held-br { fill: {{.BR}}; }
`))

type cornerCSSData struct {
	TL        string
	TR        string
	BL        string
	BR        string
	Text      string
	Bg        string
	ComboBg   string
	GlyphSize int
}

// CornerCSS renders the stylesheet block injected before the SVG's
// closing </style> tag.
func CornerCSS(colors types.ThemeColors, glyphSize int) string {
	var out strings.Builder
	data := cornerCSSData{
		TL:        colors.TL,
		TR:        colors.TR,
		BL:        colors.BL,
		BR:        colors.BR,
		Text:      colors.Text,
		Bg:        colors.Bg,
		ComboBg:   colors.EffectiveComboBg(),
		GlyphSize: glyphSize,
	}
	// The template only fails on a bad template, which Must has
	// already ruled out.
	_ = cornerCSSTemplate.Execute(&out, data)
	return out.String()
}
