package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"keymap-tools/internal/shared"
	"keymap-tools/internal/types"
)

// InjectorConfig carries everything the corner injection pass needs
// besides the SVG and the merged key legends themselves.
type InjectorConfig struct {
	Draw      types.DrawConfig
	PadX      float64
	PadY      float64
	GlyphSize int
	Colors    types.ThemeColors

	// GlyphDefs holds <svg id="source:name"> definitions copied from a
	// donor SVG so corner glyph references resolve. Optional.
	GlyphDefs string
}

var (
	// Key groups are identified by their positional keypos-N class; the
	// order of N matches the order keys were emitted into the merged
	// document.
	keyGroupPattern = regexp.MustCompile(`(?s)(<g[^>]*class="[^"]*keypos-(\d+)[^"]*"[^>]*>)(.*?)(</g>)`)

	glyphRefPattern  = regexp.MustCompile(`^\$\$([^:$]+):([^$]+)\$\$$`)
	glyphDefsPattern = regexp.MustCompile(`(?s)<svg id="[^"]+:[^"]+">\s*<svg[^>]*>.*?</svg>\s*</svg>`)
)

// InjectCornerLegends patches an already-rendered SVG with the corner
// legends recorded on the merged document's auxiliary fields, plus the
// theme stylesheet. It is a pure transform: on any error the input is
// returned unchanged and the caller must not write it back.
func InjectCornerLegends(svg string, keys []types.KeyLegend, config InjectorConfig) (string, error) {
	if err := config.Colors.Validate(); err != nil {
		return svg, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid theme colors").
			WithCause(err)
	}

	groups := keyGroupPattern.FindAllString(svg, -1)
	if len(groups) != len(keys) {
		return svg, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("geometry mismatch: svg has %d key groups, merged document has %d keys",
				len(groups), len(keys)))
	}

	css := CornerCSS(config.Colors, config.GlyphSize)
	if strings.Contains(svg, "</style>") {
		svg = strings.Replace(svg, "</style>", css+"</style>", 1)
	}

	// Donor glyph defs go into their own <defs> block ahead of the
	// stylesheet, skipped when a previous pass already placed them.
	if config.GlyphDefs != "" && !strings.Contains(svg, `<svg id="`+glyphDefsProbe(config.GlyphDefs)) {
		svg = strings.Replace(svg, "<style>", "<defs>\n"+config.GlyphDefs+"\n</defs>\n<style>", 1)
	}

	injector := newCornerInjector(keys, config)
	svg = keyGroupPattern.ReplaceAllStringFunc(svg, injector.inject)
	return svg, nil
}

// ExtractGlyphDefs pulls glyph definitions out of a donor SVG. The
// renderer nests each glyph as <svg id="source:name"><svg …>…</svg></svg>
// inside its defs section.
func ExtractGlyphDefs(svg string) string {
	return strings.Join(glyphDefsPattern.FindAllString(svg, -1), "\n")
}

func glyphDefsProbe(defs string) string {
	// First glyph id is enough to detect a previous injection.
	match := regexp.MustCompile(`<svg id="([^"]+)"`).FindStringSubmatch(defs)
	if match == nil {
		return defs
	}
	return match[1]
}

// cornerInjector is the substitution callback state for one injection
// run: precomputed offsets, theme fills, and the merged key legends.
type cornerInjector struct {
	keys          []types.KeyLegend
	xOffset       int
	yOffset       int
	yOffsetBottom int
	glyphSize     int
	colors        types.ThemeColors
}

func newCornerInjector(keys []types.KeyLegend, config InjectorConfig) cornerInjector {
	xOffset, yOffset := CornerOffsets(config.Draw.KeyW, config.Draw.KeyH, config.PadX, config.PadY)
	return cornerInjector{
		keys:    keys,
		xOffset: xOffset,
		yOffset: yOffset,
		// text-after-edge baselines sit one pixel high otherwise.
		yOffsetBottom: yOffset + 1,
		glyphSize:     config.GlyphSize,
		colors:        config.Colors,
	}
}

type cornerSpec struct {
	corner types.Corner
	x      int
	y      int
}

func (inj cornerInjector) specs() []cornerSpec {
	return []cornerSpec{
		{types.CornerTL, -inj.xOffset, -inj.yOffset},
		{types.CornerTR, inj.xOffset, -inj.yOffset},
		{types.CornerBL, -inj.xOffset, inj.yOffsetBottom},
		{types.CornerBR, inj.xOffset, inj.yOffsetBottom},
	}
}

func (inj cornerInjector) inject(group string) string {
	match := keyGroupPattern.FindStringSubmatch(group)
	if match == nil {
		return group
	}
	opening, content, closing := match[1], match[3], match[4]
	keypos, err := strconv.Atoi(match[2])
	if err != nil || keypos >= len(inj.keys) {
		return group
	}

	key := inj.keys[keypos]
	if !key.HasCorners() {
		return group
	}

	var elements []string
	for _, spec := range inj.specs() {
		value := key.Corner(spec.corner)
		if value == "" {
			continue
		}
		elements = append(elements, inj.cornerElement(value, spec))
	}
	if len(elements) == 0 {
		return group
	}

	return opening + content + "\n" + strings.Join(elements, "\n") + closing
}

// cornerElement renders one legend: a <use> for glyph references of the
// form $$source:name$$, a <text> for everything else.
func (inj cornerInjector) cornerElement(value string, spec cornerSpec) string {
	if ref := glyphRefPattern.FindStringSubmatch(value); ref != nil {
		return inj.glyphElement(ref[1]+":"+ref[2], spec)
	}
	return fmt.Sprintf(`<text x="%d" y="%d" class="%s">%s</text>`,
		spec.x, spec.y, spec.corner, shared.EscapeXML(value))
}

func (inj cornerInjector) glyphElement(glyphID string, spec cornerSpec) string {
	gx, gy := spec.x, spec.y
	switch spec.corner {
	case types.CornerTR:
		gx -= inj.glyphSize
	case types.CornerBL:
		gy -= inj.glyphSize
	case types.CornerBR:
		gx -= inj.glyphSize
		gy -= inj.glyphSize
	}
	return fmt.Sprintf(
		`<use href="#%s" xlink:href="#%s" x="%d" y="%d" height="%d" width="%d" fill="%s" class="glyph %s"/>`,
		glyphID, glyphID, gx, gy, inj.glyphSize, inj.glyphSize,
		inj.colors.Fill(spec.corner), spec.corner,
	)
}
