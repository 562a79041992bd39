package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"keymap-tools/internal/core"
	"keymap-tools/internal/types"
)

// Inject patches a rendered SVG with corner legends and theme colors.
// The SVG is rewritten only after the whole transform succeeds, so a
// geometry mismatch or bad theme leaves the file untouched.
func (s Service) Inject(ctx context.Context, req InjectRequest) (InjectResult, error) {
	if err := requirePaths(map[string]string{
		"svg path":         req.SVGPath,
		"merged yaml path": req.MergedYAMLPath,
	}); err != nil {
		return InjectResult{}, err
	}

	svg, err := s.SVGs.Read(req.SVGPath)
	if err != nil {
		return InjectResult{}, err
	}
	merged, err := s.Keymaps.Load(req.MergedYAMLPath)
	if err != nil {
		return InjectResult{}, err
	}
	keys, ok := merged.Layers.Get(core.MergedLayerName)
	if !ok {
		// Fall back to the document's only layer when it was merged
		// under a different name.
		names := merged.Layers.Names()
		if len(names) == 1 {
			keys, _ = merged.Layers.Get(names[0])
		}
	}

	theme, err := s.selectTheme(req.ThemesPath, req.ThemeName)
	if err != nil {
		return InjectResult{}, err
	}
	draw, err := s.DrawConfigs.Load(req.DrawConfigPath)
	if err != nil {
		return InjectResult{}, err
	}
	mergeConfig, err := s.MergeConfigs.Load(req.MergeConfigPath)
	if err != nil {
		return InjectResult{}, err
	}

	padY := draw.SmallPad
	if req.PadYSet {
		padY = req.PadY
	}

	glyphDefs := ""
	if req.GlyphSVGPath != "" {
		donor, err := s.SVGs.Read(req.GlyphSVGPath)
		if err != nil {
			return InjectResult{}, err
		}
		glyphDefs = core.ExtractGlyphDefs(donor)
	}

	patched, err := core.InjectCornerLegends(svg, keys, core.InjectorConfig{
		Draw:      draw,
		PadX:      req.PadX,
		PadY:      padY,
		GlyphSize: mergeConfig.GlyphSize(),
		Colors:    theme.Colors,
		GlyphDefs: glyphDefs,
	})
	if err != nil {
		return InjectResult{}, err
	}
	if err := s.SVGs.Write(req.SVGPath, patched); err != nil {
		return InjectResult{}, err
	}

	log.Ctx(ctx).Debug().
		Str("svg", req.SVGPath).
		Int("keys", len(keys)).
		Bool("dark_mode", theme.DarkMode).
		Msg("corner legends injected")
	return InjectResult{SVGPath: req.SVGPath, Keys: len(keys)}, nil
}

// selectTheme resolves the effective theme: the named (or default)
// entry of the themes document when one is given, the built-in light
// palette otherwise.
func (s Service) selectTheme(themesPath, name string) (types.Theme, error) {
	if themesPath == "" {
		return types.Theme{Colors: types.DefaultThemeColors()}, nil
	}
	themes, err := s.Themes.Load(themesPath)
	if err != nil {
		return types.Theme{}, err
	}
	return themes.Select(name)
}

// Combine appends one rendered SVG below another. The result replaces
// the base file unless an output path is given.
func (s Service) Combine(ctx context.Context, req CombineRequest) (CombineResult, error) {
	if err := requirePaths(map[string]string{
		"base svg path":     req.BasePath,
		"addition svg path": req.AdditionPath,
	}); err != nil {
		return CombineResult{}, err
	}
	base, err := s.SVGs.Read(req.BasePath)
	if err != nil {
		return CombineResult{}, err
	}
	addition, err := s.SVGs.Read(req.AdditionPath)
	if err != nil {
		return CombineResult{}, err
	}
	combined, err := core.AppendBelow(base, addition)
	if err != nil {
		return CombineResult{}, err
	}
	output := req.Output
	if output == "" {
		output = req.BasePath
	}
	if err := s.SVGs.Write(output, combined); err != nil {
		return CombineResult{}, err
	}
	log.Ctx(ctx).Debug().Str("base", req.BasePath).Str("addition", req.AdditionPath).Str("output", output).Msg("svg documents combined")
	return CombineResult{Output: output}, nil
}
