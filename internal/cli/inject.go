package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keymap-tools/internal/app"
)

type injectOptions struct {
	MergedYAML  string
	Themes      string
	Theme       string
	MergeConfig string
	DrawConfig  string
	GlyphSVG    string
	PadX        float64
	PadY        float64
}

func newInjectCommand() *cobra.Command {
	opts := injectOptions{}
	cmd := &cobra.Command{
		Use:   "inject <svg>",
		Short: "Patch corner legends and theme styling into a rendered diagram",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd.Context(), cmd, opts, args[0])
		},
	}
	cmd.Flags().StringVar(&opts.MergedYAML, "merged-yaml", "", "Merged keymap document the diagram was rendered from")
	cmd.Flags().StringVar(&opts.Themes, "themes", "", "Themes file path")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Theme name to select from the themes file")
	cmd.Flags().StringVar(&opts.MergeConfig, "merge-config", "", "Merge configuration path")
	cmd.Flags().StringVar(&opts.DrawConfig, "draw-config", "", "Renderer draw configuration path")
	cmd.Flags().StringVar(&opts.GlyphSVG, "glyph-svg", "", "Donor SVG to copy glyph definitions from")
	cmd.Flags().Float64Var(&opts.PadX, "pad-x", 10, "Horizontal corner padding in pixels")
	cmd.Flags().Float64Var(&opts.PadY, "pad-y", 0, "Vertical corner padding in pixels")
	_ = cmd.MarkFlagRequired("merged-yaml")
	return cmd
}

func runInject(ctx context.Context, cmd *cobra.Command, opts injectOptions, svgPath string) error {
	service := newAppService()
	result, err := service.Inject(ctx, app.InjectRequest{
		SVGPath:         svgPath,
		MergedYAMLPath:  opts.MergedYAML,
		ThemesPath:      opts.Themes,
		ThemeName:       opts.Theme,
		MergeConfigPath: opts.MergeConfig,
		DrawConfigPath:  opts.DrawConfig,
		GlyphSVGPath:    opts.GlyphSVG,
		PadX:            opts.PadX,
		PadY:            opts.PadY,
		PadYSet:         flagChanged(cmd, "pad-y"),
	})
	if err != nil {
		return err
	}
	fmt.Printf("injected corner legends into %s (%d keys)\n", result.SVGPath, result.Keys)
	return nil
}
