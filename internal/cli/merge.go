package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keymap-tools/internal/app"
	"keymap-tools/internal/types"
)

type mergeOptions struct {
	Input       string
	Output      string
	Center      string
	TL          string
	TR          string
	BL          string
	BR          string
	MergeConfig string
	Combos      string
	Force       bool
}

func newMergeCommand() *cobra.Command {
	opts := mergeOptions{}
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge a center layer and up to four corner layers into one document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMerge(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Input keymap document (from the renderer's parse step)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output merged document path")
	cmd.Flags().StringVar(&opts.Center, "center", "", "Layer name for the center position")
	cmd.Flags().StringVar(&opts.TL, "tl", "", "Layer name for the top-left corner")
	cmd.Flags().StringVar(&opts.TR, "tr", "", "Layer name for the top-right corner")
	cmd.Flags().StringVar(&opts.BL, "bl", "", "Layer name for the bottom-left corner")
	cmd.Flags().StringVar(&opts.BR, "br", "", "Layer name for the bottom-right corner")
	cmd.Flags().StringVar(&opts.MergeConfig, "merge-config", "", "Merge configuration path")
	cmd.Flags().StringVar(&opts.Combos, "combos", string(types.ComboScopeCenter), "Combo filter scope: center or any")
	cmd.Flags().BoolVar(&opts.Force, "force", false, "Regenerate even when the output is newer than the input")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	_ = cmd.MarkFlagRequired("center")
	return cmd
}

func runMerge(ctx context.Context, opts mergeOptions) error {
	service := newAppService()
	result, err := service.Merge(ctx, app.MergeRequest{
		Input:  opts.Input,
		Output: opts.Output,
		Center: opts.Center,
		Corners: types.CornerAssignments{
			TL: opts.TL,
			TR: opts.TR,
			BL: opts.BL,
			BR: opts.BR,
		},
		MergeConfigPath: opts.MergeConfig,
		ComboScope:      types.ComboScope(opts.Combos),
		Force:           opts.Force,
	})
	if err != nil {
		return err
	}
	if result.Skipped {
		fmt.Printf("up to date: %s\n", result.Output)
		return nil
	}
	fmt.Printf("merged keymap written to %s (%d keys)\n", result.Output, result.Keys)
	return nil
}
