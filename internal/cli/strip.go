package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keymap-tools/internal/app"
)

type stripOptions struct {
	Input  string
	Output string
}

func newStripCommand() *cobra.Command {
	opts := stripOptions{}
	cmd := &cobra.Command{
		Use:   "strip",
		Short: "Remove auxiliary corner fields so the renderer can draw the document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStrip(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Merged keymap document path")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Stripped output path")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

func runStrip(ctx context.Context, opts stripOptions) error {
	service := newAppService()
	result, err := service.Strip(ctx, app.StripRequest{Input: opts.Input, Output: opts.Output})
	if err != nil {
		return err
	}
	fmt.Printf("stripped keymap written to %s\n", result.Output)
	return nil
}
