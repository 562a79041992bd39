package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keymap-tools/internal/app"
)

type layersOptions struct {
	Input string
}

func newLayersCommand() *cobra.Command {
	opts := layersOptions{}
	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List a keymap document's layers in declaration order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLayers(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "Keymap document path")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runLayers(ctx context.Context, opts layersOptions) error {
	service := newAppService()
	result, err := service.Layers(ctx, app.LayersRequest{Input: opts.Input})
	if err != nil {
		return err
	}
	fmt.Println("Available layers:")
	for _, name := range result.Layers {
		fmt.Printf("  - %s\n", name)
	}
	return nil
}
