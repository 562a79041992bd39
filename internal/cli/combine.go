package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keymap-tools/internal/app"
)

type combineOptions struct {
	Output string
}

func newCombineCommand() *cobra.Command {
	opts := combineOptions{}
	cmd := &cobra.Command{
		Use:   "combine <base-svg> <addition-svg>",
		Short: "Append one diagram below another into a single SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(cmd.Context(), opts, args[0], args[1])
		},
	}
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output path (defaults to overwriting the base SVG)")
	return cmd
}

func runCombine(ctx context.Context, opts combineOptions, basePath string, additionPath string) error {
	service := newAppService()
	result, err := service.Combine(ctx, app.CombineRequest{
		BasePath:     basePath,
		AdditionPath: additionPath,
		Output:       opts.Output,
	})
	if err != nil {
		return err
	}
	fmt.Printf("appended %s below %s into %s\n", additionPath, basePath, result.Output)
	return nil
}
