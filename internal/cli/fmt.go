package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"keymap-tools/internal/app"
	"keymap-tools/internal/core"
)

type fmtOptions struct {
	Cols    int
	InPlace bool
	Output  string
}

func newFmtCommand() *cobra.Command {
	opts := fmtOptions{}
	cmd := &cobra.Command{
		Use:   "fmt <file>",
		Short: "Reformat keymap sources with aligned layer grids",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFmt(cmd.Context(), opts, args[0])
		},
	}
	cmd.Flags().IntVar(&opts.Cols, "cols", core.DefaultFormatCols, "Number of key columns per layer row")
	cmd.Flags().BoolVarP(&opts.InPlace, "in-place", "i", false, "Rewrite the file in place")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Write the formatted source to this path")
	return cmd
}

func runFmt(ctx context.Context, opts fmtOptions, path string) error {
	service := newAppService()
	result, err := service.Format(ctx, app.FormatRequest{
		Path:    path,
		Cols:    opts.Cols,
		InPlace: opts.InPlace,
		Output:  opts.Output,
	})
	if err != nil {
		return err
	}
	if result.Output != "" {
		if result.Changed {
			fmt.Printf("formatted %s\n", result.Output)
		} else {
			fmt.Printf("unchanged: %s\n", result.Output)
		}
		return nil
	}
	fmt.Print(result.Formatted)
	return nil
}
