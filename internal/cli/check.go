package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"keymap-tools/internal/app"
)

type checkOptions struct {
	Dir     string
	Overlay string
}

func newCheckCommand() *cobra.Command {
	opts := checkOptions{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check keymap sources for combo and layer consistency bugs",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCheck(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Dir, "dir", "config", "Configuration directory to scan")
	cmd.Flags().StringVar(&opts.Overlay, "overlay", "sys", "Name of the overlay layer that must be declared last")
	_ = viper.BindPFlag("dir", cmd.Flags().Lookup("dir"))
	_ = viper.BindPFlag("overlay", cmd.Flags().Lookup("overlay"))
	return cmd
}

func runCheck(ctx context.Context, cmd *cobra.Command, opts checkOptions) error {
	service := newAppService()
	result, err := service.Check(ctx, app.CheckRequest{
		Dir:     resolveString(cmd, opts.Dir, "dir", "dir"),
		Overlay: resolveString(cmd, opts.Overlay, "overlay", "overlay"),
	})
	if err != nil {
		return err
	}
	// Every violation is printed before the run fails; the checker is a
	// batch report tool, not first-error validation.
	for _, violation := range result.Violations {
		fmt.Println(violation.String())
	}
	if !result.OK() {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("consistency check failed with %d violation(s)", len(result.Violations)))
	}
	fmt.Printf("ok: %d source file(s) checked\n", result.Files)
	return nil
}

func newAppService() app.Service {
	return app.NewService()
}
