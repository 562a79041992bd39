package app

import (
	"context"
	"os"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"keymap-tools/internal/core"
)

// Format reflows a keymap source file. With InPlace the file is
// rewritten; with Output the result goes to a separate file; otherwise
// the formatted text is returned for the caller to print.
func (s Service) Format(ctx context.Context, req FormatRequest) (FormatResult, error) {
	if strings.TrimSpace(req.Path) == "" {
		return FormatResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source file path is required")
	}
	data, err := os.ReadFile(req.Path)
	if err != nil {
		return FormatResult{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("source file not found").
			WithCause(err)
	}

	content := string(data)
	formatted := core.NewFormatter(req.Cols).Format(content)
	result := FormatResult{Formatted: formatted, Changed: formatted != content}

	switch {
	case req.InPlace:
		if err := os.WriteFile(req.Path, []byte(formatted), 0o644); err != nil {
			return FormatResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to rewrite source file").
				WithCause(err)
		}
		result.Output = req.Path
	case req.Output != "":
		if err := os.WriteFile(req.Output, []byte(formatted), 0o644); err != nil {
			return FormatResult{}, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to write formatted file").
				WithCause(err)
		}
		result.Output = req.Output
	}

	log.Ctx(ctx).Debug().Str("path", req.Path).Bool("changed", result.Changed).Msg("source formatted")
	return result, nil
}
