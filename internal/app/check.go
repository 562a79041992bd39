package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"keymap-tools/internal/core"
)

// Check scans one configuration directory and runs every consistency
// check, aggregating all violations instead of stopping at the first.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	dir := strings.TrimSpace(req.Dir)
	if dir == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("configuration directory is required")
	}
	overlay := strings.TrimSpace(req.Overlay)
	if overlay == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("overlay layer name is required")
	}

	files, err := s.Sources.Scan(dir)
	if err != nil {
		return CheckResult{}, err
	}
	if len(files) == 0 {
		// A directory with no sources is a soft condition, not an
		// error; the build pipeline may run the checker before the
		// configuration exists.
		log.Ctx(ctx).Warn().Str("dir", dir).Msg("no keymap sources found")
		return CheckResult{}, nil
	}

	records := core.NewScanner().ScanAll(files)
	checker := core.NewConsistencyChecker(overlay)
	result := checker.Check(ctx, records)

	log.Ctx(ctx).Debug().
		Int("files", len(files)).
		Int("records", len(records)).
		Int("violations", len(result.Violations)).
		Msg("consistency check complete")
	return CheckResult{Files: len(files), Violations: result.Violations}, nil
}
