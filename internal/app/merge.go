package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"keymap-tools/internal/core"
	"keymap-tools/internal/types"
)

// Merge builds the composite multi-layer document. When the merged
// output is already newer than its input the step is skipped unless
// forced; the freshness check is injectable via Service.Stale.
func (s Service) Merge(ctx context.Context, req MergeRequest) (MergeResult, error) {
	if err := requirePaths(map[string]string{
		"input path":  req.Input,
		"output path": req.Output,
	}); err != nil {
		return MergeResult{}, err
	}
	if strings.TrimSpace(req.Center) == "" {
		return MergeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("center layer is required")
	}

	if !req.Force && !s.Stale(req.Input, req.Output) {
		log.Ctx(ctx).Debug().Str("output", req.Output).Msg("merged document up to date, skipping")
		return MergeResult{Output: req.Output, Skipped: true}, nil
	}

	keymap, err := s.Keymaps.Load(req.Input)
	if err != nil {
		return MergeResult{}, err
	}
	config, err := s.MergeConfigs.Load(req.MergeConfigPath)
	if err != nil {
		return MergeResult{}, err
	}

	scope := req.ComboScope
	if scope == "" {
		scope = types.ComboScopeCenter
	}

	merged, err := core.NewLayerMerger().Merge(ctx, keymap, req.Center, req.Corners, config, scope)
	if err != nil {
		return MergeResult{}, err
	}
	if err := s.Keymaps.Save(req.Output, merged); err != nil {
		return MergeResult{}, err
	}

	keys, _ := merged.Layers.Get(core.MergedLayerName)
	return MergeResult{Output: req.Output, Keys: len(keys)}, nil
}

// Strip writes a copy of a merged document without the auxiliary corner
// fields, suitable for handing to the external renderer.
func (s Service) Strip(ctx context.Context, req StripRequest) (StripResult, error) {
	if err := requirePaths(map[string]string{
		"input path":  req.Input,
		"output path": req.Output,
	}); err != nil {
		return StripResult{}, err
	}
	keymap, err := s.Keymaps.Load(req.Input)
	if err != nil {
		return StripResult{}, err
	}
	stripped := core.NewLayerMerger().Strip(keymap)
	if err := s.Keymaps.Save(req.Output, stripped); err != nil {
		return StripResult{}, err
	}
	log.Ctx(ctx).Debug().Str("output", req.Output).Msg("auxiliary corner fields stripped")
	return StripResult{Output: req.Output}, nil
}

// Layers lists a document's layer names in declaration order.
func (s Service) Layers(ctx context.Context, req LayersRequest) (LayersResult, error) {
	if strings.TrimSpace(req.Input) == "" {
		return LayersResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("input path is required")
	}
	keymap, err := s.Keymaps.Load(req.Input)
	if err != nil {
		return LayersResult{}, err
	}
	return LayersResult{Layers: keymap.Layers.Names()}, nil
}

func requirePaths(paths map[string]string) error {
	for name, value := range paths {
		if strings.TrimSpace(value) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(name + " is required")
		}
	}
	return nil
}
