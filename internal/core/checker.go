package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"keymap-tools/internal/shared"
	"keymap-tools/internal/types"
)

// ConsistencyChecker runs the static checks over scanned declaration
// records. Both checks are read-only and aggregate every violation they
// find; callers decide what a non-empty result means for the process.
type ConsistencyChecker struct {
	// Overlay names the designated highest-priority layer. It must be
	// the last declared layer so it holds the maximum runtime index.
	Overlay string
}

func NewConsistencyChecker(overlay string) ConsistencyChecker {
	return ConsistencyChecker{Overlay: overlay}
}

// Check runs every check and merges the results.
func (c ConsistencyChecker) Check(ctx context.Context, records []types.Record) types.CheckResult {
	result := c.CheckDuplicateCombos(ctx, records)
	result.Merge(c.CheckLayerOrdering(ctx, records))
	return result
}

// CheckDuplicateCombos flags every combo name declared more than once.
// The firmware toolchain resolves duplicates by letting the later
// declaration silently override the earlier one, so every declaration
// site is reported, not just the extras.
func (c ConsistencyChecker) CheckDuplicateCombos(ctx context.Context, records []types.Record) types.CheckResult {
	var result types.CheckResult

	order := []string{}
	sites := map[string][]types.Record{}
	for _, record := range records {
		if record.Kind != types.RecordCombo {
			continue
		}
		if _, seen := sites[record.Name]; !seen {
			order = append(order, record.Name)
		}
		sites[record.Name] = append(sites[record.Name], record)
	}

	for _, name := range order {
		declared := sites[name]
		if len(declared) < 2 {
			continue
		}
		for _, site := range declared {
			result.Add(types.CheckDuplicateCombos, site.File, site.Line,
				"combo %q declared %d times; the last declaration silently wins", name, len(declared))
		}
	}

	log.Ctx(ctx).Debug().
		Int("combos", len(order)).
		Int("violations", len(result.Violations)).
		Msg("duplicate combo check complete")
	return result
}

// CheckLayerOrdering verifies that every layer's symbolic index constant
// equals its declaration position and that the overlay layer is declared
// last. A constant that disagrees with the true runtime position makes
// layer requests elsewhere in the source silently target the wrong
// layer, so all mismatches are reported with expected and found values.
func (c ConsistencyChecker) CheckLayerOrdering(ctx context.Context, records []types.Record) types.CheckResult {
	assert.NotEmpty(ctx, c.Overlay, "overlay layer name must be set")

	var result types.CheckResult

	var layers []types.Record
	defines := map[string]types.Record{}
	for _, record := range records {
		switch record.Kind {
		case types.RecordLayer:
			layers = append(layers, record)
		case types.RecordDefine:
			if _, seen := defines[record.Name]; !seen {
				defines[record.Name] = record
			}
		}
	}

	if len(layers) == 0 {
		// An empty or fragment-only source has nothing to order.
		log.Ctx(ctx).Warn().Msg("no layer declarations found, skipping ordering check")
		return result
	}

	for position, layer := range layers {
		constant := shared.ConstantName(layer.Name)
		define, ok := defines[constant]
		if !ok {
			result.Add(types.CheckLayerOrdering, layer.File, layer.Line,
				"layer %q has no %s index definition", layer.Name, constant)
			continue
		}
		if define.Value != position {
			result.Add(types.CheckLayerOrdering, define.File, define.Line,
				"layer %q index mismatch: expected %d, found %d", layer.Name, position, define.Value)
		}
	}

	last := layers[len(layers)-1]
	if last.Name != c.Overlay {
		result.Add(types.CheckLayerOrdering, last.File, last.Line,
			"overlay layer %q must be declared last, found %q in the last slot", c.Overlay, last.Name)
	}

	log.Ctx(ctx).Debug().
		Int("layers", len(layers)).
		Int("violations", len(result.Violations)).
		Msg("layer ordering check complete")
	return result
}
