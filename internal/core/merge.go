package core

import (
	"context"
	"fmt"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"keymap-tools/internal/types"
)

// MergedLayerName is the name of the synthetic layer the merge step
// produces. The output document has exactly this one layer so the
// unmodified renderer can draw it like any single-layer keymap.
const MergedLayerName = "merged"

// LayerMerger stacks a center layer and up to four corner layers into
// one synthetic layer with multi-position legends.
type LayerMerger struct{}

func NewLayerMerger() LayerMerger {
	return LayerMerger{}
}

// Merge builds the composite document. Center legends are preserved in
// full; corner layers contribute tap legends only, stored on the
// auxiliary corner fields that the SVG injection pass reads later.
// Combos surviving the scope filter are re-pointed at the merged layer.
func (m LayerMerger) Merge(
	ctx context.Context,
	keymap types.Keymap,
	center string,
	corners types.CornerAssignments,
	config types.MergeConfig,
	scope types.ComboScope,
) (types.Keymap, error) {
	assert.NotEmpty(ctx, center, "center layer must be set")

	centerKeys, ok := keymap.Layers.Get(center)
	if !ok {
		return types.Keymap{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("center layer %q not found, available layers: %s",
				center, strings.Join(keymap.Layers.Names(), ", ")))
	}

	cornerKeys := map[types.Corner][]types.KeyLegend{}
	for _, corner := range corners.Assigned() {
		name := corners.Layer(corner)
		keys, ok := keymap.Layers.Get(name)
		if !ok {
			log.Ctx(ctx).Warn().
				Str("layer", name).
				Str("corner", string(corner)).
				Msg("corner layer not found, using empty legends")
			continue
		}
		cornerKeys[corner] = keys
	}

	merged := make([]types.KeyLegend, len(centerKeys))
	for i, centerKey := range centerKeys {
		cell := centerKey.CenterLegend()

		if corner, held := config.HeldKeyColors[i]; held {
			cell.Type = "held-" + string(corner)
			if legendHidden(config.HeldHide, cell.Shifted) {
				cell.Shifted = ""
			}
			if legendHidden(config.HeldHide, cell.Hold) {
				cell.Hold = ""
			}
		}

		for _, corner := range corners.Assigned() {
			if config.Hidden(corner, i) {
				continue
			}
			// A corner layer shorter than the center layer contributes
			// blank legends for the missing trailing positions.
			keys := cornerKeys[corner]
			if i >= len(keys) {
				continue
			}
			if tap := keys[i].TapLegend(); tap != "" {
				cell.SetCorner(corner, tap)
			}
		}

		merged[i] = cell
	}

	layers := types.NewLayers()
	layers.Set(MergedLayerName, merged)

	out := types.Keymap{
		Layout: keymap.Layout,
		Layers: layers,
		Combos: m.filterCombos(keymap.Combos, center, corners, scope),
	}

	log.Ctx(ctx).Debug().
		Str("center", center).
		Int("keys", len(merged)).
		Int("combos", len(out.Combos)).
		Msg("layers merged")
	return out, nil
}

// filterCombos keeps combos active on the center layer (or on any
// contributing layer when scope is any) and re-points them at the
// merged layer so the renderer positions them correctly.
func (m LayerMerger) filterCombos(
	combos []types.Combo,
	center string,
	corners types.CornerAssignments,
	scope types.ComboScope,
) []types.Combo {
	var kept []types.Combo
	for _, combo := range combos {
		active := combo.ActiveOn(center)
		if !active && scope == types.ComboScopeAny {
			for _, corner := range corners.Assigned() {
				if combo.ActiveOn(corners.Layer(corner)) {
					active = true
					break
				}
			}
		}
		if !active {
			continue
		}
		combo.Layers = []string{MergedLayerName}
		kept = append(kept, combo)
	}
	return kept
}

// Strip removes the auxiliary corner fields from every layer so the
// external renderer, which does not understand them, can draw the
// document. The unstripped document stays the authoritative input for
// the later corner injection pass.
func (m LayerMerger) Strip(keymap types.Keymap) types.Keymap {
	layers := types.NewLayers()
	for _, name := range keymap.Layers.Names() {
		keys, _ := keymap.Layers.Get(name)
		stripped := make([]types.KeyLegend, len(keys))
		for i, key := range keys {
			stripped[i] = key.StripCorners()
		}
		layers.Set(name, stripped)
	}
	return types.Keymap{
		Layout: keymap.Layout,
		Layers: layers,
		Combos: keymap.Combos,
	}
}

func legendHidden(hidden []string, value string) bool {
	if value == "" {
		return false
	}
	for _, candidate := range hidden {
		if candidate == value {
			return true
		}
	}
	return false
}
