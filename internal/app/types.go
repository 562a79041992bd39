package app

import "keymap-tools/internal/types"

type CheckRequest struct {
	Dir     string
	Overlay string
}

type CheckResult struct {
	Files      int
	Violations []types.Violation
}

func (r CheckResult) OK() bool {
	return len(r.Violations) == 0
}

type LayersRequest struct {
	Input string
}

type LayersResult struct {
	Layers []string
}

type MergeRequest struct {
	Input           string
	Output          string
	Center          string
	Corners         types.CornerAssignments
	MergeConfigPath string
	ComboScope      types.ComboScope
	Force           bool
}

type MergeResult struct {
	Output  string
	Keys    int
	Skipped bool
}

type StripRequest struct {
	Input  string
	Output string
}

type StripResult struct {
	Output string
}

type InjectRequest struct {
	SVGPath         string
	MergedYAMLPath  string
	ThemesPath      string
	ThemeName       string
	MergeConfigPath string
	DrawConfigPath  string
	GlyphSVGPath    string
	PadX            float64
	PadY            float64
	PadYSet         bool
}

type InjectResult struct {
	SVGPath string
	Keys    int
}

type CombineRequest struct {
	BasePath     string
	AdditionPath string
	Output       string
}

type CombineResult struct {
	Output string
}

type FormatRequest struct {
	Path    string
	Cols    int
	InPlace bool
	Output  string
}

type FormatResult struct {
	Formatted string
	Output    string
	Changed   bool
}
