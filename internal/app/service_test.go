package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keymap-tools/internal/core"
	"keymap-tools/internal/types"
)

func testService() Service {
	service := NewService()
	// Tests control freshness explicitly; mod-time granularity is too
	// coarse for files written in the same instant.
	service.Stale = func(src, dst string) bool { return true }
	return service
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const sampleKeymapYAML = `layout:
  qmk_keyboard: ferris/sweep
layers:
  base:
    - Q
    - {t: W, h: Ctrl}
  nav:
    - Home
    - Up
  sys:
    - Reset
    - Boot
combos:
  - p: [0, 1]
    k: Esc
    l: [base]
`

func TestCheckReportsViolations(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "board.keymap"), `DEFINE BASE 0
DEFINE SYS 2
LAYER(base, &kp A)
LAYER(sys, &kp B)
COMBO(esc, &kp ESC, 0 1)
COMBO(esc, &kp TAB, 2 3)
`)

	result, err := testService().Check(t.Context(), CheckRequest{Dir: dir, Overlay: "sys"})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Files)
	assert.False(t, result.OK())
	// Two duplicate combo sites plus one index mismatch.
	assert.Len(t, result.Violations, 3)
}

func TestCheckCleanConfiguration(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "board.keymap"), `DEFINE BASE 0
DEFINE SYS 1
LAYER(base, &kp A)
LAYER(sys, &kp B)
`)

	result, err := testService().Check(t.Context(), CheckRequest{Dir: dir, Overlay: "sys"})
	require.NoError(t, err)
	assert.True(t, result.OK())
}

func TestCheckEmptyDirectoryIsSoft(t *testing.T) {
	result, err := testService().Check(t.Context(), CheckRequest{Dir: t.TempDir(), Overlay: "sys"})
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Zero(t, result.Files)
}

func TestCheckValidation(t *testing.T) {
	service := testService()

	_, err := service.Check(t.Context(), CheckRequest{Overlay: "sys"})
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Check(t.Context(), CheckRequest{Dir: t.TempDir()})
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Check(t.Context(), CheckRequest{Dir: "/definitely/not/here", Overlay: "sys"})
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestMergeWritesMergedDocument(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "keymap.yaml")
	output := filepath.Join(dir, "merged.yaml")
	writeTestFile(t, input, sampleKeymapYAML)

	result, err := testService().Merge(t.Context(), MergeRequest{
		Input:   input,
		Output:  output,
		Center:  "base",
		Corners: types.CornerAssignments{TR: "nav"},
	})
	require.NoError(t, err)
	assert.Equal(t, output, result.Output)
	assert.Equal(t, 2, result.Keys)
	assert.False(t, result.Skipped)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "merged:")
	assert.Contains(t, text, "tr: Home")
	assert.NotContains(t, text, "nav:")
}

func TestMergeSkipsFreshOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "keymap.yaml")
	output := filepath.Join(dir, "merged.yaml")
	writeTestFile(t, input, sampleKeymapYAML)

	service := testService()
	service.Stale = func(src, dst string) bool { return false }

	result, err := service.Merge(t.Context(), MergeRequest{
		Input: input, Output: output, Center: "base",
	})
	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.NoFileExists(t, output)

	// Force overrides the freshness check.
	result, err = service.Merge(t.Context(), MergeRequest{
		Input: input, Output: output, Center: "base", Force: true,
	})
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.FileExists(t, output)
}

func TestMergeValidation(t *testing.T) {
	service := testService()
	dir := t.TempDir()
	input := filepath.Join(dir, "keymap.yaml")
	writeTestFile(t, input, sampleKeymapYAML)

	_, err := service.Merge(t.Context(), MergeRequest{Output: "out.yaml", Center: "base"})
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Merge(t.Context(), MergeRequest{Input: input, Output: filepath.Join(dir, "out.yaml")})
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))

	_, err = service.Merge(t.Context(), MergeRequest{
		Input: input, Output: filepath.Join(dir, "out.yaml"), Center: "bogus",
	})
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestStripRemovesAuxiliaryFields(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "merged.yaml")
	output := filepath.Join(dir, "stripped.yaml")
	writeTestFile(t, input, `layers:
  merged:
    - {t: Q, tr: Home}
    - {t: W, h: Ctrl, br: Up}
`)

	_, err := testService().Strip(t.Context(), StripRequest{Input: input, Output: output})
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	text := string(data)
	assert.NotContains(t, text, "tr:")
	assert.NotContains(t, text, "br:")
	assert.Contains(t, text, "h: Ctrl")
	// Corner-only keys collapse back to plain scalars.
	assert.Contains(t, text, "- Q\n")
}

func TestLayersListsDeclarationOrder(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "keymap.yaml")
	writeTestFile(t, input, sampleKeymapYAML)

	result, err := testService().Layers(t.Context(), LayersRequest{Input: input})
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "nav", "sys"}, result.Layers)
}

func TestFormatInPlace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.keymap")
	writeTestFile(t, path, "LAYER(base,\n&kp Q     &kp W\n)")

	result, err := testService().Format(t.Context(), FormatRequest{
		Path: path, Cols: 2, InPlace: true,
	})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, path, result.Output)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "    &kp Q &kp W")
}

func TestFormatToStdout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.keymap")
	content := "LAYER(base,\n    &kp Q &kp W\n)"
	writeTestFile(t, path, content)

	result, err := testService().Format(t.Context(), FormatRequest{Path: path, Cols: 2})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Empty(t, result.Output)
	assert.Equal(t, content, result.Formatted)

	// Nothing written back without in-place or an output path.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))
}

const sampleSVG = `<svg viewBox="0 0 100 100">
<style>text { font-family: sans-serif; }</style>
<g class="key keypos-0"><text>Q</text></g>
<g class="key keypos-1"><text>W</text></g>
</svg>`

func TestInjectPatchesSVG(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "diagram.svg")
	mergedPath := filepath.Join(dir, "merged.yaml")
	writeTestFile(t, svgPath, sampleSVG)
	writeTestFile(t, mergedPath, `layers:
  merged:
    - {t: Q, tr: Home}
    - W
`)

	result, err := testService().Inject(t.Context(), InjectRequest{
		SVGPath:        svgPath,
		MergedYAMLPath: mergedPath,
		PadX:           10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Keys)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	patched := string(data)
	assert.Contains(t, patched, `class="tr">Home</text>`)
	assert.Contains(t, patched, "text.tr {")
}

func TestInjectGeometryMismatchLeavesFileUntouched(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "diagram.svg")
	mergedPath := filepath.Join(dir, "merged.yaml")
	writeTestFile(t, svgPath, sampleSVG)
	writeTestFile(t, mergedPath, `layers:
  merged:
    - {t: Q, tr: Home}
`)

	_, err := testService().Inject(t.Context(), InjectRequest{
		SVGPath:        svgPath,
		MergedYAMLPath: mergedPath,
		PadX:           10,
	})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Equal(t, sampleSVG, string(data))
}

func TestInjectFallsBackToSingleLayer(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "diagram.svg")
	mergedPath := filepath.Join(dir, "merged.yaml")
	writeTestFile(t, svgPath, sampleSVG)
	writeTestFile(t, mergedPath, `layers:
  combined:
    - {t: Q, bl: "1"}
    - W
`)

	result, err := testService().Inject(t.Context(), InjectRequest{
		SVGPath:        svgPath,
		MergedYAMLPath: mergedPath,
		PadX:           10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Keys)
}

func TestInjectSelectsNamedTheme(t *testing.T) {
	dir := t.TempDir()
	svgPath := filepath.Join(dir, "diagram.svg")
	mergedPath := filepath.Join(dir, "merged.yaml")
	themesPath := filepath.Join(dir, "themes.yaml")
	writeTestFile(t, svgPath, sampleSVG)
	writeTestFile(t, mergedPath, "layers:\n  merged:\n    - {t: Q, tl: X}\n    - W\n")
	writeTestFile(t, themesPath, `default: light
themes:
  light:
    colors: {tl: "#e5c07b", tr: "#61afef", bl: "#98c379", br: "#c678dd", text: "#000000", bg: "#ffffff"}
  dark:
    dark_mode: true
    colors: {tl: "#101010", tr: "#202020", bl: "#303030", br: "#404040", text: "#ffffff", bg: "#282c34"}
`)

	_, err := testService().Inject(t.Context(), InjectRequest{
		SVGPath:        svgPath,
		MergedYAMLPath: mergedPath,
		ThemesPath:     themesPath,
		ThemeName:      "dark",
		PadX:           10,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "#101010")
	assert.Contains(t, string(data), "#282c34")
}

func TestCombineStacksDocuments(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.svg")
	additionPath := filepath.Join(dir, "addition.svg")
	outputPath := filepath.Join(dir, "combined.svg")
	writeTestFile(t, basePath, `<svg viewBox="0 0 200 100"><g><text>Q</text></g></svg>`)
	writeTestFile(t, additionPath, `<svg viewBox="0 0 150 80"><g><text>W</text></g></svg>`)

	result, err := testService().Combine(t.Context(), CombineRequest{
		BasePath:     basePath,
		AdditionPath: additionPath,
		Output:       outputPath,
	})
	require.NoError(t, err)
	assert.Equal(t, outputPath, result.Output)

	data, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	combined := string(data)
	assert.Contains(t, combined, `viewBox="0 0 200 180"`)
	assert.Contains(t, combined, `translate(0,100)`)
	assert.True(t, strings.Contains(combined, "<text>Q</text>") && strings.Contains(combined, "<text>W</text>"))

	// The inputs are untouched when an output path is given.
	original, err := os.ReadFile(basePath)
	require.NoError(t, err)
	assert.NotContains(t, string(original), "translate")
}

func TestMergeStripInjectPipeline(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "keymap.yaml")
	mergedPath := filepath.Join(dir, "merged.yaml")
	strippedPath := filepath.Join(dir, "stripped.yaml")
	svgPath := filepath.Join(dir, "diagram.svg")
	writeTestFile(t, input, sampleKeymapYAML)
	writeTestFile(t, svgPath, sampleSVG)

	service := testService()

	mergeResult, err := service.Merge(t.Context(), MergeRequest{
		Input:   input,
		Output:  mergedPath,
		Center:  "base",
		Corners: types.CornerAssignments{TR: "nav", BR: "sys"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, mergeResult.Keys)

	_, err = service.Strip(t.Context(), StripRequest{Input: mergedPath, Output: strippedPath})
	require.NoError(t, err)

	stripped, err := service.Keymaps.Load(strippedPath)
	require.NoError(t, err)
	keys, ok := stripped.Layers.Get(core.MergedLayerName)
	require.True(t, ok)
	for _, key := range keys {
		assert.False(t, key.HasCorners())
	}

	injectResult, err := service.Inject(t.Context(), InjectRequest{
		SVGPath:        svgPath,
		MergedYAMLPath: mergedPath,
		PadX:           10,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, injectResult.Keys)

	data, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	patched := string(data)
	assert.Contains(t, patched, `class="tr">Home</text>`)
	assert.Contains(t, patched, `class="br">Reset</text>`)
}
