package core

import (
	"regexp"
	"strings"
)

// Formatter reflows keymap source text: layer binding grids are aligned
// to a file-wide column width, behavior-style macro blocks get one
// property per line, and everything else passes through untouched.
type Formatter struct {
	// Cols is the number of key columns per grid row. Split boards
	// conventionally use 10.
	Cols int
}

// DefaultFormatCols is the grid width used when none is requested.
const DefaultFormatCols = 10

func NewFormatter(cols int) Formatter {
	if cols <= 0 {
		cols = DefaultFormatCols
	}
	return Formatter{Cols: cols}
}

var (
	keyMacroPattern   = regexp.MustCompile(`DEFINE\s+([A-Z_][A-Z0-9_]*)\s+&`)
	layerOpenPattern  = regexp.MustCompile(`(?s)LAYER\s*\(\s*(\w+)\s*,(.+)\)`)
	macroBlockPattern = regexp.MustCompile(`(BEHAVIOR|HOLD_TAP|TAP_DANCE|MACRO)\s*\(\s*(\w+)\s*,`)
	nodeRefPattern    = regexp.MustCompile(`^&\w+\s*\{`)
	blankRunPattern   = regexp.MustCompile(`\n{3,}`)
)

type parsedLayer struct {
	startLine int
	endLine   int
	name      string
	bindings  []string
}

// Format reflows a whole source file.
func (f Formatter) Format(content string) string {
	keyMacros := extractKeyMacros(content)
	layers := collectLayers(content, keyMacros)

	// Grid columns align to the widest binding anywhere in the file so
	// all layers share one visual grid.
	globalWidth := 0
	for _, layer := range layers {
		for _, binding := range layer.bindings {
			if len(binding) > globalWidth {
				globalWidth = len(binding)
			}
		}
	}

	var result []string
	lines := strings.Split(content, "\n")
	layerIdx := 0
	i := 0
	for i < len(lines) {
		line := lines[i]
		stripped := strings.TrimSpace(line)

		// Backslash-continued DEFINE blocks pass through verbatim.
		if strings.HasPrefix(stripped, "DEFINE") && strings.HasSuffix(strings.TrimRight(line, " \t"), `\`) {
			for i < len(lines) && strings.HasSuffix(strings.TrimRight(lines[i], " \t"), `\`) {
				result = append(result, lines[i])
				i++
			}
			if i < len(lines) {
				result = append(result, lines[i])
				i++
			}
			continue
		}

		if strings.HasPrefix(stripped, "LAYER(") {
			if layerIdx < len(layers) {
				layer := layers[layerIdx]
				result = append(result, f.formatLayer(layer.name, layer.bindings, globalWidth))
				layerIdx++
				i = layer.endLine + 1
			} else {
				block, next := collectParenBlock(lines, i)
				if name, bindings, ok := parseLayer(block, keyMacros); ok {
					result = append(result, f.formatLayer(name, bindings, globalWidth))
				} else {
					result = append(result, block)
				}
				i = next
			}
			continue
		}

		if match := macroBlockPattern.FindStringSubmatch(stripped); match != nil && macroBlockPattern.FindStringIndex(stripped)[0] == 0 {
			block, next := collectParenBlock(lines, i)
			macroType, name := match[1], match[2]
			inner := extractMacroBody(block, macroType, name)
			if inner != "" {
				result = append(result, formatMacroBlock(macroType, name, inner))
			} else {
				result = append(result, block)
			}
			i = next
			continue
		}

		if nodeRefPattern.MatchString(stripped) {
			block, next := collectBraceBlock(lines, i)
			result = append(result, formatNode(block))
			i = next
			continue
		}

		result = append(result, line)
		i++
	}

	formatted := strings.Join(result, "\n")
	return blankRunPattern.ReplaceAllString(formatted, "\n\n")
}

// extractKeyMacros finds DEFINE macros that expand to a &binding and
// can therefore appear without a & prefix inside layer grids.
func extractKeyMacros(content string) map[string]struct{} {
	macros := map[string]struct{}{}
	for _, match := range keyMacroPattern.FindAllStringSubmatch(content, -1) {
		macros[match[1]] = struct{}{}
	}
	return macros
}

func collectLayers(content string, keyMacros map[string]struct{}) []parsedLayer {
	var layers []parsedLayer
	lines := strings.Split(content, "\n")
	i := 0
	for i < len(lines) {
		line := lines[i]
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "DEFINE") && strings.HasSuffix(strings.TrimRight(line, " \t"), `\`) {
			for i < len(lines) && strings.HasSuffix(strings.TrimRight(lines[i], " \t"), `\`) {
				i++
			}
			i++
			continue
		}

		if strings.HasPrefix(stripped, "LAYER(") {
			start := i
			block, next := collectParenBlock(lines, i)
			if name, bindings, ok := parseLayer(block, keyMacros); ok {
				layers = append(layers, parsedLayer{
					startLine: start,
					endLine:   next - 1,
					name:      name,
					bindings:  bindings,
				})
			}
			i = next
			continue
		}

		i++
	}
	return layers
}

// collectParenBlock gathers lines from start until parentheses balance,
// returning the joined block and the index after it.
func collectParenBlock(lines []string, start int) (string, int) {
	block := lines[start]
	depth := strings.Count(block, "(") - strings.Count(block, ")")
	i := start
	for depth > 0 && i+1 < len(lines) {
		i++
		block += "\n" + lines[i]
		depth += strings.Count(lines[i], "(") - strings.Count(lines[i], ")")
	}
	return block, i + 1
}

func collectBraceBlock(lines []string, start int) (string, int) {
	block := lines[start]
	depth := strings.Count(block, "{") - strings.Count(block, "}")
	i := start
	for depth > 0 && i+1 < len(lines) {
		i++
		block += "\n" + lines[i]
		depth += strings.Count(lines[i], "{") - strings.Count(lines[i], "}")
	}
	return block, i + 1
}

// parseLayer splits a LAYER block into its name and individual
// bindings. Bindings start at a & (outside parentheses) or at a known
// key macro name.
func parseLayer(block string, keyMacros map[string]struct{}) (string, []string, bool) {
	match := layerOpenPattern.FindStringSubmatch(block)
	if match == nil {
		return "", nil, false
	}
	name := match[1]
	body := strings.TrimSpace(match[2])

	var bindings []string
	var current strings.Builder
	flush := func() {
		if text := strings.TrimSpace(current.String()); text != "" {
			bindings = append(bindings, text)
		}
		current.Reset()
	}

	depth := 0
	i := 0
	for i < len(body) {
		ch := body[i]
		switch {
		case ch == '(':
			depth++
			current.WriteByte(ch)
			i++
		case ch == ')':
			depth--
			current.WriteByte(ch)
			i++
		case ch == '&' && depth == 0:
			flush()
			current.WriteByte(ch)
			i++
		case depth == 0:
			if macro, length := macroAt(body, i, keyMacros); macro != "" {
				flush()
				current.WriteString(macro)
				i += length
			} else {
				current.WriteByte(ch)
				i++
			}
		default:
			current.WriteByte(ch)
			i++
		}
	}
	flush()
	return name, bindings, true
}

// macroAt reports a known key macro starting at position i, requiring a
// whitespace or end-of-body boundary after it.
func macroAt(body string, i int, keyMacros map[string]struct{}) (string, int) {
	for macro := range keyMacros {
		if !strings.HasPrefix(body[i:], macro) {
			continue
		}
		end := i + len(macro)
		if end >= len(body) {
			return macro, len(macro)
		}
		switch body[end] {
		case ' ', '\t', '\n':
			return macro, len(macro)
		}
	}
	return "", 0
}

// formatLayer lays bindings out in a grid. A trailing row shorter than
// the column count is a thumb row and indents to the third column.
func (f Formatter) formatLayer(name string, bindings []string, width int) string {
	if width == 0 {
		for _, binding := range bindings {
			if len(binding) > width {
				width = len(binding)
			}
		}
	}

	var rows [][]string
	for start := 0; start < len(bindings); start += f.Cols {
		end := start + f.Cols
		if end > len(bindings) {
			end = len(bindings)
		}
		rows = append(rows, bindings[start:end])
	}

	var formatted []string
	for _, row := range rows {
		indent := "    "
		if len(row) < f.Cols {
			indent = strings.Repeat(" ", 4+3*(width+1))
		}
		cells := make([]string, len(row))
		for j, binding := range row {
			if j == len(row)-1 {
				cells[j] = binding
			} else {
				cells[j] = padRight(binding, width)
			}
		}
		formatted = append(formatted, indent+strings.Join(cells, " "))
	}

	return "LAYER(" + name + ",\n" + strings.Join(formatted, "\n") + "\n)"
}

func extractMacroBody(block, macroType, name string) string {
	pattern := regexp.MustCompile(`(?s)` + macroType + `\s*\(\s*` + name + `\s*,(.+)\)`)
	match := pattern.FindStringSubmatch(block)
	if match == nil {
		return ""
	}
	return strings.TrimSpace(match[1])
}

// formatMacroBlock rewrites a behavior-style macro with one property
// per line. For BEHAVIOR the first argument is the behavior kind and
// stays on the opening line.
func formatMacroBlock(macroType, name, content string) string {
	behaviorKind := ""
	if macroType == "BEHAVIOR" {
		if cut := topLevelComma(content); cut >= 0 {
			behaviorKind = strings.TrimSpace(content[:cut])
			content = strings.TrimSpace(content[cut+1:])
		}
	}

	properties := splitProperties(content)
	if len(properties) == 0 && behaviorKind == "" {
		return macroType + "(" + name + ", " + content + ")"
	}

	normalized := make([]string, len(properties))
	for i, property := range properties {
		parts := strings.Split(property, "\n")
		for j, part := range parts {
			parts[j] = strings.TrimSpace(part)
		}
		normalized[i] = strings.Join(parts, "\n    ")
	}

	var body strings.Builder
	for _, property := range normalized {
		body.WriteString("    " + property + "\n")
	}

	if behaviorKind != "" {
		return macroType + "(" + name + ", " + behaviorKind + ",\n" + body.String() + ")"
	}
	return macroType + "(" + name + ",\n" + body.String() + ")"
}

// topLevelComma finds the first comma outside <> and () nesting.
func topLevelComma(content string) int {
	depth := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '<', '(':
			depth++
		case '>', ')':
			depth--
		case ',':
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// splitProperties splits on semicolons at bracket depth 0, keeping //
// comments attached to the property they follow.
func splitProperties(content string) []string {
	var properties []string
	var current strings.Builder
	angleDepth, parenDepth := 0, 0
	inComment := false

	i := 0
	for i < len(content) {
		ch := content[i]

		if !inComment && ch == '/' && i+1 < len(content) && content[i+1] == '/' {
			inComment = true
			current.WriteByte(ch)
			i++
			continue
		}
		if inComment {
			if ch == '\n' {
				inComment = false
			}
			current.WriteByte(ch)
			i++
			continue
		}

		switch ch {
		case '<':
			angleDepth++
		case '>':
			angleDepth--
		case '(':
			parenDepth++
		case ')':
			parenDepth--
		case ';':
			if angleDepth == 0 && parenDepth == 0 {
				if text := strings.TrimSpace(current.String()); text != "" {
					properties = append(properties, text+";")
				}
				current.Reset()
				i++
				continue
			}
		}
		current.WriteByte(ch)
		i++
	}

	if text := strings.TrimSpace(current.String()); text != "" {
		if !strings.HasPrefix(text, "//") && !strings.HasSuffix(text, ";") {
			text += ";"
		}
		properties = append(properties, text)
	}
	return properties
}

// formatNode trims trailing whitespace inside a devicetree node block
// but otherwise leaves its indentation alone, so inline comments keep
// their alignment.
func formatNode(block string) string {
	lines := strings.Split(block, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func padRight(text string, width int) string {
	if len(text) >= width {
		return text
	}
	return text + strings.Repeat(" ", width-len(text))
}
