package core

import (
	"regexp"
	"strconv"
	"strings"

	"keymap-tools/internal/types"
)

// Scanner extracts typed declaration records from keymap source text.
// The consistency checks operate on records only, so every assumption
// about the dialect's token grammar is confined to this file.
type Scanner struct{}

func NewScanner() Scanner {
	return Scanner{}
}

var (
	comboPattern  = regexp.MustCompile(`\bCOMBO\s*\(\s*([A-Za-z_][A-Za-z0-9_]*)`)
	layerPattern  = regexp.MustCompile(`\bLAYER\s*\(\s*([a-z_][a-z0-9_]*)`)
	definePattern = regexp.MustCompile(`^\s*DEFINE\s+([A-Z_][A-Z0-9_]*)\s+(\d+)\s*$`)
)

// Scan emits records for every combo, layer, and index-constant
// declaration in one source file, in file order. Declarations on
// commented-out lines are never emitted.
func (s Scanner) Scan(file types.SourceFile) []types.Record {
	var records []types.Record
	inBlockComment := false
	for num, raw := range strings.Split(file.Content, "\n") {
		line, stillInBlock := stripComments(raw, inBlockComment)
		inBlockComment = stillInBlock
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNo := num + 1
		for _, match := range comboPattern.FindAllStringSubmatch(line, -1) {
			records = append(records, types.Record{
				Kind: types.RecordCombo,
				Name: match[1],
				File: file.Path,
				Line: lineNo,
			})
		}
		for _, match := range layerPattern.FindAllStringSubmatch(line, -1) {
			records = append(records, types.Record{
				Kind: types.RecordLayer,
				Name: match[1],
				File: file.Path,
				Line: lineNo,
			})
		}
		if match := definePattern.FindStringSubmatch(line); match != nil {
			value, err := strconv.Atoi(match[2])
			if err != nil {
				continue
			}
			records = append(records, types.Record{
				Kind:  types.RecordDefine,
				Name:  match[1],
				Value: value,
				File:  file.Path,
				Line:  lineNo,
			})
		}
	}
	return records
}

// ScanAll scans files in order and concatenates their records.
func (s Scanner) ScanAll(files []types.SourceFile) []types.Record {
	var records []types.Record
	for _, file := range files {
		records = append(records, s.Scan(file)...)
	}
	return records
}

// stripComments blanks out // line comments and /* */ block comment
// interiors, returning the remaining code text and whether a block
// comment continues onto the next line.
func stripComments(line string, inBlock bool) (string, bool) {
	var out strings.Builder
	i := 0
	for i < len(line) {
		if inBlock {
			end := strings.Index(line[i:], "*/")
			if end < 0 {
				return out.String(), true
			}
			i += end + 2
			inBlock = false
			continue
		}
		if strings.HasPrefix(line[i:], "//") {
			return out.String(), false
		}
		if strings.HasPrefix(line[i:], "/*") {
			inBlock = true
			i += 2
			continue
		}
		out.WriteByte(line[i])
		i++
	}
	return out.String(), inBlock
}
