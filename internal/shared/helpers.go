// Package shared provides common utility functions used across multiple
// packages in the keymap-tools codebase.
package shared

import "strings"

// ConstantName maps a layer's lowercase declaration name to the
// uppercase symbolic constant the source uses for its index.
func ConstantName(layer string) string {
	return strings.ToUpper(strings.TrimSpace(layer))
}

// EscapeXML escapes the five XML special characters for injection into
// SVG text content and attribute values.
func EscapeXML(text string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#x27;",
	)
	return replacer.Replace(text)
}
