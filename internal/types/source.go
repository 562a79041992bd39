package types

// SourceFile is one keymap source file (the primary keymap or an
// included fragment) with its content read into memory.
type SourceFile struct {
	Path    string
	Content string
}
