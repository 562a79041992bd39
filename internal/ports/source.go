package ports

import "keymap-tools/internal/types"

// SourceScannerPort discovers and reads the keymap source files of one
// configuration directory.
type SourceScannerPort interface {
	Scan(dir string) ([]types.SourceFile, error)
}
