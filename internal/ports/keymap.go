package ports

import "keymap-tools/internal/types"

// KeymapPort reads and writes layer/combo documents.
type KeymapPort interface {
	Load(path string) (types.Keymap, error)
	Save(path string, keymap types.Keymap) error
}
