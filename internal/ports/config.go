package ports

import "keymap-tools/internal/types"

// ThemesPort loads the themes document.
type ThemesPort interface {
	Load(path string) (types.ThemesFile, error)
}

// MergeConfigPort loads the merge configuration document. A missing
// file yields the zero config, not an error.
type MergeConfigPort interface {
	Load(path string) (types.MergeConfig, error)
}

// DrawConfigPort reads the external renderer's key geometry from its
// config file.
type DrawConfigPort interface {
	Load(path string) (types.DrawConfig, error)
}
