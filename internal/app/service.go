package app

import (
	"os"

	"keymap-tools/internal/adapters"
	"keymap-tools/internal/ports"
)

type Service struct {
	Sources      ports.SourceScannerPort
	Keymaps      ports.KeymapPort
	Themes       ports.ThemesPort
	MergeConfigs ports.MergeConfigPort
	DrawConfigs  ports.DrawConfigPort
	SVGs         ports.SVGPort

	// Stale reports whether dst must be regenerated from src. It is a
	// plain function so tests can force regeneration deterministically;
	// the default compares file modification times.
	Stale func(src, dst string) bool
}

func NewService() Service {
	return Service{
		Sources:      adapters.NewSourceScanAdapter(),
		Keymaps:      adapters.NewKeymapFileAdapter(),
		Themes:       adapters.NewThemesFileAdapter(),
		MergeConfigs: adapters.NewMergeConfigFileAdapter(),
		DrawConfigs:  adapters.NewDrawConfigFileAdapter(),
		SVGs:         adapters.NewSVGFileAdapter(),
		Stale:        fileStale,
	}
}

// fileStale is the default freshness check: dst is stale when it does
// not exist or is older than src. This is an optimization only, never a
// correctness mechanism.
func fileStale(src, dst string) bool {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return true
	}
	dstInfo, err := os.Stat(dst)
	if err != nil {
		return true
	}
	return srcInfo.ModTime().After(dstInfo.ModTime())
}
