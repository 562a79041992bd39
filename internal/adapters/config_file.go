package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"keymap-tools/internal/types"
)

type ThemesFileAdapter struct{}

func NewThemesFileAdapter() ThemesFileAdapter {
	return ThemesFileAdapter{}
}

func (a ThemesFileAdapter) Load(path string) (types.ThemesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.ThemesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("themes file not found").
			WithCause(err)
	}
	var themes types.ThemesFile
	if err := yaml.Unmarshal(data, &themes); err != nil {
		return types.ThemesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse themes yaml").
			WithCause(err)
	}
	if err := themes.Validate(); err != nil {
		return types.ThemesFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid themes document").
			WithCause(err)
	}
	return themes, nil
}

type MergeConfigFileAdapter struct{}

func NewMergeConfigFileAdapter() MergeConfigFileAdapter {
	return MergeConfigFileAdapter{}
}

// Load reads the merge configuration. An empty path or a missing file
// yields the zero config: merge settings are optional everywhere.
func (a MergeConfigFileAdapter) Load(path string) (types.MergeConfig, error) {
	if path == "" {
		return types.MergeConfig{}, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("merge config not found, using defaults")
			return types.MergeConfig{}, nil
		}
		return types.MergeConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read merge config").
			WithCause(err)
	}
	var config types.MergeConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return types.MergeConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse merge config yaml").
			WithCause(err)
	}
	if err := config.Validate(); err != nil {
		return types.MergeConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid merge config").
			WithCause(err)
	}
	return config, nil
}

type DrawConfigFileAdapter struct{}

func NewDrawConfigFileAdapter() DrawConfigFileAdapter {
	return DrawConfigFileAdapter{}
}

// drawConfigFile is the slice of the renderer's config file this tool
// cares about.
type drawConfigFile struct {
	DrawConfig types.DrawConfig `yaml:"draw_config"`
}

// Load reads key geometry from the renderer's config. An empty path or
// a missing file yields the renderer's defaults.
func (a DrawConfigFileAdapter) Load(path string) (types.DrawConfig, error) {
	defaults := types.DefaultDrawConfig()
	if path == "" {
		return defaults, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn().Str("path", path).Msg("draw config not found, using defaults")
			return defaults, nil
		}
		return types.DrawConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read draw config").
			WithCause(err)
	}
	var file drawConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return types.DrawConfig{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse draw config yaml").
			WithCause(err)
	}
	config := file.DrawConfig
	if config.KeyW == 0 {
		config.KeyW = defaults.KeyW
	}
	if config.KeyH == 0 {
		config.KeyH = defaults.KeyH
	}
	if config.SmallPad == 0 {
		config.SmallPad = defaults.SmallPad
	}
	return config, nil
}
