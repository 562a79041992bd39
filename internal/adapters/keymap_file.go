package adapters

import (
	"bytes"
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"keymap-tools/internal/types"
)

type KeymapFileAdapter struct{}

func NewKeymapFileAdapter() KeymapFileAdapter {
	return KeymapFileAdapter{}
}

func (a KeymapFileAdapter) Load(path string) (types.Keymap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Keymap{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("keymap file not found").
			WithCause(err)
	}
	var keymap types.Keymap
	if err := yaml.Unmarshal(data, &keymap); err != nil {
		return types.Keymap{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse keymap yaml").
			WithCause(err)
	}
	return keymap, nil
}

func (a KeymapFileAdapter) Save(path string, keymap types.Keymap) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(keymap); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode keymap yaml").
			WithCause(err)
	}
	if err := encoder.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode keymap yaml").
			WithCause(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write keymap yaml").
			WithCause(err)
	}
	return nil
}
