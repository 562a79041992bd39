package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

type SVGFileAdapter struct{}

func NewSVGFileAdapter() SVGFileAdapter {
	return SVGFileAdapter{}
}

func (a SVGFileAdapter) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("svg file not found").
			WithCause(err)
	}
	return string(data), nil
}

func (a SVGFileAdapter) Write(path string, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write svg file").
			WithCause(err)
	}
	return nil
}
