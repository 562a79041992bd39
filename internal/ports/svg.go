package ports

// SVGPort reads and writes rendered SVG documents.
type SVGPort interface {
	Read(path string) (string, error)
	Write(path string, content string) error
}
