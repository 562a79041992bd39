package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Keymap is the layer/combo document produced by the external renderer's
// parse step and consumed by its draw step. Layout is carried through
// untouched; this tool never interprets physical key geometry from it.
type Keymap struct {
	Layout map[string]any `yaml:"layout,omitempty"`
	Layers Layers         `yaml:"layers"`
	Combos []Combo        `yaml:"combos,omitempty"`
}

// Layers is an insertion-ordered mapping of layer name to key legends.
// Order matters: it is the order the renderer draws layers in and the
// order `layers` lists them for the user.
type Layers struct {
	names []string
	keys  map[string][]KeyLegend
}

func NewLayers() Layers {
	return Layers{keys: map[string][]KeyLegend{}}
}

func (l Layers) Names() []string {
	return append([]string(nil), l.names...)
}

func (l Layers) Len() int {
	return len(l.names)
}

func (l Layers) Get(name string) ([]KeyLegend, bool) {
	keys, ok := l.keys[name]
	return keys, ok
}

func (l *Layers) Set(name string, keys []KeyLegend) {
	if l.keys == nil {
		l.keys = map[string][]KeyLegend{}
	}
	if _, ok := l.keys[name]; !ok {
		l.names = append(l.names, name)
	}
	l.keys[name] = keys
}

func (l *Layers) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("layers must be a mapping, got %s", nodeKindName(node.Kind))
	}
	l.names = nil
	l.keys = map[string][]KeyLegend{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		var keys []KeyLegend
		if err := node.Content[i+1].Decode(&keys); err != nil {
			return fmt.Errorf("layer %s: %w", name, err)
		}
		l.Set(name, keys)
	}
	return nil
}

func (l Layers) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, name := range l.names {
		keyNode := &yaml.Node{}
		if err := keyNode.Encode(l.keys[name]); err != nil {
			return nil, err
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			keyNode,
		)
	}
	return node, nil
}

// KeyLegend is one key cell: either a bare scalar (tap legend only) or a
// mapping carrying shifted/hold legends and display metadata. The four
// corner fields are auxiliary: the renderer does not understand them and
// they must be stripped before it draws the document.
type KeyLegend struct {
	Tap     string
	Shifted string
	Hold    string
	Type    string

	TL string
	TR string
	BL string
	BR string
}

// keyLegendDoc fixes the field order of marshalled mapping cells.
type keyLegendDoc struct {
	Tap     string `yaml:"t,omitempty"`
	Shifted string `yaml:"s,omitempty"`
	Hold    string `yaml:"h,omitempty"`
	Type    string `yaml:"type,omitempty"`
	TL      string `yaml:"tl,omitempty"`
	TR      string `yaml:"tr,omitempty"`
	BL      string `yaml:"bl,omitempty"`
	BR      string `yaml:"br,omitempty"`
}

func (k *KeyLegend) UnmarshalYAML(node *yaml.Node) error {
	*k = KeyLegend{}
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil
		}
		// Value, not Decode: plain numeric legends carry an !!int tag.
		k.Tap = node.Value
		return nil
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			field := node.Content[i].Value
			value := node.Content[i+1]
			if value.Kind != yaml.ScalarNode {
				return fmt.Errorf("key field %s must be a scalar", field)
			}
			text := value.Value
			if value.Tag == "!!null" {
				text = ""
			}
			switch field {
			case "t", "tap":
				k.Tap = text
			case "s":
				k.Shifted = text
			case "h":
				k.Hold = text
			case "type":
				k.Type = text
			case "tl":
				k.TL = text
			case "tr":
				k.TR = text
			case "bl":
				k.BL = text
			case "br":
				k.BR = text
			}
		}
		return nil
	default:
		return fmt.Errorf("key legend must be a scalar or mapping, got %s", nodeKindName(node.Kind))
	}
}

func (k KeyLegend) MarshalYAML() (any, error) {
	if k.tapOnly() {
		return k.Tap, nil
	}
	return keyLegendDoc{
		Tap:     k.Tap,
		Shifted: k.Shifted,
		Hold:    k.Hold,
		Type:    k.Type,
		TL:      k.TL,
		TR:      k.TR,
		BL:      k.BL,
		BR:      k.BR,
	}, nil
}

func (k KeyLegend) tapOnly() bool {
	return k.Shifted == "" && k.Hold == "" && k.Type == "" && !k.HasCorners()
}

func (k KeyLegend) IsEmpty() bool {
	return k.Tap == "" && k.tapOnly()
}

func (k KeyLegend) HasCorners() bool {
	return k.TL != "" || k.TR != "" || k.BL != "" || k.BR != ""
}

// Corner returns the auxiliary legend stored for the given corner.
func (k KeyLegend) Corner(corner Corner) string {
	switch corner {
	case CornerTL:
		return k.TL
	case CornerTR:
		return k.TR
	case CornerBL:
		return k.BL
	case CornerBR:
		return k.BR
	}
	return ""
}

// SetCorner stores an auxiliary legend for the given corner.
func (k *KeyLegend) SetCorner(corner Corner, value string) {
	switch corner {
	case CornerTL:
		k.TL = value
	case CornerTR:
		k.TR = value
	case CornerBL:
		k.BL = value
	case CornerBR:
		k.BR = value
	}
}

// StripCorners returns a copy without the auxiliary corner fields.
func (k KeyLegend) StripCorners() KeyLegend {
	k.TL, k.TR, k.BL, k.BR = "", "", "", ""
	return k
}

// TapLegend is the value a corner slot shows for this key: the tap
// legend, with transparent keys treated as blank.
func (k KeyLegend) TapLegend() string {
	if k.Type == "trans" {
		return ""
	}
	return k.Tap
}

// CenterLegend keeps the full display set (tap/shifted/hold/type) and
// drops everything else; transparent keys collapse to blank.
func (k KeyLegend) CenterLegend() KeyLegend {
	if k.Type == "trans" {
		return KeyLegend{}
	}
	return KeyLegend{Tap: k.Tap, Shifted: k.Shifted, Hold: k.Hold, Type: k.Type}
}

// Combo is one chorded binding as the renderer represents it.
type Combo struct {
	KeyPositions []int     `yaml:"p"`
	Key          KeyLegend `yaml:"k"`
	Layers       []string  `yaml:"l,omitempty"`
	Align        string    `yaml:"align,omitempty"`
	Offset       float64   `yaml:"o,omitempty"`
}

// ActiveOn reports whether the combo fires on the named layer. An empty
// layer list means the combo is active everywhere.
func (c Combo) ActiveOn(layer string) bool {
	if len(c.Layers) == 0 {
		return true
	}
	for _, name := range c.Layers {
		if name == layer {
			return true
		}
	}
	return false
}

func nodeKindName(kind yaml.Kind) string {
	switch kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}
