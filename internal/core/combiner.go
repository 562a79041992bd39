package core

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/beevik/etree"
)

// AppendBelow stacks one rendered SVG underneath another: the addition
// is wrapped in a translated group, defs are merged without duplicating
// ids, and the viewBox grows to cover both documents.
func AppendBelow(baseSVG, additionSVG string) (string, error) {
	base := etree.NewDocument()
	if err := base.ReadFromString(baseSVG); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse base svg").
			WithCause(err)
	}
	addition := etree.NewDocument()
	if err := addition.ReadFromString(additionSVG); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse addition svg").
			WithCause(err)
	}

	baseRoot, additionRoot := base.Root(), addition.Root()
	if baseRoot == nil || additionRoot == nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("svg document has no root element")
	}

	baseBox, err := parseViewBox(baseRoot.SelectAttrValue("viewBox", ""))
	if err != nil {
		return "", err
	}
	additionBox, err := parseViewBox(additionRoot.SelectAttrValue("viewBox", ""))
	if err != nil {
		return "", err
	}

	group := baseRoot.CreateElement("g")
	group.CreateAttr("transform", fmt.Sprintf("translate(0,%s)", formatFloat(baseBox.h)))
	for _, child := range additionRoot.ChildElements() {
		if child.Tag == "defs" {
			continue
		}
		group.AddChild(child.Copy())
	}

	mergeDefs(baseRoot, additionRoot)

	width := baseBox.w
	if additionBox.w > width {
		width = additionBox.w
	}
	height := baseBox.h + additionBox.h
	baseRoot.CreateAttr("viewBox", fmt.Sprintf("%s %s %s %s",
		formatFloat(baseBox.x), formatFloat(baseBox.y), formatFloat(width), formatFloat(height)))
	baseRoot.CreateAttr("width", formatFloat(width))
	baseRoot.CreateAttr("height", formatFloat(height))

	return base.WriteToString()
}

// mergeDefs copies defs children from the addition into the base,
// skipping any id the base document already defines.
func mergeDefs(baseRoot, additionRoot *etree.Element) {
	additionDefs := additionRoot.FindElement("defs")
	if additionDefs == nil {
		return
	}
	baseDefs := baseRoot.FindElement("defs")
	if baseDefs == nil {
		baseDefs = baseRoot.CreateElement("defs")
	}
	for _, child := range additionDefs.ChildElements() {
		id := child.SelectAttrValue("id", "")
		if id != "" && baseRoot.FindElement("//*[@id='"+id+"']") != nil {
			continue
		}
		baseDefs.AddChild(child.Copy())
	}
}

type viewBox struct {
	x, y, w, h float64
}

func parseViewBox(value string) (viewBox, error) {
	fields := strings.Fields(value)
	if len(fields) != 4 {
		return viewBox{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("svg viewBox must have 4 fields, got %q", value))
	}
	var parsed [4]float64
	for i, field := range fields {
		number, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return viewBox{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid viewBox value %q", field)).
				WithCause(err)
		}
		parsed[i] = number
	}
	return viewBox{x: parsed[0], y: parsed[1], w: parsed[2], h: parsed[3]}, nil
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'g', -1, 64)
}
