package types

// Corner identifies one of the four fixed legend positions in a
// composite diagram.
type Corner string

const (
	CornerTL Corner = "tl"
	CornerTR Corner = "tr"
	CornerBL Corner = "bl"
	CornerBR Corner = "br"
)

// Corners lists the four corners in drawing order.
var Corners = []Corner{CornerTL, CornerTR, CornerBL, CornerBR}

type RecordKind string

const (
	RecordCombo  RecordKind = "combo"
	RecordLayer  RecordKind = "layer"
	RecordDefine RecordKind = "define"
)

type CheckKind string

const (
	CheckDuplicateCombos CheckKind = "duplicate-combos"
	CheckLayerOrdering   CheckKind = "layer-ordering"
)

// ComboScope selects which layers a combo must be active on to survive
// a merge.
type ComboScope string

const (
	ComboScopeCenter ComboScope = "center"
	ComboScopeAny    ComboScope = "any"
)
