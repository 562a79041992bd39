package core

// minCornerPad keeps corner text clear of the key edge regardless of
// how small a padding the caller asks for; fonts need ~2px of air.
const minCornerPad = 2

// CornerOffsets computes the distance from a key's center to the
// anchor point of its corner legends, given the key geometry and the
// requested padding from the key edges.
func CornerOffsets(keyW, keyH, padX, padY float64) (int, int) {
	if padX < minCornerPad {
		padX = minCornerPad
	}
	if padY < minCornerPad {
		padY = minCornerPad
	}
	xOffset := int(keyW/2 - padX)
	yOffset := int(keyH/2 - padY)
	return xOffset, yOffset
}
