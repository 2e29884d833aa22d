package layout

import "image"

// Inset shrinks rect by paddingPx on all sides. A padding larger than half the
// rectangle collapses it to an empty rectangle at its center.
func Inset(rect image.Rectangle, paddingPx int) image.Rectangle {
	rect = rect.Canon()
	if paddingPx <= 0 {
		return rect
	}
	padX := min(paddingPx, rect.Dx()/2)
	padY := min(paddingPx, rect.Dy()/2)
	return image.Rect(rect.Min.X+padX, rect.Min.Y+padY, rect.Max.X-padX, rect.Max.Y-padY)
}

// SplitHorizontal cuts rect into a top band of topHeightPx and the remainder.
// topHeightPx is clamped to [0, rect.Dy()].
func SplitHorizontal(rect image.Rectangle, topHeightPx int) (top, bottom image.Rectangle) {
	rect = rect.Canon()
	cut := rect.Min.Y + clamp(topHeightPx, 0, rect.Dy())
	top = image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, cut)
	bottom = image.Rect(rect.Min.X, cut, rect.Max.X, rect.Max.Y)
	return top, bottom
}

// SplitBottom cuts a band of bottomHeightPx off the bottom of rect.
func SplitBottom(rect image.Rectangle, bottomHeightPx int) (top, bottom image.Rectangle) {
	rect = rect.Canon()
	return SplitHorizontal(rect, rect.Dy()-clamp(bottomHeightPx, 0, rect.Dy()))
}

// AnchorBottomRight places a widthPx x heightPx rectangle in the bottom-right
// corner of rect, shrinking it to fit.
func AnchorBottomRight(rect image.Rectangle, widthPx, heightPx int) image.Rectangle {
	rect = rect.Canon()
	w := clamp(widthPx, 0, rect.Dx())
	h := clamp(heightPx, 0, rect.Dy())
	return image.Rect(rect.Max.X-w, rect.Max.Y-h, rect.Max.X, rect.Max.Y)
}

// FitSquare returns the largest square inside rect, bottom-right anchored.
func FitSquare(rect image.Rectangle) image.Rectangle {
	rect = rect.Canon()
	side := min(rect.Dx(), rect.Dy())
	return AnchorBottomRight(rect, side, side)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
