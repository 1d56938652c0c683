package frames

import "math"

// Bounds is the terminal area frames are fitted into when no explicit size
// is requested. A zero value means the area is unknown.
type Bounds struct {
	Columns int
	Rows    int
}

func (b Bounds) known() bool {
	return b.Columns > 0 && b.Rows > 0
}

// Dimensions computes the frame size in terminal cells for a source of
// srcWidth x srcHeight pixels. ratio is the height-to-width ratio of one
// terminal cell and corrects for non-square cells.
//
//   - KeepSize keeps the source size.
//   - Width and Height both set are used as given.
//   - Only one set derives the other from the source aspect.
//   - Neither set fits the source into bounds, or falls back to the source
//     width with the height divided by ratio.
//
// Neither dimension drops below 1.
func Dimensions(req Request, srcWidth, srcHeight int, bounds Bounds) (int, int) {
	if srcWidth <= 0 || srcHeight <= 0 {
		srcWidth, srcHeight = 1, 1
	}
	if req.KeepSize {
		return srcWidth, srcHeight
	}
	ratio := float64(req.Ratio)
	if ratio <= 0 {
		ratio = 1
	}
	aspect := float64(srcWidth) / float64(srcHeight)

	switch {
	case req.Width > 0 && req.Height > 0:
		return int(req.Width), int(req.Height)
	case req.Width > 0:
		w := int(req.Width)
		return w, atLeastOne(float64(w) / aspect / ratio)
	case req.Height > 0:
		h := int(req.Height)
		return atLeastOne(float64(h) * aspect * ratio), h
	case bounds.known():
		w := bounds.Columns
		h := atLeastOne(float64(w) / aspect / ratio)
		if h > bounds.Rows {
			h = bounds.Rows
			w = atLeastOne(float64(h) * aspect * ratio)
		}
		return max(w, 1), max(h, 1)
	default:
		return srcWidth, atLeastOne(float64(srcHeight) / ratio)
	}
}

func atLeastOne(v float64) int {
	n := int(math.Round(v))
	if n < 1 {
		return 1
	}
	return n
}
