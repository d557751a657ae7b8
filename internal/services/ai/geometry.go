package ai

import (
	"math"

	"panelscan/internal/model"
)

// MaxSide is the working resolution; larger images are downscaled
// so region thresholds stay stable.
const MaxSide = 1024

// workingScale returns the factor an image is downscaled by before
// detection so its longest side fits MaxSide. Images already within
// bounds keep scale 1.
func workingScale(cols, rows int) float64 {
	longest := cols
	if rows > longest {
		longest = rows
	}
	if longest <= MaxSide {
		return 1
	}
	return float64(MaxSide) / float64(longest)
}

// sourceBox maps a detection rectangle from the downscaled working
// image back to source-image pixels.
func sourceBox(x, y, width, height int, scale float64) model.BoundingBox {
	if scale <= 0 || scale >= 1 {
		return model.BoundingBox{X: x, Y: y, Width: width, Height: height}
	}
	return model.BoundingBox{
		X:      int(math.Round(float64(x) / scale)),
		Y:      int(math.Round(float64(y) / scale)),
		Width:  int(math.Round(float64(width) / scale)),
		Height: int(math.Round(float64(height) / scale)),
	}
}
