//go:build gocv
// +build gocv

package ai

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"panelscan/internal/logger"
	"panelscan/internal/model"
)

// MinRegionRatio is the smallest region area relative to the image
// that is reported as a finding.
const MinRegionRatio = 0.002

// DetectorService classifies panel regions with color/intensity
// heuristics: leaf-green, dust-beige and hard-shadow masks are
// segmented into bounding boxes and scored.
type DetectorService struct {
	logger *logger.Logger
}

func NewDetectorService(logger *logger.Logger) *DetectorService {
	return &DetectorService{logger: logger}
}

// DetectPanel analyses a panel image and returns classified regions.
// A panel with no anomaly regions yields a single normal sample.
func (s *DetectorService) DetectPanel(imageData []byte) ([]model.ClassificationSample, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return nil, fmt.Errorf("decoded image is empty")
	}

	srcCols, srcRows := mat.Cols(), mat.Rows()
	scale := workingScale(srcCols, srcRows)
	if scale < 1 {
		resized := gocv.NewMat()
		gocv.Resize(mat, &resized, image.Pt(int(float64(srcCols)*scale), int(float64(srcRows)*scale)), 0, 0, gocv.InterpolationArea)
		mat.Close()
		mat = resized
	}

	hsv := gocv.NewMat()
	defer hsv.Close()
	gocv.CvtColor(mat, &hsv, gocv.ColorBGRToHSV)

	var samples []model.ClassificationSample

	// Leaf obstruction: saturated green hues.
	leaves := maskRange(hsv, gocv.NewScalar(35, 60, 40, 0), gocv.NewScalar(85, 255, 255, 0))
	defer leaves.Close()
	samples = append(samples, s.regionsFrom(leaves, mat, scale, model.CategoryLeaves, "Green foliage region")...)

	// Dust buildup: desaturated warm tones, mid brightness.
	dust := maskRange(hsv, gocv.NewScalar(10, 20, 120, 0), gocv.NewScalar(35, 90, 220, 0))
	defer dust.Close()
	samples = append(samples, s.regionsFrom(dust, mat, scale, model.CategoryDust, "Low-saturation dust film")...)

	// Shadow: large dark regions regardless of hue.
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)
	shadow := gocv.NewMat()
	defer shadow.Close()
	gocv.Threshold(gray, &shadow, 55, 255, gocv.ThresholdBinaryInv)
	samples = append(samples, s.regionsFrom(shadow, mat, scale, model.CategoryShadow, "Dark shadow region")...)

	if len(samples) == 0 {
		samples = append(samples, model.ClassificationSample{
			Category:    model.CategoryNormal,
			Confidence:  0.95,
			Box:         model.BoundingBox{X: 0, Y: 0, Width: srcCols, Height: srcRows},
			Description: "No obstructions detected",
			Severity:    model.SeverityLow,
		})
	}

	s.logger.Info("Detected %d region(s)", len(samples))
	return samples, nil
}

// regionsFrom extracts contour bounding boxes from a binary mask and
// turns them into classified samples. Boxes are reported in
// source-image pixels even when detection ran on a downscaled copy.
func (s *DetectorService) regionsFrom(mask gocv.Mat, src gocv.Mat, scale float64, category model.Category, description string) []model.ClassificationSample {
	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	imageArea := src.Cols() * src.Rows()
	minArea := int(float64(imageArea) * MinRegionRatio)

	var samples []model.ClassificationSample
	for i := 0; i < contours.Size(); i++ {
		rect := gocv.BoundingRect(contours.At(i))
		area := rect.Dx() * rect.Dy()
		if area < minArea || rect.Dx() == 0 || rect.Dy() == 0 {
			continue
		}

		coverage := float64(area) / float64(imageArea)
		samples = append(samples, model.ClassificationSample{
			Category:    category,
			Confidence:  confidenceFor(mask, rect),
			Box:         sourceBox(rect.Min.X, rect.Min.Y, rect.Dx(), rect.Dy(), scale),
			Description: description,
			Severity:    severityFor(coverage),
		})
	}
	return samples
}

// Annotate draws labelled rectangles around the samples and returns a
// JPEG copy of the image.
func (s *DetectorService) Annotate(imageData []byte, samples []model.ClassificationSample) ([]byte, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	defer mat.Close()

	red := color.RGBA{R: 255, A: 255}
	for _, sample := range samples {
		rect := image.Rect(sample.Box.X, sample.Box.Y, sample.Box.X+sample.Box.Width, sample.Box.Y+sample.Box.Height)
		gocv.Rectangle(&mat, rect, red, 2)

		label := fmt.Sprintf("%s (%.2f)", sample.Category.Label(), sample.Confidence)
		gocv.PutText(&mat, label, image.Pt(sample.Box.X, sample.Box.Y-5), gocv.FontHersheySimplex, 0.5, red, 1)
	}

	buf, err := gocv.IMEncode(".jpg", mat)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	defer buf.Close()

	annotated := make([]byte, len(buf.GetBytes()))
	copy(annotated, buf.GetBytes())
	return annotated, nil
}

func maskRange(hsv gocv.Mat, lower, upper gocv.Scalar) gocv.Mat {
	lowerMat := gocv.NewMatFromScalar(lower, gocv.MatTypeCV8UC3)
	defer lowerMat.Close()
	upperMat := gocv.NewMatFromScalar(upper, gocv.MatTypeCV8UC3)
	defer upperMat.Close()

	mask := gocv.NewMat()
	gocv.InRange(hsv, lowerMat, upperMat, &mask)
	return mask
}

// confidenceFor scores a region by how densely the mask fills its
// bounding box, clamped to [0.5, 0.99].
func confidenceFor(mask gocv.Mat, rect image.Rectangle) float64 {
	region := mask.Region(rect)
	defer region.Close()

	total := rect.Dx() * rect.Dy()
	if total <= 0 {
		return 0.5
	}
	fill := float64(gocv.CountNonZero(region)) / float64(total)

	confidence := 0.5 + fill/2
	if confidence > 0.99 {
		confidence = 0.99
	}
	return confidence
}

func severityFor(coverage float64) model.Severity {
	switch {
	case coverage >= 0.25:
		return model.SeverityHigh
	case coverage >= 0.08:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
