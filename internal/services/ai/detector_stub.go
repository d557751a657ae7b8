//go:build !gocv
// +build !gocv

package ai

import (
	"errors"

	"panelscan/internal/logger"
	"panelscan/internal/model"
)

// DetectorService is the no-OpenCV stand-in used when the binary is
// built without the gocv tag.
type DetectorService struct {
	logger *logger.Logger
}

func NewDetectorService(logger *logger.Logger) *DetectorService {
	return &DetectorService{logger: logger}
}

// DetectPanel reports that the gocv build tag is not enabled.
func (s *DetectorService) DetectPanel(imageData []byte) ([]model.ClassificationSample, error) {
	_ = imageData
	return nil, errors.New("gocv build tag is not enabled")
}

// Annotate reports that the gocv build tag is not enabled.
func (s *DetectorService) Annotate(imageData []byte, samples []model.ClassificationSample) ([]byte, error) {
	_ = imageData
	_ = samples
	return nil, errors.New("gocv build tag is not enabled")
}
