package model

import "fmt"

// Severity rates how urgent a finding is.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityLow:    0,
	SeverityMedium: 1,
	SeverityHigh:   2,
}

// Rank returns the ordinal position of the severity (low < medium < high).
func (s Severity) Rank() int {
	return severityRank[s]
}

// BoundingBox locates a detection inside the source image, in pixels.
type BoundingBox struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ClassificationSample is one detected region. Samples are read-only
// after creation; nothing in the service mutates them in place.
type ClassificationSample struct {
	Category    Category    `json:"category"`
	Confidence  float64     `json:"confidence"`
	Box         BoundingBox `json:"box"`
	Description string      `json:"description"`
	Severity    Severity    `json:"severity"`
}

// Validate checks the sample invariants.
func (s ClassificationSample) Validate() error {
	if _, ok := CategoryLabels[s.Category]; !ok {
		return fmt.Errorf("unknown category: %q", s.Category)
	}
	if s.Confidence < 0 || s.Confidence > 1 {
		return fmt.Errorf("confidence out of range: %f", s.Confidence)
	}
	if s.Box.X < 0 || s.Box.Y < 0 {
		return fmt.Errorf("bounding box origin is negative: (%d, %d)", s.Box.X, s.Box.Y)
	}
	if s.Box.Width <= 0 || s.Box.Height <= 0 {
		return fmt.Errorf("bounding box has no area: %dx%d", s.Box.Width, s.Box.Height)
	}
	if s.Description == "" {
		return fmt.Errorf("description is empty")
	}
	if _, ok := severityRank[s.Severity]; !ok {
		return fmt.Errorf("unknown severity: %q", s.Severity)
	}
	return nil
}
