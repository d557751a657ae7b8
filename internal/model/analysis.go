package model

import "time"

// AnalysisStatus tracks an uploaded image through the processing pipeline.
type AnalysisStatus string

const (
	StatusQueued     AnalysisStatus = "queued"
	StatusProcessing AnalysisStatus = "processing"
	StatusDone       AnalysisStatus = "done"
	StatusFailed     AnalysisStatus = "failed"
)

// Analysis represents one uploaded panel image and its findings.
type Analysis struct {
	ID            string                 `json:"id"`
	Filename      string                 `json:"filename"`
	FilePath      string                 `json:"filepath"`
	AnnotatedPath string                 `json:"annotatedPath,omitempty"`
	FileSize      int64                  `json:"filesize"`
	Status        AnalysisStatus         `json:"status"`
	CreatedAt     time.Time              `json:"createdAt"`
	Samples       []ClassificationSample `json:"samples"`
}
