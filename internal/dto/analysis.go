package dto

import "panelscan/internal/model"

// UploadAccepted is the response body for a queued upload.
type UploadAccepted struct {
	ID     string               `json:"id"`
	Status model.AnalysisStatus `json:"status"`
}

// AnalysisList is the response payload for the recent-analyses listing.
type AnalysisList struct {
	Analyses []model.Analysis `json:"analyses"`
	Length   int              `json:"length"`
}

// CategoryCount is one row of the stored-sample statistics.
type CategoryCount struct {
	Category model.Category `json:"category"`
	Label    string         `json:"label"`
	Count    int            `json:"count"`
}

// Health reports liveness of the processing pipeline.
type Health struct {
	Status     string `json:"status"`
	QueueDepth int    `json:"queueDepth"`
	Clients    int    `json:"clients"`
}
