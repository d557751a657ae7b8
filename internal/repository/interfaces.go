package repository

import "panelscan/internal/model"

// AnalysisRepository defines the interface for analysis data operations.
type AnalysisRepository interface {
	// Create operations
	Insert(a *model.Analysis) error

	// Lifecycle operations
	UpdateStatus(id string, status model.AnalysisStatus) error
	Complete(id string, annotatedPath string, samples []model.ClassificationSample) error

	// Read operations
	GetByID(id string) (*model.Analysis, error)
	GetRecent(limit int) ([]model.Analysis, error)
	CountByCategory() (map[model.Category]int, error)

	// Delete operations
	Delete(id string) error
}
