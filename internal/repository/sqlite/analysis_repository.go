package sqlite

import (
	"database/sql"
	"fmt"

	"panelscan/internal/model"
	"panelscan/internal/repository"
)

// AnalysisRepository implements repository.AnalysisRepository for SQLite.
type AnalysisRepository struct {
	db *DB
}

// NewAnalysisRepository creates a new SQLite analysis repository.
func NewAnalysisRepository(db *DB) *AnalysisRepository {
	return &AnalysisRepository{db: db}
}

// Insert adds a new analysis record with its samples in one transaction.
func (r *AnalysisRepository) Insert(a *model.Analysis) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO analyses (id, filename, filepath, annotated_path, filesize, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, a.ID, a.Filename, a.FilePath, a.AnnotatedPath, a.FileSize, a.Status, a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}

	if err := insertSamples(tx, a.ID, a.Samples); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateStatus sets the status of an analysis.
func (r *AnalysisRepository) UpdateStatus(id string, status model.AnalysisStatus) error {
	r.db.Lock()
	defer r.db.Unlock()

	result, err := r.db.Conn().Exec(`UPDATE analyses SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}
	return nil
}

// Complete marks an analysis done and stores its samples and annotated image path.
func (r *AnalysisRepository) Complete(id string, annotatedPath string, samples []model.ClassificationSample) error {
	r.db.Lock()
	defer r.db.Unlock()

	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		UPDATE analyses SET status = ?, annotated_path = ? WHERE id = ?
	`, model.StatusDone, annotatedPath, id)
	if err != nil {
		return fmt.Errorf("failed to complete analysis: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("analysis not found: %s", id)
	}

	if err := insertSamples(tx, id, samples); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves an analysis and its samples. A missing id is
// reported as (nil, nil): absence is a normal outcome, not a fault.
func (r *AnalysisRepository) GetByID(id string) (*model.Analysis, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	var a model.Analysis
	err := r.db.Conn().QueryRow(`
		SELECT id, filename, filepath, annotated_path, filesize, status, created_at
		FROM analyses WHERE id = ?
	`, id).Scan(&a.ID, &a.Filename, &a.FilePath, &a.AnnotatedPath, &a.FileSize, &a.Status, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis: %w", err)
	}

	samples, err := r.samplesFor(a.ID)
	if err != nil {
		return nil, err
	}
	a.Samples = samples

	return &a, nil
}

// GetRecent retrieves the most recent analyses, newest first.
func (r *AnalysisRepository) GetRecent(limit int) ([]model.Analysis, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := r.db.Conn().Query(`
		SELECT id, filename, filepath, annotated_path, filesize, status, created_at
		FROM analyses ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []model.Analysis
	for rows.Next() {
		var a model.Analysis
		if err := rows.Scan(&a.ID, &a.Filename, &a.FilePath, &a.AnnotatedPath, &a.FileSize, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read analyses: %w", err)
	}

	for i := range analyses {
		samples, err := r.samplesFor(analyses[i].ID)
		if err != nil {
			return nil, err
		}
		analyses[i].Samples = samples
	}

	return analyses, nil
}

// CountByCategory counts stored samples per category.
func (r *AnalysisRepository) CountByCategory() (map[model.Category]int, error) {
	r.db.RLock()
	defer r.db.RUnlock()

	rows, err := r.db.Conn().Query(`SELECT category, COUNT(*) FROM samples GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Category]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts[model.Category(category)] = count
	}
	return counts, rows.Err()
}

// Delete removes an analysis and its samples.
func (r *AnalysisRepository) Delete(id string) error {
	r.db.Lock()
	defer r.db.Unlock()

	// Explicit sample delete: cascade needs foreign_keys pragma, which is
	// off by default in go-sqlite3.
	tx, err := r.db.Conn().Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM samples WHERE analysis_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete samples: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM analyses WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete analysis: %w", err)
	}

	return tx.Commit()
}

// samplesFor loads the samples of one analysis. Callers hold the read lock.
func (r *AnalysisRepository) samplesFor(analysisID string) ([]model.ClassificationSample, error) {
	rows, err := r.db.Conn().Query(`
		SELECT category, confidence, x, y, width, height, description, severity
		FROM samples WHERE analysis_id = ? ORDER BY id
	`, analysisID)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer rows.Close()

	var samples []model.ClassificationSample
	for rows.Next() {
		var s model.ClassificationSample
		if err := rows.Scan(&s.Category, &s.Confidence, &s.Box.X, &s.Box.Y, &s.Box.Width, &s.Box.Height, &s.Description, &s.Severity); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, s)
	}
	return samples, rows.Err()
}

func insertSamples(tx *sql.Tx, analysisID string, samples []model.ClassificationSample) error {
	if len(samples) == 0 {
		return nil
	}

	stmt, err := tx.Prepare(`
		INSERT INTO samples (analysis_id, category, confidence, x, y, width, height, description, severity)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, s := range samples {
		if _, err := stmt.Exec(analysisID, s.Category, s.Confidence, s.Box.X, s.Box.Y, s.Box.Width, s.Box.Height, s.Description, s.Severity); err != nil {
			return fmt.Errorf("failed to insert sample: %w", err)
		}
	}
	return nil
}

// Interface conformance check
var _ repository.AnalysisRepository = (*AnalysisRepository)(nil)
