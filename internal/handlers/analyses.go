package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"panelscan/internal/dto"
	"panelscan/internal/intake"
	"panelscan/internal/logger"
	"panelscan/internal/model"
	"panelscan/internal/repository"
	"panelscan/internal/services"
	"panelscan/internal/services/storage"
)

// statusForIntakeError maps the closed intake taxonomy to HTTP codes.
func statusForIntakeError(err *intake.ValidationError) int {
	switch err.Type {
	case intake.ErrFileTooLarge:
		return http.StatusRequestEntityTooLarge
	case intake.ErrUnsupportedFormat:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusBadRequest
	}
}

// UploadAnalysisHandler accepts a multipart panel image, gates it
// through the intake validator and queues it for detection.
func UploadAnalysisHandler(validator *intake.Validator, manager *services.Manager, repo repository.AnalysisRepository, store *storage.Store, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeError(w, http.StatusMethodNotAllowed, "Method not allowed", logger)
			return
		}

		// Cap the body read, with headroom above the policy limit so a
		// slightly oversized file is still classified by the validator.
		// Anything past the cap is refused without buffering it all.
		limit := validator.MaxSize() + 1<<20
		r.Body = http.MaxBytesReader(w, r.Body, limit)
		if err := r.ParseMultipartForm(limit); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				verr := intake.NewValidationError(intake.ErrFileTooLarge)
				logger.Warning("Upload rejected: body exceeds %d bytes", limit)
				writeJSON(w, statusForIntakeError(verr), verr, logger)
				return
			}
			logger.Warning("Error parsing multipart form: %v", err)
			writeError(w, http.StatusBadRequest, "Invalid multipart request", logger)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Missing image field", logger)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			logger.Error("Error reading upload: %v", err)
			writeError(w, http.StatusInternalServerError, "Error reading upload", logger)
			return
		}

		// Sniff the content type from the bytes rather than trusting the
		// client-supplied header.
		contentType := http.DetectContentType(data)

		if verr := validator.Check(header.Filename, header.Size, contentType); verr != nil {
			logger.Warning("Upload %s rejected: %s", header.Filename, verr.Type)
			writeJSON(w, statusForIntakeError(verr), verr, logger)
			return
		}

		id := uuid.NewString()

		path, err := store.SaveUpload(id, header.Filename, data)
		if err != nil {
			logger.Error("Error saving upload: %v", err)
			writeError(w, http.StatusInternalServerError, "Error saving upload", logger)
			return
		}

		analysis := &model.Analysis{
			ID:        id,
			Filename:  header.Filename,
			FilePath:  path,
			FileSize:  header.Size,
			Status:    model.StatusQueued,
			CreatedAt: time.Now().UTC(),
		}
		if err := repo.Insert(analysis); err != nil {
			logger.Error("Error inserting analysis: %v", err)
			writeError(w, http.StatusInternalServerError, "Error storing analysis", logger)
			return
		}

		if !manager.Enqueue(services.AnalysisTask{AnalysisID: id, Image: data}) {
			writeError(w, http.StatusServiceUnavailable, "Processing queue is full", logger)
			return
		}

		writeJSON(w, http.StatusAccepted, dto.UploadAccepted{ID: id, Status: model.StatusQueued}, logger)
	}
}

// GetAnalysisHandler returns one analysis by id.
func GetAnalysisHandler(repo repository.AnalysisRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "Id parameter is required", logger)
			return
		}

		analysis, err := repo.GetByID(id)
		if err != nil {
			logger.Error("Error loading analysis %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Error loading analysis", logger)
			return
		}
		if analysis == nil {
			writeError(w, http.StatusNotFound, "Analysis not found", logger)
			return
		}

		writeJSON(w, http.StatusOK, analysis, logger)
	}
}

// ListAnalysesHandler returns the most recent analyses.
func ListAnalysesHandler(repo repository.AnalysisRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := atoiDefault(r.URL.Query().Get("limit"), 20)

		analyses, err := repo.GetRecent(limit)
		if err != nil {
			logger.Error("Error listing analyses: %v", err)
			writeError(w, http.StatusInternalServerError, "Error listing analyses", logger)
			return
		}
		if analyses == nil {
			analyses = []model.Analysis{}
		}

		writeJSON(w, http.StatusOK, dto.AnalysisList{Analyses: analyses, Length: len(analyses)}, logger)
	}
}

// DeleteAnalysisHandler removes an analysis record and its stored images.
func DeleteAnalysisHandler(repo repository.AnalysisRepository, store *storage.Store, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "Id parameter is required", logger)
			return
		}

		analysis, err := repo.GetByID(id)
		if err != nil {
			logger.Error("Error loading analysis %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Error loading analysis", logger)
			return
		}
		if analysis == nil {
			writeError(w, http.StatusNotFound, "Analysis not found", logger)
			return
		}

		if err := repo.Delete(id); err != nil {
			logger.Error("Error deleting analysis %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "Error deleting analysis", logger)
			return
		}
		if err := store.Remove(analysis.FilePath, analysis.AnnotatedPath); err != nil {
			logger.Warning("Error removing files for analysis %s: %v", id, err)
		}

		logger.Info("Analysis %s deleted", id)
		w.WriteHeader(http.StatusNoContent)
	}
}

// AnalysisStatsHandler reports stored sample counts per category.
func AnalysisStatsHandler(repo repository.AnalysisRepository, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts, err := repo.CountByCategory()
		if err != nil {
			logger.Error("Error counting samples: %v", err)
			writeError(w, http.StatusInternalServerError, "Error counting samples", logger)
			return
		}

		stats := make([]dto.CategoryCount, 0, len(counts))
		for _, category := range model.Categories {
			count, ok := counts[category]
			if !ok {
				continue
			}
			stats = append(stats, dto.CategoryCount{
				Category: category,
				Label:    category.Label(),
				Count:    count,
			})
		}

		writeJSON(w, http.StatusOK, stats, logger)
	}
}
