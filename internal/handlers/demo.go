package handlers

import (
	"net/http"

	"panelscan/internal/catalog"
	"panelscan/internal/logger"
	"panelscan/internal/model"
)

// DemoListHandler lists showcase entries, optionally filtered by the
// "category" query parameter.
func DemoListHandler(cat *catalog.Catalog, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("category")
		if raw == "" {
			writeJSON(w, http.StatusOK, cat.All(), logger)
			return
		}

		category, err := model.ParseCategory(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Unknown category: "+raw, logger)
			return
		}

		writeJSON(w, http.StatusOK, cat.ByCategory(category), logger)
	}
}

// DemoGetHandler returns one showcase entry by id.
func DemoGetHandler(cat *catalog.Catalog, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "Id parameter is required", logger)
			return
		}

		entry, ok := cat.ByID(id)
		if !ok {
			writeError(w, http.StatusNotFound, "Entry not found", logger)
			return
		}

		writeJSON(w, http.StatusOK, entry, logger)
	}
}

// DemoRandomHandler returns one showcase entry picked at random.
func DemoRandomHandler(cat *catalog.Catalog, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entry, err := cat.Random()
		if err != nil {
			writeError(w, http.StatusNotFound, "Catalog is empty", logger)
			return
		}

		writeJSON(w, http.StatusOK, entry, logger)
	}
}

// DemoSearchHandler matches entries against the "q" query parameter.
func DemoSearchHandler(cat *catalog.Catalog, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Search(r.URL.Query().Get("q")), logger)
	}
}

// DemoStatsHandler returns entry counts and the average confidence.
func DemoStatsHandler(cat *catalog.Catalog, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.Statistics(), logger)
	}
}

// DemoRecommendedHandler returns the highest-confidence entries,
// honoring the "limit" query parameter.
func DemoRecommendedHandler(cat *catalog.Catalog, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := atoiDefault(r.URL.Query().Get("limit"), catalog.DefaultRecommendedLimit)
		writeJSON(w, http.StatusOK, cat.Recommended(limit), logger)
	}
}

// DemoBreakdownHandler returns labelled per-category entry counts.
func DemoBreakdownHandler(cat *catalog.Catalog, logger *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat.CategoryBreakdown(), logger)
	}
}
