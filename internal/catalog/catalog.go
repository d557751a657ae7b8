// Package catalog answers queries over a fixed set of showcase entries
// without ever mutating them.
package catalog

import (
	"errors"
	"math/rand"
	"sort"
	"strings"

	"panelscan/internal/model"
)

// ErrEmptyCatalog is returned by Random on a catalog with no entries.
var ErrEmptyCatalog = errors.New("catalog is empty")

// Statistics summarizes the catalog. AverageConfidence is a mean of
// per-entry means: each entry weighs the same no matter how many
// samples it holds.
type Statistics struct {
	Total             int                    `json:"total"`
	ByCategory        map[model.Category]int `json:"byCategory"`
	AverageConfidence float64                `json:"averageConfidence"`
}

// CategorySummary is one row of the category breakdown.
type CategorySummary struct {
	Category model.Category `json:"category"`
	Count    int            `json:"count"`
	Label    string         `json:"label"`
}

// DefaultRecommendedLimit caps the recommendation list when no limit is given.
const DefaultRecommendedLimit = 3

// Catalog holds an immutable, ordered set of demo entries. Construct it
// once with New and share it freely; every query is a pure read and
// every returned slice is a copy.
type Catalog struct {
	entries []model.DemoEntry
}

// New builds a catalog from the given entries. The input is copied, so
// later changes to the caller's slice do not leak in.
func New(entries []model.DemoEntry) *Catalog {
	return &Catalog{entries: cloneEntries(entries)}
}

// All returns every entry in catalog-definition order.
func (c *Catalog) All() []model.DemoEntry {
	return cloneEntries(c.entries)
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// ByID looks up an entry by its id. Absence is a normal outcome,
// reported through the second return value.
func (c *Catalog) ByID(id string) (model.DemoEntry, bool) {
	for _, e := range c.entries {
		if e.ID == id {
			return cloneEntry(e), true
		}
	}
	return model.DemoEntry{}, false
}

// ByCategory returns the entries whose top-level category matches,
// preserving catalog order.
func (c *Catalog) ByCategory(category model.Category) []model.DemoEntry {
	matched := make([]model.DemoEntry, 0)
	for _, e := range c.entries {
		if e.Category == category {
			matched = append(matched, cloneEntry(e))
		}
	}
	return matched
}

// Random picks one entry uniformly at random.
func (c *Catalog) Random() (model.DemoEntry, error) {
	if len(c.entries) == 0 {
		return model.DemoEntry{}, ErrEmptyCatalog
	}
	return cloneEntry(c.entries[rand.Intn(len(c.entries))]), nil
}

// Search matches the query case-insensitively against title, description
// and the category's string form. An empty query matches everything.
func (c *Catalog) Search(query string) []model.DemoEntry {
	q := strings.ToLower(query)
	matched := make([]model.DemoEntry, 0)
	for _, e := range c.entries {
		if strings.Contains(strings.ToLower(e.Title), q) ||
			strings.Contains(strings.ToLower(e.Description), q) ||
			strings.Contains(strings.ToLower(string(e.Category)), q) {
			matched = append(matched, cloneEntry(e))
		}
	}
	return matched
}

// Statistics derives entry counts and the mean-of-means confidence.
func (c *Catalog) Statistics() Statistics {
	stats := Statistics{
		Total:      len(c.entries),
		ByCategory: make(map[model.Category]int),
	}

	var sum float64
	for _, e := range c.entries {
		stats.ByCategory[e.Category]++
		sum += e.MeanConfidence()
	}
	if stats.Total > 0 {
		stats.AverageConfidence = sum / float64(stats.Total)
	}
	return stats
}

// Recommended returns up to limit entries ordered by descending mean
// sample confidence, ties keeping catalog order. The sort runs on a
// copy; the canonical catalog order is never touched.
func (c *Catalog) Recommended(limit int) []model.DemoEntry {
	if limit <= 0 {
		limit = DefaultRecommendedLimit
	}

	ranked := cloneEntries(c.entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MeanConfidence() > ranked[j].MeanConfidence()
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}

// CategoryBreakdown returns one labelled row per category present in the
// catalog, in the fixed category order so the result is deterministic.
func (c *Catalog) CategoryBreakdown() []CategorySummary {
	stats := c.Statistics()

	breakdown := make([]CategorySummary, 0, len(stats.ByCategory))
	for _, cat := range model.Categories {
		count, ok := stats.ByCategory[cat]
		if !ok {
			continue
		}
		breakdown = append(breakdown, CategorySummary{
			Category: cat,
			Count:    count,
			Label:    cat.Label(),
		})
	}
	return breakdown
}

func cloneEntry(e model.DemoEntry) model.DemoEntry {
	samples := make([]model.ClassificationSample, len(e.ExpectedResults))
	copy(samples, e.ExpectedResults)
	e.ExpectedResults = samples
	return e
}

func cloneEntries(entries []model.DemoEntry) []model.DemoEntry {
	cloned := make([]model.DemoEntry, len(entries))
	for i, e := range entries {
		cloned[i] = cloneEntry(e)
	}
	return cloned
}
