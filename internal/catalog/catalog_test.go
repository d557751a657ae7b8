package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"panelscan/internal/model"
)

func fixtureEntries() []model.DemoEntry {
	return []model.DemoEntry{
		{
			ID:       "a",
			Title:    "Spotless array",
			Category: model.CategoryNormal,
			ExpectedResults: []model.ClassificationSample{
				{Category: model.CategoryNormal, Confidence: 0.9, Box: model.BoundingBox{Width: 10, Height: 10}, Description: "clean", Severity: model.SeverityLow},
			},
		},
		{
			ID:       "b",
			Title:    "Leafy corner",
			Category: model.CategoryLeaves,
			ExpectedResults: []model.ClassificationSample{
				{Category: model.CategoryLeaves, Confidence: 0.6, Box: model.BoundingBox{Width: 10, Height: 10}, Description: "leaves", Severity: model.SeverityMedium},
				{Category: model.CategoryLeaves, Confidence: 0.8, Box: model.BoundingBox{Width: 10, Height: 10}, Description: "leaf", Severity: model.SeverityLow},
			},
		},
		{
			ID:       "c",
			Title:    "Cracked glass",
			Category: model.CategoryOther,
			ExpectedResults: []model.ClassificationSample{
				{Category: model.CategoryOther, Confidence: 0.8, Box: model.BoundingBox{Width: 10, Height: 10}, Description: "crack", Severity: model.SeverityHigh},
			},
		},
	}
}

func TestShowcase_Shape(t *testing.T) {
	entries := Showcase()
	require.Len(t, entries, 6)

	seen := make(map[string]bool)
	for _, e := range entries {
		require.False(t, seen[e.ID], "duplicate id %s", e.ID)
		seen[e.ID] = true

		require.NotEmpty(t, e.Title)
		require.NotEmpty(t, e.Description)
		require.NotEmpty(t, e.ImageURL)
		require.NotEmpty(t, e.ExpectedResults, "entry %s has no samples", e.ID)
		for _, s := range e.ExpectedResults {
			require.NoError(t, s.Validate(), "entry %s", e.ID)
		}
	}
}

func TestAll_PreservesOrder(t *testing.T) {
	cat := New(fixtureEntries())

	all := cat.All()
	require.Len(t, all, 3)
	require.Equal(t, "a", all[0].ID)
	require.Equal(t, "b", all[1].ID)
	require.Equal(t, "c", all[2].ID)
}

func TestNew_CopiesInput(t *testing.T) {
	entries := fixtureEntries()
	cat := New(entries)

	entries[0].ID = "mutated"
	entries[0].ExpectedResults[0].Confidence = 0

	all := cat.All()
	require.Equal(t, "a", all[0].ID)
	require.InDelta(t, 0.9, all[0].ExpectedResults[0].Confidence, 1e-9)
}

func TestAll_ReturnsCopies(t *testing.T) {
	cat := New(fixtureEntries())

	first := cat.All()
	first[0].Title = "changed"
	first[0].ExpectedResults[0].Confidence = 0

	again := cat.All()
	require.Equal(t, "Spotless array", again[0].Title)
	require.InDelta(t, 0.9, again[0].ExpectedResults[0].Confidence, 1e-9)
}

func TestByID(t *testing.T) {
	cat := New(fixtureEntries())

	entry, ok := cat.ByID("b")
	require.True(t, ok)
	require.Equal(t, "Leafy corner", entry.Title)

	_, ok = cat.ByID("nope")
	require.False(t, ok)
}

func TestByCategory_PartitionProperty(t *testing.T) {
	cat := New(Showcase())

	var reassembled []model.DemoEntry
	total := 0
	for _, c := range model.Categories {
		subset := cat.ByCategory(c)
		total += len(subset)
		for _, e := range subset {
			require.Equal(t, c, e.Category)
		}
		reassembled = append(reassembled, subset...)
	}

	all := cat.All()
	require.Equal(t, len(all), total)

	// Union over the fixed category order reassembles the catalog with
	// relative order preserved inside each category.
	seen := make(map[string]bool)
	for _, e := range reassembled {
		require.False(t, seen[e.ID])
		seen[e.ID] = true
	}
	require.Len(t, seen, len(all))
}

func TestByCategory_ShowcaseOther(t *testing.T) {
	cat := New(Showcase())

	others := cat.ByCategory(model.CategoryOther)
	require.Len(t, others, 2)
}

func TestRandom(t *testing.T) {
	cat := New(fixtureEntries())

	ids := map[string]bool{"a": true, "b": true, "c": true}
	for i := 0; i < 20; i++ {
		entry, err := cat.Random()
		require.NoError(t, err)
		require.True(t, ids[entry.ID])
	}
}

func TestRandom_EmptyCatalog(t *testing.T) {
	cat := New(nil)

	_, err := cat.Random()
	require.ErrorIs(t, err, ErrEmptyCatalog)
}

func TestSearch(t *testing.T) {
	cat := New(fixtureEntries())

	require.Len(t, cat.Search(""), 3, "empty query matches everything")

	byTitle := cat.Search("LEAFY")
	require.Len(t, byTitle, 1)
	require.Equal(t, "b", byTitle[0].ID)

	byCategory := cat.Search("other")
	require.Len(t, byCategory, 1)
	require.Equal(t, "c", byCategory[0].ID)

	require.Empty(t, cat.Search("snow"))
}

func TestStatistics(t *testing.T) {
	cat := New(fixtureEntries())

	stats := cat.Statistics()
	require.Equal(t, 3, stats.Total)
	require.Equal(t, 1, stats.ByCategory[model.CategoryNormal])
	require.Equal(t, 1, stats.ByCategory[model.CategoryLeaves])
	require.Equal(t, 1, stats.ByCategory[model.CategoryOther])

	sum := 0
	for _, count := range stats.ByCategory {
		sum += count
	}
	require.Equal(t, stats.Total, sum)

	// Mean of means: (0.9 + 0.7 + 0.8) / 3, not a flat mean over samples.
	require.InDelta(t, 0.8, stats.AverageConfidence, 1e-9)
}

func TestStatistics_ShowcaseByCategory(t *testing.T) {
	cat := New(Showcase())

	stats := cat.Statistics()
	require.Equal(t, 6, stats.Total)
	require.Equal(t, 2, stats.ByCategory[model.CategoryOther])
	require.Equal(t, cat.Len(), stats.Total)
}

func TestRecommended_SortedAndTruncated(t *testing.T) {
	cat := New(fixtureEntries())

	top := cat.Recommended(2)
	require.Len(t, top, 2)
	require.Equal(t, "a", top[0].ID) // 0.9
	require.Equal(t, "c", top[1].ID) // 0.8

	require.GreaterOrEqual(t, top[0].MeanConfidence(), top[1].MeanConfidence())
}

func TestRecommended_DefaultLimit(t *testing.T) {
	cat := New(Showcase())

	require.Len(t, cat.Recommended(0), DefaultRecommendedLimit)
	require.Len(t, cat.Recommended(-5), DefaultRecommendedLimit)
	require.Len(t, cat.Recommended(100), 6)
}

func TestRecommended_StableTies(t *testing.T) {
	entries := []model.DemoEntry{
		{ID: "x", Category: model.CategoryDust, ExpectedResults: []model.ClassificationSample{{Confidence: 0.5}}},
		{ID: "y", Category: model.CategoryDust, ExpectedResults: []model.ClassificationSample{{Confidence: 0.5}}},
	}
	cat := New(entries)

	top := cat.Recommended(2)
	require.Equal(t, "x", top[0].ID)
	require.Equal(t, "y", top[1].ID)
}

func TestRecommended_DoesNotMutateCatalog(t *testing.T) {
	cat := New(fixtureEntries())

	before := cat.All()
	for i := 0; i < 5; i++ {
		cat.Recommended(3)
	}
	after := cat.All()

	require.Equal(t, before, after)
	require.Equal(t, "a", after[0].ID)
	require.Equal(t, "b", after[1].ID)
	require.Equal(t, "c", after[2].ID)
}

func TestCategoryBreakdown(t *testing.T) {
	cat := New(Showcase())

	breakdown := cat.CategoryBreakdown()
	require.Len(t, breakdown, 5)

	stats := cat.Statistics()
	for _, row := range breakdown {
		require.Equal(t, stats.ByCategory[row.Category], row.Count)
		require.Equal(t, row.Category.Label(), row.Label)
	}

	// Deterministic order: the fixed category order.
	require.Equal(t, model.CategoryNormal, breakdown[0].Category)
	require.Equal(t, model.CategoryOther, breakdown[4].Category)
}

func TestCategoryBreakdown_SkipsAbsentCategories(t *testing.T) {
	cat := New(fixtureEntries())

	breakdown := cat.CategoryBreakdown()
	require.Len(t, breakdown, 3)
	for _, row := range breakdown {
		require.NotZero(t, row.Count)
	}
}
