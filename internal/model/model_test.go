package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	for _, c := range Categories {
		parsed, err := ParseCategory(string(c))
		require.NoError(t, err)
		require.Equal(t, c, parsed)
	}

	_, err := ParseCategory("rust")
	require.Error(t, err)
}

func TestCategoryLabels_Exhaustive(t *testing.T) {
	require.Len(t, CategoryLabels, len(Categories))
	for _, c := range Categories {
		require.NotEmpty(t, c.Label())
	}
}

func TestSeverity_Ordering(t *testing.T) {
	require.Less(t, SeverityLow.Rank(), SeverityMedium.Rank())
	require.Less(t, SeverityMedium.Rank(), SeverityHigh.Rank())
}

func TestClassificationSample_Validate(t *testing.T) {
	valid := ClassificationSample{
		Category:    CategoryDust,
		Confidence:  0.8,
		Box:         BoundingBox{X: 10, Y: 20, Width: 30, Height: 40},
		Description: "dust film",
		Severity:    SeverityMedium,
	}
	require.NoError(t, valid.Validate())

	tooConfident := valid
	tooConfident.Confidence = 1.2
	require.Error(t, tooConfident.Validate())

	negativeOrigin := valid
	negativeOrigin.Box.X = -1
	require.Error(t, negativeOrigin.Validate())

	flatBox := valid
	flatBox.Box.Height = 0
	require.Error(t, flatBox.Validate())

	unnamed := valid
	unnamed.Description = ""
	require.Error(t, unnamed.Validate())

	badSeverity := valid
	badSeverity.Severity = "critical"
	require.Error(t, badSeverity.Validate())
}

func TestDemoEntry_MeanConfidence(t *testing.T) {
	entry := DemoEntry{
		ExpectedResults: []ClassificationSample{
			{Confidence: 0.6},
			{Confidence: 0.8},
		},
	}
	require.InDelta(t, 0.7, entry.MeanConfidence(), 1e-9)

	require.Zero(t, DemoEntry{}.MeanConfidence())
}
