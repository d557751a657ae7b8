package catalog

import "panelscan/internal/model"

// Showcase returns the bundled demo catalog: six pre-computed scenarios
// used in lieu of live inference for demonstration.
func Showcase() []model.DemoEntry {
	return []model.DemoEntry{
		{
			ID:          "clean-panel",
			Title:       "Clean panel baseline",
			Description: "A well-maintained panel under clear midday light, nothing obstructing the cells.",
			ImageURL:    "/static/demo/clean-panel.jpg",
			Category:    model.CategoryNormal,
			ExpectedResults: []model.ClassificationSample{
				{
					Category:    model.CategoryNormal,
					Confidence:  0.97,
					Box:         model.BoundingBox{X: 12, Y: 8, Width: 612, Height: 404},
					Description: "Uniform cell surface, no obstructions detected",
					Severity:    model.SeverityLow,
				},
			},
		},
		{
			ID:          "leaf-litter",
			Title:       "Leaf litter after a storm",
			Description: "Wind-blown leaves collected along the lower frame edge, shading several cells.",
			ImageURL:    "/static/demo/leaf-litter.jpg",
			Category:    model.CategoryLeaves,
			ExpectedResults: []model.ClassificationSample{
				{
					Category:    model.CategoryLeaves,
					Confidence:  0.91,
					Box:         model.BoundingBox{X: 44, Y: 310, Width: 280, Height: 96},
					Description: "Cluster of leaves along the lower frame",
					Severity:    model.SeverityMedium,
				},
				{
					Category:    model.CategoryLeaves,
					Confidence:  0.84,
					Box:         model.BoundingBox{X: 402, Y: 288, Width: 120, Height: 88},
					Description: "Single large leaf over two cells",
					Severity:    model.SeverityLow,
				},
			},
		},
		{
			ID:          "dry-season-dust",
			Title:       "Dust buildup in the dry season",
			Description: "A fine dust layer after six rainless weeks, strongest near the bottom rows.",
			ImageURL:    "/static/demo/dry-season-dust.jpg",
			Category:    model.CategoryDust,
			ExpectedResults: []model.ClassificationSample{
				{
					Category:    model.CategoryDust,
					Confidence:  0.88,
					Box:         model.BoundingBox{X: 0, Y: 240, Width: 640, Height: 180},
					Description: "Even dust film across the lower third",
					Severity:    model.SeverityMedium,
				},
			},
		},
		{
			ID:          "chimney-shadow",
			Title:       "Afternoon chimney shadow",
			Description: "A chimney casts a hard shadow over the eastern column every afternoon.",
			ImageURL:    "/static/demo/chimney-shadow.jpg",
			Category:    model.CategoryShadow,
			ExpectedResults: []model.ClassificationSample{
				{
					Category:    model.CategoryShadow,
					Confidence:  0.93,
					Box:         model.BoundingBox{X: 470, Y: 0, Width: 150, Height: 420},
					Description: "Hard-edged shadow band over the eastern column",
					Severity:    model.SeverityHigh,
				},
			},
		},
		{
			ID:          "cracked-cells",
			Title:       "Cracked cell cluster",
			Description: "Micro-cracks spreading from an impact point, likely hail damage.",
			ImageURL:    "/static/demo/cracked-cells.jpg",
			Category:    model.CategoryOther,
			ExpectedResults: []model.ClassificationSample{
				{
					Category:    model.CategoryOther,
					Confidence:  0.79,
					Box:         model.BoundingBox{X: 210, Y: 130, Width: 140, Height: 120},
					Description: "Radial crack pattern around impact point",
					Severity:    model.SeverityHigh,
				},
				{
					Category:    model.CategoryOther,
					Confidence:  0.66,
					Box:         model.BoundingBox{X: 360, Y: 180, Width: 90, Height: 70},
					Description: "Secondary hairline cracks",
					Severity:    model.SeverityMedium,
				},
			},
		},
		{
			ID:          "bird-droppings",
			Title:       "Bird droppings on the lower row",
			Description: "Recurring soiling spots under a roof antenna used as a perch.",
			ImageURL:    "/static/demo/bird-droppings.jpg",
			Category:    model.CategoryOther,
			ExpectedResults: []model.ClassificationSample{
				{
					Category:    model.CategoryOther,
					Confidence:  0.86,
					Box:         model.BoundingBox{X: 150, Y: 352, Width: 60, Height: 48},
					Description: "Dense soiling spot blocking one cell",
					Severity:    model.SeverityMedium,
				},
				{
					Category:    model.CategoryOther,
					Confidence:  0.71,
					Box:         model.BoundingBox{X: 318, Y: 366, Width: 42, Height: 36},
					Description: "Smaller soiling spot at the row edge",
					Severity:    model.SeverityLow,
				},
			},
		},
	}
}
