package model

// DemoEntry groups pre-computed classification samples under a titled
// showcase scenario. Entries own their samples; every entry carries at
// least one sample.
type DemoEntry struct {
	ID              string                 `json:"id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	ImageURL        string                 `json:"imageUrl"`
	Category        Category               `json:"category"`
	ExpectedResults []ClassificationSample `json:"expectedResults"`
}

// MeanConfidence averages the confidence of the entry's samples.
func (e DemoEntry) MeanConfidence() float64 {
	if len(e.ExpectedResults) == 0 {
		return 0
	}
	var sum float64
	for _, s := range e.ExpectedResults {
		sum += s.Confidence
	}
	return sum / float64(len(e.ExpectedResults))
}
