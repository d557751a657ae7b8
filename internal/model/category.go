package model

import "fmt"

// Category classifies a detected panel region.
type Category string

const (
	CategoryNormal Category = "normal"
	CategoryLeaves Category = "leaves"
	CategoryDust   Category = "dust"
	CategoryShadow Category = "shadow"
	CategoryOther  Category = "other"
)

// Categories lists every category in a fixed order.
var Categories = []Category{
	CategoryNormal,
	CategoryLeaves,
	CategoryDust,
	CategoryShadow,
	CategoryOther,
}

// CategoryLabels maps every category to its display label.
// Keep this table exhaustive: one entry per Category value.
var CategoryLabels = map[Category]string{
	CategoryNormal: "Normal panel",
	CategoryLeaves: "Leaf obstruction",
	CategoryDust:   "Dust buildup",
	CategoryShadow: "Shadow",
	CategoryOther:  "Other anomaly",
}

// ParseCategory converts a string into a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if _, ok := CategoryLabels[c]; !ok {
		return "", fmt.Errorf("unknown category: %q", s)
	}
	return c, nil
}

// Label returns the display label for the category.
func (c Category) Label() string {
	return CategoryLabels[c]
}

func (c Category) String() string {
	return string(c)
}
