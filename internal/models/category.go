// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

// Recognised joke categories.
const (
	CategoryProgramming = "programming"
	CategoryDad         = "dad"
	CategoryPunny       = "punny"
	CategoryKnockKnock  = "knock-knock"
	CategoryGeneral     = "general"
	CategoryOther       = "other"
)

// Category is a selectable category with its display label.
type Category struct {
	Value string
	Label string
}

// Categories lists the recognised categories in form order.
var Categories = []Category{
	{Value: CategoryProgramming, Label: "Programming"},
	{Value: CategoryDad, Label: "Dad Jokes"},
	{Value: CategoryPunny, Label: "Punny"},
	{Value: CategoryKnockKnock, Label: "Knock-Knock"},
	{Value: CategoryGeneral, Label: "General"},
	{Value: CategoryOther, Label: "Other"},
}

// IsKnownCategory reports whether value is one of the recognised categories.
func IsKnownCategory(value string) bool {
	for _, c := range Categories {
		if c.Value == value {
			return true
		}
	}
	return false
}

// CategoryLabel returns the display label, or the raw value for free-form categories.
func CategoryLabel(value string) string {
	for _, c := range Categories {
		if c.Value == value {
			return c.Label
		}
	}
	return value
}

// CategoryCount is the number of stored jokes in a category.
type CategoryCount struct {
	Category string `db:"category" json:"category"`
	Count    int64  `db:"count" json:"count"`
}
