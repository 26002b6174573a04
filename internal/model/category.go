package model

import (
	"sort"
)

const (
	MinDiscountDay = 1
	MaxDiscountDay = 365
)

// DefaultDiscountDays is applied to categories created without thresholds
var DefaultDiscountDays = []int{30, 15, 5}

// Category groups products and carries the days-before-expiry thresholds
// at which its products become discount candidates.
type Category struct {
	BaseModel
	Name         string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required,max=255"`
	DiscountDays []int  `gorm:"serializer:json;type:text" json:"discount_days" validate:"dive,min=1,max=365"`
}

// NormalizeDiscountDays drops out-of-range values and duplicates and
// returns the rest sorted descending.
func NormalizeDiscountDays(days []int) []int {
	seen := make(map[int]bool, len(days))
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d < MinDiscountDay || d > MaxDiscountDay || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// HasDiscountDay reports whether day is one of the thresholds
func (c *Category) HasDiscountDay(day int) bool {
	for _, d := range c.DiscountDays {
		if d == day {
			return true
		}
	}
	return false
}
