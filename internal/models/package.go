// internal/models/package.go
package models

import (
	"math"
	"strings"
)

type CategoryTag string

const (
	CategoryUnset     CategoryTag = ""
	CategoryCultural  CategoryTag = "cultural"
	CategoryBeach     CategoryTag = "beach"
	CategoryWildlife  CategoryTag = "wildlife"
	CategoryAdventure CategoryTag = "adventure"
	CategoryHoneymoon CategoryTag = "honeymoon"
	CategoryWellness  CategoryTag = "wellness"
)

// Categories is the fixed tag vocabulary in display order.
var Categories = []CategoryTag{
	CategoryCultural,
	CategoryBeach,
	CategoryWildlife,
	CategoryAdventure,
	CategoryHoneymoon,
	CategoryWellness,
}

var knownCategories = map[CategoryTag]bool{
	CategoryCultural: true, CategoryBeach: true, CategoryWildlife: true,
	CategoryAdventure: true, CategoryHoneymoon: true, CategoryWellness: true,
}

// IsKnownCategory reports whether s (case-insensitive, trimmed) is in the vocabulary.
func IsKnownCategory(s string) bool {
	return knownCategories[CategoryTag(strings.ToLower(strings.TrimSpace(s)))]
}

// ParseCategory maps s onto the vocabulary. Anything else is CategoryUnset.
func ParseCategory(s string) CategoryTag {
	tag := CategoryTag(strings.ToLower(strings.TrimSpace(s)))
	if knownCategories[tag] {
		return tag
	}
	return CategoryUnset
}

// Package is a sellable itinerary as supplied by the catalog provider.
// It is treated as read-only for the lifetime of a request.
type Package struct {
	ID               string      `json:"id"`
	Slug             string      `json:"slug"`
	Name             string      `json:"name"`
	ShortDescription string      `json:"shortDescription,omitempty"`
	Price            *float64    `json:"price"`
	Duration         string      `json:"duration"`
	Category         CategoryTag `json:"type,omitempty"`
	Rating           *float64    `json:"rating"`
	ReviewCount      *int        `json:"reviewCount"`
	Destinations     []string    `json:"destinations"`
	Highlights       []string    `json:"highlights"`
	Featured         bool        `json:"featured"`
	GroupSizeMax     int         `json:"groupSizeMax,omitempty"`
}

// PriceOrZero returns the price, treating a missing price as 0.
func (p Package) PriceOrZero() float64 {
	if p.Price == nil {
		return 0
	}
	return *p.Price
}

// RatingOrZero returns the rating, treating a missing rating as 0.
func (p Package) RatingOrZero() float64 {
	if p.Rating == nil {
		return 0
	}
	return *p.Rating
}

func (p Package) DurationDays() int {
	return ParseDurationDays(p.Duration)
}

// ParseDurationDays extracts the first integer token from free-text durations
// such as "7 Days / 6 Nights". Text without digits yields 0.
func ParseDurationDays(text string) int {
	start := strings.IndexFunc(text, isDigit)
	if start < 0 {
		return 0
	}
	n := 0
	for _, r := range text[start:] {
		if !isDigit(r) {
			break
		}
		d := int(r - '0')
		if n > (math.MaxInt32-d)/10 {
			return 0
		}
		n = n*10 + d
	}
	return n
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
