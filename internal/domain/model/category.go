package model

import "strings"

// Category identifies which protected section a credential unlocks.
type Category string

const (
	// CategoryPack grants access to both the casino and bet signal pages.
	CategoryPack Category = "pack"
	// CategoryCasino grants access to the casino signal page.
	CategoryCasino Category = "casino"
	// CategoryBet grants access to the bet signal page.
	CategoryBet Category = "bet"
	// CategoryTemp is a trial credential limited to the generic dashboard.
	CategoryTemp Category = "temp"
)

// ParseCategory normalizes a raw category string. "packvip" is a legacy
// spelling of pack still present in old credential files. The second return
// is false when the input names no known category; the normalized string is
// still returned so callers can preserve unknown buckets.
func ParseCategory(raw string) (Category, bool) {
	cat := Category(strings.ToLower(strings.TrimSpace(raw)))
	if cat == "packvip" {
		return CategoryPack, true
	}
	return cat, cat.Valid()
}

// Valid reports whether the category is one of the known values.
func (c Category) Valid() bool {
	switch c {
	case CategoryPack, CategoryCasino, CategoryBet, CategoryTemp:
		return true
	}
	return false
}

// Title returns the category with its first letter upper-cased, as used in
// generated usernames.
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}
