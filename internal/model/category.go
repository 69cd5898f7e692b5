package model

import (
	"fmt"
	"strings"
)

// Category identifies one of the fixed expense categories.
type Category string

// Expense categories, in display order.
const (
	CategoryHousing        Category = "housing"
	CategoryTransportation Category = "transportation"
	CategoryFood           Category = "food"
	CategoryUtilities      Category = "utilities"
	CategoryInsurance      Category = "insurance"
	CategoryHealthcare     Category = "healthcare"
	CategorySavings        Category = "savings"
	CategoryPersonal       Category = "personal"
	CategoryEntertainment  Category = "entertainment"
	CategoryEducation      Category = "education"
	CategoryDebt           Category = "debt"
	CategoryOther          Category = "other"
)

// CategoryInfo holds the display metadata of a category.
type CategoryInfo struct {
	Label        string
	ColorToken   string
	BgColorToken string
	IconRef      string
}

// CategoryOption pairs a category value with its label for pickers.
type CategoryOption struct {
	Value Category
	Label string
}

var categoryOrder = [...]Category{
	CategoryHousing,
	CategoryTransportation,
	CategoryFood,
	CategoryUtilities,
	CategoryInsurance,
	CategoryHealthcare,
	CategorySavings,
	CategoryPersonal,
	CategoryEntertainment,
	CategoryEducation,
	CategoryDebt,
	CategoryOther,
}

var categoryInfo = map[Category]CategoryInfo{
	CategoryHousing:        {Label: "Housing", ColorToken: "text-blue-600", BgColorToken: "bg-blue-100", IconRef: "home"},
	CategoryTransportation: {Label: "Transportation", ColorToken: "text-green-600", BgColorToken: "bg-green-100", IconRef: "car"},
	CategoryFood:           {Label: "Food & Groceries", ColorToken: "text-yellow-600", BgColorToken: "bg-yellow-100", IconRef: "shopping-cart"},
	CategoryUtilities:      {Label: "Utilities", ColorToken: "text-orange-600", BgColorToken: "bg-orange-100", IconRef: "lightbulb"},
	CategoryInsurance:      {Label: "Insurance", ColorToken: "text-indigo-600", BgColorToken: "bg-indigo-100", IconRef: "umbrella"},
	CategoryHealthcare:     {Label: "Healthcare", ColorToken: "text-red-600", BgColorToken: "bg-red-100", IconRef: "heart"},
	CategorySavings:        {Label: "Savings & Investments", ColorToken: "text-emerald-600", BgColorToken: "bg-emerald-100", IconRef: "piggy-bank"},
	CategoryPersonal:       {Label: "Personal Care", ColorToken: "text-pink-600", BgColorToken: "bg-pink-100", IconRef: "shirt"},
	CategoryEntertainment:  {Label: "Entertainment", ColorToken: "text-purple-600", BgColorToken: "bg-purple-100", IconRef: "film"},
	CategoryEducation:      {Label: "Education", ColorToken: "text-cyan-600", BgColorToken: "bg-cyan-100", IconRef: "graduation-cap"},
	CategoryDebt:           {Label: "Debt Payments", ColorToken: "text-slate-600", BgColorToken: "bg-slate-100", IconRef: "credit-card"},
	CategoryOther:          {Label: "Other", ColorToken: "text-gray-600", BgColorToken: "bg-gray-100", IconRef: "help-circle"},
}

// Categories returns every category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder[:])
	return out
}

// CategoryOptions returns value/label pairs in declaration order.
func CategoryOptions() []CategoryOption {
	opts := make([]CategoryOption, 0, len(categoryOrder))
	for _, c := range categoryOrder {
		opts = append(opts, CategoryOption{Value: c, Label: categoryInfo[c].Label})
	}
	return opts
}

// Describe returns the display metadata for c.
// It panics if c is not one of the declared categories.
func Describe(c Category) CategoryInfo {
	info, ok := categoryInfo[c]
	if !ok {
		panic(fmt.Sprintf("model: unknown category %q", string(c)))
	}
	return info
}

// Lookup is like Describe but reports unknown categories instead of panicking.
// Persisted data may carry values written by older builds.
func Lookup(c Category) (CategoryInfo, bool) {
	info, ok := categoryInfo[c]
	return info, ok
}

// ParseCategory converts user input into a Category.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
	return c, nil
}

// IsValid reports whether c is a declared category.
func (c Category) IsValid() bool {
	_, ok := categoryInfo[c]
	return ok
}

// Label returns the display label, or the raw value for unknown categories.
func (c Category) Label() string {
	if info, ok := categoryInfo[c]; ok {
		return info.Label
	}
	return string(c)
}

func (c Category) String() string {
	return string(c)
}
