package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategories_DeclarationOrder(t *testing.T) {
	cats := Categories()
	require.Len(t, cats, 12)
	assert.Equal(t, CategoryHousing, cats[0])
	assert.Equal(t, CategoryFood, cats[2])
	assert.Equal(t, CategoryOther, cats[11])

	// Callers get their own copy.
	cats[0] = CategoryOther
	assert.Equal(t, CategoryHousing, Categories()[0])
}

func TestCategoryOptions(t *testing.T) {
	opts := CategoryOptions()
	require.Len(t, opts, 12)

	for i, c := range Categories() {
		assert.Equal(t, c, opts[i].Value)
		assert.Equal(t, Describe(c).Label, opts[i].Label)
	}
	assert.Equal(t, "Food & Groceries", opts[2].Label)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		want     CategoryInfo
	}{
		{
			name:     "housing",
			category: CategoryHousing,
			want:     CategoryInfo{Label: "Housing", ColorToken: "text-blue-600", BgColorToken: "bg-blue-100", IconRef: "home"},
		},
		{
			name:     "savings",
			category: CategorySavings,
			want:     CategoryInfo{Label: "Savings & Investments", ColorToken: "text-emerald-600", BgColorToken: "bg-emerald-100", IconRef: "piggy-bank"},
		},
		{
			name:     "other",
			category: CategoryOther,
			want:     CategoryInfo{Label: "Other", ColorToken: "text-gray-600", BgColorToken: "bg-gray-100", IconRef: "help-circle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Describe(tt.category))
		})
	}
}

func TestDescribe_UnknownCategoryPanics(t *testing.T) {
	assert.Panics(t, func() { Describe(Category("groceries")) })

	_, ok := Lookup(Category("groceries"))
	assert.False(t, ok)
}

func TestEveryCategoryHasMetadata(t *testing.T) {
	for _, c := range Categories() {
		info, ok := Lookup(c)
		require.True(t, ok, "category %s", c)
		assert.NotEmpty(t, info.Label)
		assert.NotEmpty(t, info.ColorToken)
		assert.NotEmpty(t, info.BgColorToken)
		assert.NotEmpty(t, info.IconRef)
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Category
		wantErr bool
	}{
		{name: "exact", input: "food", want: CategoryFood},
		{name: "mixed case and spaces", input: "  Entertainment ", want: CategoryEntertainment},
		{name: "unknown", input: "groceries", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategory_Label(t *testing.T) {
	assert.Equal(t, "Debt Payments", CategoryDebt.Label())
	assert.Equal(t, "legacy", Category("legacy").Label())
}
