package model

// ExpenseFilter selects expenses. Every criterion is optional and all set
// criteria must hold. Dates compare as zero-padded ISO strings, which orders
// them chronologically.
type ExpenseFilter struct {
	MinAmount  *float64
	MaxAmount  *float64
	StartDate  string
	EndDate    string
	Categories []Category
}

// IsEmpty reports whether no criterion is set.
func (f ExpenseFilter) IsEmpty() bool {
	return f.StartDate == "" && f.EndDate == "" && len(f.Categories) == 0 &&
		f.MinAmount == nil && f.MaxAmount == nil
}

// Matches reports whether e satisfies every criterion of f.
func (f ExpenseFilter) Matches(e Expense) bool {
	if f.StartDate != "" && e.Date < f.StartDate {
		return false
	}
	if f.EndDate != "" && e.Date > f.EndDate {
		return false
	}
	if len(f.Categories) > 0 && !containsCategory(f.Categories, e.Category) {
		return false
	}
	if f.MinAmount != nil && e.Amount < *f.MinAmount {
		return false
	}
	if f.MaxAmount != nil && e.Amount > *f.MaxAmount {
		return false
	}
	return true
}

func containsCategory(set []Category, c Category) bool {
	for _, candidate := range set {
		if candidate == c {
			return true
		}
	}
	return false
}
