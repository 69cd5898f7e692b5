package ofx

import (
	"fmt"
	"strings"

	"github.com/Akash50142/expense-tracker/internal/model"
)

// fingerprint identifies an expense by date, amount in cents and
// normalized description. The same charge imported twice from overlapping
// statements produces the same fingerprint.
func fingerprint(date string, amount float64, description string) string {
	return fmt.Sprintf("%s|%.2f|%s", date, amount, strings.ToLower(strings.Join(strings.Fields(description), " ")))
}

// Dedupe drops inputs that match an existing expense or an earlier input.
// It returns the fresh inputs in their original order and the number dropped.
func Dedupe(existing []model.Expense, inputs []model.ExpenseInput) ([]model.ExpenseInput, int) {
	seen := make(map[string]struct{}, len(existing)+len(inputs))
	for _, e := range existing {
		seen[fingerprint(e.Date, e.Amount, e.Description)] = struct{}{}
	}

	fresh := make([]model.ExpenseInput, 0, len(inputs))
	dropped := 0
	for _, in := range inputs {
		key := fingerprint(in.Date, in.Amount, in.Description)
		if _, dup := seen[key]; dup {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		fresh = append(fresh, in)
	}
	return fresh, dropped
}
