package cli

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Akash50142/expense-tracker/internal/model"
)

var amountCleaner = strings.NewReplacer("$", "", ",", "", " ", "")

// ParseAmount parses a money amount such as "1,234.50" or "$12", rounded
// to cents.
func ParseAmount(s string) (float64, error) {
	d, err := decimal.NewFromString(amountCleaner.Replace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", model.ErrInvalidAmount, s)
	}
	return d.Round(2).InexactFloat64(), nil
}

// FormatCurrency renders an amount as US dollars with thousands
// separators, e.g. "$1,234.56" or "-$50.00".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercentage renders a fraction as a whole percentage: 0.756 is "76%".
// Halves round up.
func FormatPercentage(fraction float64) string {
	return fmt.Sprintf("%d%%", int(math.Floor(fraction*100+0.5)))
}

// FormatMonth renders a "YYYY-MM" key as "Jan 2024". Unparseable keys are
// returned unchanged.
func FormatMonth(key string) string {
	t, err := time.Parse(model.MonthLayout, key)
	if err != nil {
		return key
	}
	return t.Format("Jan 2006")
}

// FormatDate renders an ISO date as "Jan 2, 2024". Unparseable dates are
// returned unchanged.
func FormatDate(date string) string {
	t, err := model.ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

// FormatChange renders a month-over-month change with an explicit sign.
func FormatChange(change float64) string {
	if change > 0 {
		return "+" + FormatPercentage(change)
	}
	return FormatPercentage(change)
}

// Bar draws a fixed-width utilization bar. Fractions above one fill the bar.
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	filled := int(math.Round(math.Max(0, math.Min(fraction, 1)) * float64(width)))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
