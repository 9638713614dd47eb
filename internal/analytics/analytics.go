// Package analytics derives aggregate views from expense sequences. Every
// function here is pure: inputs are never mutated and results depend only
// on the records and the supplied reference time, so callers may run them
// concurrently on independent snapshots.
package analytics

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/fmorais/spendly/internal/expense"
)

// NoCategory is the sentinel top category for an empty input.
const NoCategory = "N/A"

// SeriesDays is the length of the trailing daily time series.
const SeriesDays = 30

// CategoryTotal is one category's summed spending.
type CategoryTotal struct {
	Category expense.Category
	Total    decimal.Decimal
}

// CategoryTotals sums amounts per category, ordered by descending total.
// Ties keep the order in which the categories were first encountered.
func CategoryTotals(expenses []*expense.Expense) []CategoryTotal {
	totals := make(map[expense.Category]decimal.Decimal)

	var order []expense.Category

	for _, e := range expenses {
		sum, seen := totals[e.Category]
		if !seen {
			order = append(order, e.Category)
		}

		totals[e.Category] = sum.Add(e.Amount)
	}

	result := make([]CategoryTotal, 0, len(order))
	for _, c := range order {
		result = append(result, CategoryTotal{Category: c, Total: totals[c]})
	}

	// Insertion sort keeps equal totals in first-encountered order.
	for i := 1; i < len(result); i++ {
		for j := i; j > 0 && result[j].Total.GreaterThan(result[j-1].Total); j-- {
			result[j], result[j-1] = result[j-1], result[j]
		}
	}

	return result
}

// TotalSpending sums every amount in the sequence, unfiltered.
func TotalSpending(expenses []*expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}

	return total
}

// TopCategory returns the category with the largest total. The second
// return is false when the input is empty; callers display NoCategory.
func TopCategory(expenses []*expense.Expense) (CategoryTotal, bool) {
	totals := CategoryTotals(expenses)
	if len(totals) == 0 {
		return CategoryTotal{}, false
	}

	return totals[0], true
}

// MonthlyTotal sums amounts for records dated in now's calendar month.
// Records whose date fails to parse are skipped individually.
func MonthlyTotal(expenses []*expense.Expense, now time.Time) decimal.Decimal {
	total := decimal.Zero

	for _, e := range expenses {
		day, err := e.Day()
		if err != nil {
			continue
		}

		if day.Year() == now.Year() && day.Month() == now.Month() {
			total = total.Add(e.Amount)
		}
	}

	return total
}

// MonthlyCount counts records dated in now's calendar month.
func MonthlyCount(expenses []*expense.Expense, now time.Time) int {
	count := 0

	for _, e := range expenses {
		day, err := e.Day()
		if err != nil {
			continue
		}

		if day.Year() == now.Year() && day.Month() == now.Month() {
			count++
		}
	}

	return count
}

// Point is one day's bucket in the time series.
type Point struct {
	Date   string
	Amount decimal.Decimal
}

// TimeSeries buckets spending by day over the trailing SeriesDays calendar
// days ending at now, inclusive, emitted oldest to newest. Days without
// expenses appear with a zero amount, so the series always has exactly
// SeriesDays points.
func TimeSeries(expenses []*expense.Expense, now time.Time) []Point {
	series := make([]Point, SeriesDays)
	index := make(map[string]int, SeriesDays)

	for i := 0; i < SeriesDays; i++ {
		day := now.AddDate(0, 0, i-(SeriesDays-1)).Format(time.DateOnly)
		series[i] = Point{Date: day, Amount: decimal.Zero}
		index[day] = i
	}

	for _, e := range expenses {
		i, ok := index[e.Date]
		if !ok {
			continue
		}

		series[i].Amount = series[i].Amount.Add(e.Amount)
	}

	return series
}

// Summary is the dashboard headline view.
type Summary struct {
	TotalSpending     decimal.Decimal
	MonthlySpending   decimal.Decimal
	MonthlyCount      int
	TopCategory       string
	TopCategoryAmount decimal.Decimal
}

// Summarize computes the headline aggregates over one snapshot.
func Summarize(expenses []*expense.Expense, now time.Time) Summary {
	s := Summary{
		TotalSpending:     TotalSpending(expenses),
		MonthlySpending:   MonthlyTotal(expenses, now),
		MonthlyCount:      MonthlyCount(expenses, now),
		TopCategory:       NoCategory,
		TopCategoryAmount: decimal.Zero,
	}

	if top, ok := TopCategory(expenses); ok {
		s.TopCategory = string(top.Category)
		s.TopCategoryAmount = top.Total
	}

	return s
}
