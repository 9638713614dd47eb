// Package export serializes expense sequences to the downloadable CSV
// format: a fixed header, then one row per record with every field wrapped
// in double quotes. Row order follows the input verbatim.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fmorais/spendly/internal/expense"
)

// ErrNoExpenses reports an empty input sequence; no file is produced.
var ErrNoExpenses = errors.New("no expenses to export")

// Header is the fixed column row.
const Header = "Date,Amount,Category,Description"

// CSV renders the records as delimited text. Interior double quotes are
// escaped by doubling; encoding/csv is not used because the format quotes
// every field unconditionally, which the stdlib writer only does when a
// field needs it.
func CSV(expenses []*expense.Expense) (string, error) {
	if len(expenses) == 0 {
		return "", ErrNoExpenses
	}

	var sb strings.Builder

	sb.WriteString(Header)

	for _, e := range expenses {
		fields := []string{
			FormatDate(e.Date),
			FormatCurrency(e.Amount),
			string(e.Category),
			e.Description,
		}

		sb.WriteByte('\n')

		for i, f := range fields {
			if i > 0 {
				sb.WriteByte(',')
			}

			sb.WriteByte('"')
			sb.WriteString(strings.ReplaceAll(f, `"`, `""`))
			sb.WriteByte('"')
		}
	}

	return sb.String(), nil
}

// Filename embeds the current date in the download name.
func Filename(now time.Time) string {
	return fmt.Sprintf("expenses-%s.csv", now.Format(time.DateOnly))
}

// FormatDate renders a canonical day string as "Mar 01, 2024". A date that
// fails to parse is passed through unchanged.
func FormatDate(date string) string {
	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return date
	}

	return day.Format("Jan 02, 2006")
}

// FormatCurrency renders an amount as a US-style dollar string with
// thousands separators, e.g. "$1,234.50".
func FormatCurrency(amount decimal.Decimal) string {
	fixed := amount.StringFixed(2)

	neg := strings.HasPrefix(fixed, "-")
	fixed = strings.TrimPrefix(fixed, "-")

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var sb strings.Builder

	if neg {
		sb.WriteByte('-')
	}

	sb.WriteByte('$')

	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}

		sb.WriteRune(d)
	}

	sb.WriteByte('.')
	sb.WriteString(fracPart)

	return sb.String()
}
