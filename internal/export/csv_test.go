package export_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmorais/spendly/internal/expense"
	"github.com/fmorais/spendly/internal/export"
)

func TestCSV_QuotingAndFormatting(t *testing.T) {
	expenses := []*expense.Expense{
		{
			Date:        "2024-03-01",
			Amount:      decimal.NewFromFloat(12.5),
			Category:    expense.CategoryFood,
			Description: `Lunch "special"`,
		},
	}

	got, err := export.CSV(expenses)
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Date,Amount,Category,Description", lines[0])
	assert.Equal(t, `"Mar 01, 2024","$12.50","Food","Lunch ""special"""`, lines[1])
}

func TestCSV_PreservesInputOrder(t *testing.T) {
	expenses := []*expense.Expense{
		{Date: "2024-03-02", Amount: decimal.NewFromInt(2), Category: expense.CategoryBills, Description: "second"},
		{Date: "2024-03-01", Amount: decimal.NewFromInt(1), Category: expense.CategoryFood, Description: "first"},
	}

	got, err := export.CSV(expenses)
	require.NoError(t, err)

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "second")
	assert.Contains(t, lines[2], "first")
}

func TestCSV_EmptyInput(t *testing.T) {
	_, err := export.CSV(nil)
	assert.ErrorIs(t, err, export.ErrNoExpenses)
}

func TestCSV_MalformedDatePassedThrough(t *testing.T) {
	expenses := []*expense.Expense{
		{Date: "03/01/2024", Amount: decimal.NewFromInt(5), Category: expense.CategoryOther, Description: "odd date"},
	}

	got, err := export.CSV(expenses)
	require.NoError(t, err)
	assert.Contains(t, got, `"03/01/2024"`)
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, time.March, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "expenses-2024-03-01.csv", export.Filename(now))
}

func TestFormatCurrency(t *testing.T) {
	type testCase struct {
		amount string
		want   string
	}

	tests := []testCase{
		{amount: "12.5", want: "$12.50"},
		{amount: "0.05", want: "$0.05"},
		{amount: "1234.56", want: "$1,234.56"},
		{amount: "1234567", want: "$1,234,567.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.amount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, export.FormatCurrency(d))
		})
	}
}
