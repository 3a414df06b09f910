package aggregator

import (
	"fmt"
	"testing"
	"time"

	"finsight/insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func income(date time.Time, amount int64, counterparty string) models.TransactionRecord {
	return models.TransactionRecord{
		Date:         date,
		Amount:       decimal.NewFromInt(amount),
		Type:         models.RecordTypeIncome,
		Counterparty: counterparty,
	}
}

func expense(date time.Time, amount int64, category string) models.TransactionRecord {
	return models.TransactionRecord{
		Date:     date,
		Amount:   decimal.NewFromInt(amount),
		Type:     models.RecordTypeExpense,
		Category: category,
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	ds := Aggregate(nil)

	assert.Empty(t, ds.MonthlyData)
	assert.Empty(t, ds.CategoryBreakdown)
	assert.Empty(t, ds.TopClients)
	assert.Empty(t, ds.MarginData)
	assert.NotNil(t, ds.MonthlyData, "empty collections must serialize as arrays")
}

func TestAggregate_SingleIncome(t *testing.T) {
	ds := Aggregate([]models.TransactionRecord{income(day(2026, time.March, 15), 1000, "Acme")})

	assert.Equal(t, []models.MonthlyPoint{{Month: "2026-03", Revenue: 1000, Expenses: 0, CashFlow: 1000}}, ds.MonthlyData)
	assert.Equal(t, []models.ClientShare{{Name: "Acme", Revenue: 1000, Percentage: 100}}, ds.TopClients)
	assert.Empty(t, ds.CategoryBreakdown)
	assert.Equal(t, []models.MarginPoint{{Month: "2026-03", Revenue: 1000, Expenses: 0, Margin: 1000, MarginPercent: 100}}, ds.MarginData)
}

func TestAggregate_SingleExpense(t *testing.T) {
	ds := Aggregate([]models.TransactionRecord{expense(day(2026, time.March, 20), 500, "Rent")})

	assert.Equal(t, []models.CategorySlice{{Name: "Rent", Value: 500, Percentage: "100.0%"}}, ds.CategoryBreakdown)
	assert.Empty(t, ds.TopClients)
	require.Len(t, ds.MarginData, 1)
	assert.Equal(t, float64(0), ds.MarginData[0].MarginPercent, "no revenue means zero margin percent")
	assert.Equal(t, float64(-500), ds.MarginData[0].Margin)
}

func TestAggregate_SameClientAcrossMonths(t *testing.T) {
	ds := Aggregate([]models.TransactionRecord{
		income(day(2026, time.February, 3), 300, "Acme"),
		income(day(2026, time.January, 10), 200, "Acme"),
	})

	require.Len(t, ds.TopClients, 1)
	assert.Equal(t, "Acme", ds.TopClients[0].Name)
	assert.Equal(t, float64(500), ds.TopClients[0].Revenue)

	require.Len(t, ds.MonthlyData, 2)
	assert.Equal(t, "2026-01", ds.MonthlyData[0].Month)
	assert.Equal(t, "2026-02", ds.MonthlyData[1].Month)
}

func TestAggregate_MonthsSortedAcrossYears(t *testing.T) {
	ds := Aggregate([]models.TransactionRecord{
		expense(day(2026, time.January, 1), 10, "Fees"),
		expense(day(2025, time.December, 31), 10, "Fees"),
		expense(day(2025, time.February, 1), 10, "Fees"),
	})

	var months []string
	for _, p := range ds.MonthlyData {
		months = append(months, p.Month)
	}
	assert.Equal(t, []string{"2025-02", "2025-12", "2026-01"}, months)
}

func TestAggregate_Fallbacks(t *testing.T) {
	ds := Aggregate([]models.TransactionRecord{
		{Date: day(2026, time.May, 2), Amount: decimal.NewFromInt(40), Type: models.RecordTypeExpense},
		{Date: day(2026, time.May, 2), Amount: decimal.NewFromInt(70), Type: models.RecordTypeIncome, Description: "Wire 8812"},
		{Date: day(2026, time.May, 2), Amount: decimal.NewFromInt(30), Type: models.RecordTypeIncome},
	})

	require.Len(t, ds.CategoryBreakdown, 1)
	assert.Equal(t, models.DefaultCategory, ds.CategoryBreakdown[0].Name)

	require.Len(t, ds.TopClients, 2)
	assert.Equal(t, "Wire 8812", ds.TopClients[0].Name)
	assert.Equal(t, models.UnknownClient, ds.TopClients[1].Name)
	assert.InDelta(t, 70.0, ds.TopClients[0].Percentage, 1e-9)
	assert.InDelta(t, 30.0, ds.TopClients[1].Percentage, 1e-9)
}

func TestAggregate_TruncatesToTopTen(t *testing.T) {
	var records []models.TransactionRecord
	for i := 1; i <= 14; i++ {
		records = append(records,
			expense(day(2026, time.April, 1), int64(i*10), fmt.Sprintf("cat-%02d", i)),
			income(day(2026, time.April, 1), int64(i*100), fmt.Sprintf("client-%02d", i)),
		)
	}

	ds := Aggregate(records)

	require.Len(t, ds.CategoryBreakdown, 10)
	require.Len(t, ds.TopClients, 10)
	assert.Equal(t, "cat-14", ds.CategoryBreakdown[0].Name)
	assert.Equal(t, "client-14", ds.TopClients[0].Name)

	for i := 1; i < len(ds.CategoryBreakdown); i++ {
		assert.Greater(t, ds.CategoryBreakdown[i-1].Value, ds.CategoryBreakdown[i].Value)
		assert.Greater(t, ds.TopClients[i-1].Revenue, ds.TopClients[i].Revenue)
	}

	var clientShare float64
	for _, c := range ds.TopClients {
		clientShare += c.Percentage
	}
	assert.Less(t, clientShare, 100.0, "truncated ranking covers less than the whole")
}

func TestAggregate_PercentagesSumToHundred(t *testing.T) {
	ds := Aggregate([]models.TransactionRecord{
		expense(day(2026, time.June, 1), 100, "Rent"),
		expense(day(2026, time.June, 2), 50, "Software"),
		expense(day(2026, time.June, 3), 50, "Travel"),
		income(day(2026, time.June, 4), 1, "A"),
		income(day(2026, time.June, 4), 2, "B"),
	})

	assert.Equal(t, "50.0%", ds.CategoryBreakdown[0].Percentage)
	assert.Equal(t, "25.0%", ds.CategoryBreakdown[1].Percentage)
	assert.Equal(t, "Software", ds.CategoryBreakdown[1].Name, "ties are ordered by name")
	assert.Equal(t, "Travel", ds.CategoryBreakdown[2].Name)

	var clientShare float64
	for _, c := range ds.TopClients {
		clientShare += c.Percentage
	}
	assert.InDelta(t, 100.0, clientShare, 1e-9)
}

func TestAggregate_ZeroTotalsGuarded(t *testing.T) {
	ds := Aggregate([]models.TransactionRecord{
		expense(day(2026, time.July, 1), 0, "Rent"),
		income(day(2026, time.July, 1), 0, "Acme"),
	})

	assert.Equal(t, "0%", ds.CategoryBreakdown[0].Percentage)
	assert.Equal(t, float64(0), ds.TopClients[0].Percentage)
	assert.Equal(t, float64(0), ds.MarginData[0].MarginPercent)
}

func TestAggregate_TotalsMatchSeries(t *testing.T) {
	records := []models.TransactionRecord{
		income(day(2026, time.January, 5), 1200, "Acme"),
		income(day(2026, time.February, 5), 800, "Globex"),
		income(day(2026, time.March, 5), 450, "Acme"),
		expense(day(2026, time.January, 9), 300, "Rent"),
		expense(day(2026, time.February, 9), 125, "Software"),
		expense(day(2026, time.March, 9), 300, "Rent"),
	}

	ds := Aggregate(records)

	var revenue, expenses, cashFlow float64
	for _, p := range ds.MonthlyData {
		revenue += p.Revenue
		expenses += p.Expenses
		cashFlow += p.CashFlow
	}
	var clientTotal, categoryTotal float64
	for _, c := range ds.TopClients {
		clientTotal += c.Revenue
	}
	for _, c := range ds.CategoryBreakdown {
		categoryTotal += c.Value
	}

	assert.InDelta(t, revenue, expenses+cashFlow, 1e-9)
	assert.InDelta(t, clientTotal, revenue, 1e-9)
	assert.InDelta(t, categoryTotal, expenses, 1e-9)

	require.Len(t, ds.MarginData, 3)
	assert.InDelta(t, 75.0, ds.MarginData[0].MarginPercent, 1e-9)
}

func TestAggregate_OrderIndependent(t *testing.T) {
	records := []models.TransactionRecord{
		income(day(2026, time.January, 5), 1200, "Acme"),
		expense(day(2026, time.February, 9), 125, "Software"),
		income(day(2026, time.February, 5), 800, "Globex"),
		expense(day(2026, time.January, 9), 300, "Rent"),
	}
	reversed := make([]models.TransactionRecord, len(records))
	for i, r := range records {
		reversed[len(records)-1-i] = r
	}

	assert.Equal(t, Aggregate(records), Aggregate(reversed))
}

func TestAggregateTop_NoLimit(t *testing.T) {
	var records []models.TransactionRecord
	for i := 0; i < 12; i++ {
		records = append(records, expense(day(2026, time.April, 1), 5, fmt.Sprintf("c%d", i)))
	}

	assert.Len(t, AggregateTop(records, 0).CategoryBreakdown, 12)
	assert.Len(t, AggregateTop(records, 3).CategoryBreakdown, 3)
}
