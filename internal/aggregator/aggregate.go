// Package aggregator turns a batch of transaction records into the chart-ready
// datasets of the dashboard: monthly series, category breakdown, top clients and
// monthly margins.
package aggregator

import (
	"sort"

	"finsight/insights/internal/dateutils"
	"finsight/insights/internal/models"

	"github.com/shopspring/decimal"
)

type monthBucket struct {
	income  decimal.Decimal
	expense decimal.Decimal
}

type labelTotal struct {
	name  string
	total decimal.Decimal
}

// Aggregate folds validated records into a ChartDataset, keeping the top 10
// categories and clients. It has no side effects and the input order does not
// affect the result.
func Aggregate(records []models.TransactionRecord) models.ChartDataset {
	return AggregateTop(records, models.TopN)
}

// AggregateTop is Aggregate with a configurable ranking size. A topN below 1
// keeps every entry.
func AggregateTop(records []models.TransactionRecord, topN int) models.ChartDataset {
	monthly := make(map[string]*monthBucket)
	categories := make(map[string]decimal.Decimal)
	clients := make(map[string]decimal.Decimal)

	for _, rec := range records {
		key := dateutils.MonthKey(rec.Date)
		bucket, ok := monthly[key]
		if !ok {
			bucket = &monthBucket{}
			monthly[key] = bucket
		}

		if rec.IsIncome() {
			bucket.income = bucket.income.Add(rec.Amount)
			label := rec.ClientLabel()
			clients[label] = clients[label].Add(rec.Amount)
		} else {
			bucket.expense = bucket.expense.Add(rec.Amount)
			label := rec.CategoryLabel()
			categories[label] = categories[label].Add(rec.Amount)
		}
	}

	totalExpenses := sum(categories)
	totalRevenue := sum(clients)

	ds := models.NewChartDataset()

	months := make([]string, 0, len(monthly))
	for key := range monthly {
		months = append(months, key)
	}
	sort.Strings(months)

	for _, key := range months {
		b := monthly[key]
		margin := b.income.Sub(b.expense)
		marginPercent := decimal.Zero
		if b.income.IsPositive() {
			marginPercent = margin.Div(b.income).Mul(decimal.NewFromInt(100))
		}

		ds.MonthlyData = append(ds.MonthlyData, models.MonthlyPoint{
			Month:    key,
			Revenue:  models.ToFloat(b.income),
			Expenses: models.ToFloat(b.expense),
			CashFlow: models.ToFloat(margin),
		})
		ds.MarginData = append(ds.MarginData, models.MarginPoint{
			Month:         key,
			Revenue:       models.ToFloat(b.income),
			Expenses:      models.ToFloat(b.expense),
			Margin:        models.ToFloat(margin),
			MarginPercent: models.ToFloat(marginPercent),
		})
	}

	for _, c := range rank(categories, topN) {
		ds.CategoryBreakdown = append(ds.CategoryBreakdown, models.CategorySlice{
			Name:       c.name,
			Value:      models.ToFloat(c.total),
			Percentage: models.FormatPercent(c.total, totalExpenses),
		})
	}

	for _, c := range rank(clients, topN) {
		ds.TopClients = append(ds.TopClients, models.ClientShare{
			Name:       c.name,
			Revenue:    models.ToFloat(c.total),
			Percentage: models.ToFloat(models.Percentage(c.total, totalRevenue)),
		})
	}

	return ds
}

func sum(totals map[string]decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range totals {
		total = total.Add(v)
	}
	return total
}

// rank sorts totals descending, ties by name, and keeps the first topN.
func rank(totals map[string]decimal.Decimal, topN int) []labelTotal {
	entries := make([]labelTotal, 0, len(totals))
	for name, total := range totals {
		entries = append(entries, labelTotal{name: name, total: total})
	}

	sort.Slice(entries, func(i, j int) bool {
		if c := entries[i].total.Cmp(entries[j].total); c != 0 {
			return c > 0
		}
		return entries[i].name < entries[j].name
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}
