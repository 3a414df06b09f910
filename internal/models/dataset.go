package models

// MonthlyPoint is one entry of the monthly revenue/expense/cash-flow series.
type MonthlyPoint struct {
	Month    string  `json:"month" csv:"month" yaml:"month"`
	Revenue  float64 `json:"revenue" csv:"revenue" yaml:"revenue"`
	Expenses float64 `json:"expenses" csv:"expenses" yaml:"expenses"`
	CashFlow float64 `json:"cashFlow" csv:"cash_flow" yaml:"cashFlow"`
}

// CategorySlice is one entry of the expense-by-category breakdown.
// Percentage is preformatted, e.g. "42.5%".
type CategorySlice struct {
	Name       string  `json:"name" csv:"name" yaml:"name"`
	Value      float64 `json:"value" csv:"value" yaml:"value"`
	Percentage string  `json:"percentage" csv:"percentage" yaml:"percentage"`
}

// ClientShare is one entry of the top-clients ranking.
type ClientShare struct {
	Name       string  `json:"name" csv:"name" yaml:"name"`
	Revenue    float64 `json:"revenue" csv:"revenue" yaml:"revenue"`
	Percentage float64 `json:"percentage" csv:"percentage" yaml:"percentage"`
}

// MarginPoint is one entry of the monthly margin series.
type MarginPoint struct {
	Month         string  `json:"month" csv:"month" yaml:"month"`
	Revenue       float64 `json:"revenue" csv:"revenue" yaml:"revenue"`
	Expenses      float64 `json:"expenses" csv:"expenses" yaml:"expenses"`
	Margin        float64 `json:"margin" csv:"margin" yaml:"margin"`
	MarginPercent float64 `json:"marginPercent" csv:"margin_percent" yaml:"marginPercent"`
}

// ChartDataset groups the four chart-ready views derived from one batch of records.
type ChartDataset struct {
	MonthlyData       []MonthlyPoint  `json:"monthlyData" yaml:"monthlyData"`
	CategoryBreakdown []CategorySlice `json:"categoryBreakdown" yaml:"categoryBreakdown"`
	TopClients        []ClientShare   `json:"topClients" yaml:"topClients"`
	MarginData        []MarginPoint   `json:"marginData" yaml:"marginData"`
}

// NewChartDataset returns a dataset with empty, non-nil collections so that it
// serializes as empty arrays.
func NewChartDataset() ChartDataset {
	return ChartDataset{
		MonthlyData:       []MonthlyPoint{},
		CategoryBreakdown: []CategorySlice{},
		TopClients:        []ClientShare{},
		MarginData:        []MarginPoint{},
	}
}

// RecordWarning describes a record that was skipped during validation.
type RecordWarning struct {
	Index  int    `json:"index" yaml:"index"`
	Field  string `json:"field" yaml:"field"`
	Value  string `json:"value" yaml:"value"`
	Reason string `json:"reason" yaml:"reason"`
}

// AggregationResult is the dataset plus the bookkeeping of which records were used.
type AggregationResult struct {
	Dataset  ChartDataset    `json:"dataset" yaml:"dataset"`
	Warnings []RecordWarning `json:"warnings" yaml:"warnings"`
	Accepted int             `json:"accepted" yaml:"accepted"`
	Skipped  int             `json:"skipped" yaml:"skipped"`
}

// HasData reports whether at least one record survived validation.
func (r AggregationResult) HasData() bool {
	return r.Accepted > 0
}
