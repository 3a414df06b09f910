// Package calculator implements the working-capital calculators: days sales
// outstanding (DSO), working-capital requirement (BFR) and return on investment (ROI).
package calculator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"finsight/insights/internal/models"
	"finsight/insights/internal/parsererror"

	"github.com/shopspring/decimal"
)

// DefaultDays is the DSO period when none is given.
const DefaultDays = 365

// Results are rounded to this many decimal places.
const resultPlaces = 2

var hundred = decimal.NewFromInt(100)

// Inputs carries the values of every calculator; each one reads the fields it needs.
type Inputs struct {
	Receivables decimal.Decimal `json:"receivables"`
	Revenue     decimal.Decimal `json:"revenue"`
	Days        int             `json:"days"`
	Inventory   decimal.Decimal `json:"inventory"`
	Payables    decimal.Decimal `json:"payables"`
	Gain        decimal.Decimal `json:"gain"`
	Cost        decimal.Decimal `json:"cost"`
}

// DSO returns receivables / revenue * days.
func DSO(receivables, revenue decimal.Decimal, days int) (decimal.Decimal, error) {
	if err := nonNegative("receivables", receivables); err != nil {
		return decimal.Zero, err
	}
	if err := inRange("revenue", revenue); err != nil {
		return decimal.Zero, err
	}
	if !revenue.IsPositive() {
		return decimal.Zero, &parsererror.ValidationError{Field: "revenue", Reason: "must be greater than zero"}
	}
	if days < 0 {
		return decimal.Zero, &parsererror.ValidationError{Field: "days", Reason: "must not be negative"}
	}
	if days == 0 {
		days = DefaultDays
	}
	return receivables.Div(revenue).Mul(decimal.NewFromInt(int64(days))).Round(resultPlaces), nil
}

// BFR returns inventory + receivables - payables. The result may be negative.
func BFR(inventory, receivables, payables decimal.Decimal) (decimal.Decimal, error) {
	inputs := []struct {
		name  string
		value decimal.Decimal
	}{
		{"inventory", inventory},
		{"receivables", receivables},
		{"payables", payables},
	}
	for _, in := range inputs {
		if err := nonNegative(in.name, in.value); err != nil {
			return decimal.Zero, err
		}
	}
	return inventory.Add(receivables).Sub(payables).Round(resultPlaces), nil
}

// ROI returns (gain - cost) / cost * 100.
func ROI(gain, cost decimal.Decimal) (decimal.Decimal, error) {
	if err := nonNegative("gain", gain); err != nil {
		return decimal.Zero, err
	}
	if err := inRange("cost", cost); err != nil {
		return decimal.Zero, err
	}
	if !cost.IsPositive() {
		return decimal.Zero, &parsererror.ValidationError{Field: "cost", Reason: "must be greater than zero"}
	}
	return gain.Sub(cost).Div(cost).Mul(hundred).Round(resultPlaces), nil
}

type calculatorFunc func(Inputs) (decimal.Decimal, error)

var calculators = map[string]calculatorFunc{
	"dso": func(in Inputs) (decimal.Decimal, error) { return DSO(in.Receivables, in.Revenue, in.Days) },
	"bfr": func(in Inputs) (decimal.Decimal, error) { return BFR(in.Inventory, in.Receivables, in.Payables) },
	"roi": func(in Inputs) (decimal.Decimal, error) { return ROI(in.Gain, in.Cost) },
}

// Names lists the available calculators in alphabetical order.
func Names() []string {
	names := make([]string, 0, len(calculators))
	for name := range calculators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ErrUnknownCalculator is returned by Compute for unknown names.
var ErrUnknownCalculator = errors.New("unknown calculator")

// Compute runs the named calculator.
func Compute(name string, in Inputs) (decimal.Decimal, error) {
	fn, ok := calculators[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w %q (available: %s)", ErrUnknownCalculator, name, strings.Join(Names(), ", "))
	}
	return fn(in)
}

func inRange(field string, v decimal.Decimal) error {
	if err := models.CheckMagnitude(v); err != nil {
		return &parsererror.ValidationError{Field: field, Reason: err.Error()}
	}
	return nil
}

func nonNegative(field string, v decimal.Decimal) error {
	if err := inRange(field, v); err != nil {
		return err
	}
	if v.IsNegative() {
		return &parsererror.ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}
