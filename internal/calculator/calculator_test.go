package calculator

import (
	"errors"
	"testing"

	"finsight/insights/internal/parsererror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestDSO(t *testing.T) {
	tests := []struct {
		name        string
		receivables string
		revenue     string
		days        int
		want        string
		wantErr     bool
	}{
		{"quarter", "30000", "90000", 90, "30", false},
		{"default year", "10000", "120000", 0, "30.42", false},
		{"zero receivables", "0", "1000", 30, "0", false},
		{"zero revenue", "100", "0", 30, "", true},
		{"negative revenue", "100", "-5", 30, "", true},
		{"negative receivables", "-1", "100", 30, "", true},
		{"negative days", "1", "100", -30, "", true},
		{"receivables out of range", "1e20000000", "100", 30, "", true},
		{"revenue out of range", "1", "1e-20000000", 30, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DSO(d(tt.receivables), d(tt.revenue), tt.days)
			if tt.wantErr {
				var verr *parsererror.ValidationError
				assert.True(t, errors.As(err, &verr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.True(t, d(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestBFR(t *testing.T) {
	got, err := BFR(d("5000"), d("12000"), d("8000"))
	require.NoError(t, err)
	assert.True(t, d("9000").Equal(got))

	got, err = BFR(d("0"), d("1000"), d("3000"))
	require.NoError(t, err)
	assert.True(t, d("-2000").Equal(got))

	_, err = BFR(d("0"), d("0"), d("-1"))
	var verr *parsererror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "payables", verr.Field)
}

func TestBFR_ReportsFirstInvalidInputInOrder(t *testing.T) {
	for i := 0; i < 20; i++ {
		_, err := BFR(d("-1"), d("-2"), d("-3"))
		var verr *parsererror.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "inventory", verr.Field)
	}

	_, err := BFR(d("0"), d("-2"), d("-3"))
	var verr *parsererror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "receivables", verr.Field)
}

func TestROI(t *testing.T) {
	got, err := ROI(d("15000"), d("10000"))
	require.NoError(t, err)
	assert.True(t, d("50").Equal(got))

	got, err = ROI(d("5000"), d("10000"))
	require.NoError(t, err)
	assert.True(t, d("-50").Equal(got))

	got, err = ROI(d("1"), d("3"))
	require.NoError(t, err)
	assert.True(t, d("-66.67").Equal(got))

	_, err = ROI(d("100"), d("0"))
	assert.Error(t, err)
	_, err = ROI(d("-100"), d("10"))
	assert.Error(t, err)
	_, err = ROI(d("1"), d("1e20000000"))
	var verr *parsererror.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "cost", verr.Field)
}

func TestCompute(t *testing.T) {
	got, err := Compute(" ROI ", Inputs{Gain: d("200"), Cost: d("100")})
	require.NoError(t, err)
	assert.True(t, d("100").Equal(got))

	got, err = Compute("dso", Inputs{Receivables: d("50"), Revenue: d("100"), Days: 30})
	require.NoError(t, err)
	assert.True(t, d("15").Equal(got))

	got, err = Compute("bfr", Inputs{Inventory: d("1"), Receivables: d("2"), Payables: d("3")})
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = Compute("npv", Inputs{})
	assert.ErrorIs(t, err, ErrUnknownCalculator)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"bfr", "dso", "roi"}, Names())
}
