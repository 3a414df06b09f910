package calc

import (
	"bytes"
	"errors"
	"testing"

	"finsight/insights/internal/calculator"
	"finsight/insights/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name  string
		calc  string
		flags Flags
		want  string
	}{
		{"dso default days", "dso", Flags{Receivables: "25000", Revenue: "300000"}, "dso: 30.42\n"},
		{"dso explicit days", "DSO", Flags{Receivables: "100", Revenue: "1000", Days: 30}, "dso: 3.00\n"},
		{"bfr", "bfr", Flags{Inventory: "100", Receivables: "50", Payables: "30"}, "bfr: 120.00\n"},
		{"bfr negative result", "bfr", Flags{Inventory: "10", Payables: "30"}, "bfr: -20.00\n"},
		{"roi", "roi", Flags{Gain: "15000", Cost: "10000"}, "roi: 50.00\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, Run(tt.calc, tt.flags, &out))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer

	err := Run("npv", Flags{}, &out)
	assert.True(t, errors.Is(err, calculator.ErrUnknownCalculator))

	err = Run("roi", Flags{Gain: "abc", Cost: "1"}, &out)
	assert.ErrorContains(t, err, "--gain")

	err = Run("dso", Flags{Receivables: "10", Revenue: "0"}, &out)
	var verr *parsererror.ValidationError
	assert.True(t, errors.As(err, &verr))

	assert.Empty(t, out.String())
}

func TestCmd_RequiresOneArgument(t *testing.T) {
	assert.Error(t, Cmd.Args(Cmd, nil))
	assert.Error(t, Cmd.Args(Cmd, []string{"dso", "roi"}))
	assert.NoError(t, Cmd.Args(Cmd, []string{"dso"}))
}
