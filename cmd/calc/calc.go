// Package calc implements the calc command for the working-capital calculators.
package calc

import (
	"fmt"
	"io"
	"strings"

	"finsight/insights/internal/calculator"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Flags holds the calculator inputs as entered on the command line.
type Flags struct {
	Receivables string
	Revenue     string
	Days        int
	Inventory   string
	Payables    string
	Gain        string
	Cost        string
}

var flags Flags

// Cmd represents the calc command
var Cmd = &cobra.Command{
	Use:       "calc <" + strings.Join(calculator.Names(), "|") + ">",
	Short:     "Compute DSO, BFR or ROI",
	ValidArgs: calculator.Names(),
	Long: `Calc runs one of the financial calculators:

  dso  receivables / revenue * days
  bfr  inventory + receivables - payables
  roi  (gain - cost) / cost * 100

Examples:
  finsight calc dso --receivables 25000 --revenue 300000
  finsight calc roi --gain 15000 --cost 10000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(args[0], flags, cmd.OutOrStdout())
	},
}

func init() {
	f := Cmd.Flags()
	f.StringVar(&flags.Receivables, "receivables", "0", "Accounts receivable")
	f.StringVar(&flags.Revenue, "revenue", "0", "Revenue over the period")
	f.IntVar(&flags.Days, "days", calculator.DefaultDays, "Days in the DSO period")
	f.StringVar(&flags.Inventory, "inventory", "0", "Inventory value")
	f.StringVar(&flags.Payables, "payables", "0", "Accounts payable")
	f.StringVar(&flags.Gain, "gain", "0", "Investment gain")
	f.StringVar(&flags.Cost, "cost", "0", "Investment cost")
}

// Run parses the flags, computes the named calculator and prints the result.
func Run(name string, f Flags, stdout io.Writer) error {
	in, err := f.inputs()
	if err != nil {
		return err
	}
	value, err := calculator.Compute(name, in)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(stdout, "%s: %s\n", strings.ToLower(strings.TrimSpace(name)), value.StringFixed(2))
	return err
}

func (f Flags) inputs() (calculator.Inputs, error) {
	in := calculator.Inputs{Days: f.Days}
	fields := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"receivables", f.Receivables, &in.Receivables},
		{"revenue", f.Revenue, &in.Revenue},
		{"inventory", f.Inventory, &in.Inventory},
		{"payables", f.Payables, &in.Payables},
		{"gain", f.Gain, &in.Gain},
		{"cost", f.Cost, &in.Cost},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.value) == "" {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(field.value))
		if err != nil {
			return in, fmt.Errorf("invalid --%s %q: %w", field.name, field.value, err)
		}
		*field.dst = d
	}
	return in, nil
}
