// Package root contains the root command for the application
package root

import (
	"fmt"
	"strings"

	"finsight/insights/internal/config"
	"finsight/insights/internal/container"
	"finsight/insights/internal/logging"

	"github.com/spf13/cobra"
)

// GlobalFlags are the persistent flags shared by every subcommand.
type GlobalFlags struct {
	ConfigFile string
	LogLevel   string
	LogFormat  string
}

var (
	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "finsight",
		Short: "Turn transaction exports into chart-ready financial datasets.",
		Long: `finsight ingests transaction records (JSON, CSV or CAMT.053 XML) and derives
monthly revenue/expenses, expense categories, top clients and margin series.
It also exposes the same pipeline over HTTP and a set of financial calculators.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	// SharedFlags holds the values of the persistent flags.
	SharedFlags = GlobalFlags{}

	appContainer *container.Container
)

// Init registers the persistent flags on the root command.
func Init() {
	flags := Cmd.PersistentFlags()
	flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches finsight.yaml)")
	flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format: text or json")
}

func setup(cmd *cobra.Command, args []string) error {
	// .env is optional
	_, _ = config.LoadEnv()

	cfg, err := config.InitializeConfig(SharedFlags.ConfigFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	applyFlagOverrides(cfg, SharedFlags)
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flag value: %w", err)
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to build application container: %w", err)
	}
	appContainer = c

	c.GetLogger().Debug("Configuration loaded",
		logging.F(logging.FieldOperation, cmd.Name()))
	return nil
}

func applyFlagOverrides(cfg *config.Config, flags GlobalFlags) {
	if flags.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(flags.LogLevel)
	}
	if flags.LogFormat != "" {
		cfg.Log.Format = strings.ToLower(flags.LogFormat)
	}
}

// GetContainer returns the container built by the root pre-run hook.
// It is nil until a subcommand has started.
func GetContainer() *container.Container {
	return appContainer
}

// SetContainer replaces the application container, mainly for tests.
func SetContainer(c *container.Container) {
	appContainer = c
}
