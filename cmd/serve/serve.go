// Package serve implements the serve command, which runs the HTTP API.
package serve

import (
	"context"
	"fmt"

	"finsight/insights/cmd/root"
	"finsight/insights/internal/container"
	"finsight/insights/internal/logging"

	"github.com/spf13/cobra"
)

var addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the aggregation and calculator API over HTTP",
	Long: `Serve starts an HTTP server exposing:

  GET  /healthz
  POST /api/v1/aggregate            JSON, CSV, CAMT.053 XML or multipart upload
  GET  /api/v1/calculators
  POST /api/v1/calculators/{name}   dso, bfr or roi

The server stops gracefully on SIGINT or SIGTERM.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(cmd.Context(), root.GetContainer(), addr)
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from server.addr)")
}

// Run starts the API and blocks until it shuts down.
func Run(ctx context.Context, c *container.Container, addr string) error {
	if c == nil {
		return fmt.Errorf("application container not initialized")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	api := c.NewWebAPI(addr)
	c.GetLogger().Debug("Starting API server", logging.F(logging.FieldOperation, "serve"))
	return api.Start(ctx)
}
