// Package container provides dependency injection for the finsight application.
// It centralizes the creation and wiring of all application dependencies.
package container

import (
	"fmt"

	"finsight/insights/internal/aggregator"
	"finsight/insights/internal/batch"
	"finsight/insights/internal/categorizer"
	"finsight/insights/internal/config"
	"finsight/insights/internal/factory"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/report"
	"finsight/insights/internal/server"
	"finsight/insights/internal/store"
)

// Container holds all application dependencies. It is immutable after creation.
type Container struct {
	logger      logging.Logger
	config      *config.Config
	parsers     *factory.Factory
	loader      *batch.Loader
	aggregator  *aggregator.Aggregator
	categorizer *categorizer.Categorizer
	generator   *report.Generator
}

// NewContainer creates and wires all application dependencies with a logrus
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format))
}

// NewContainerWithLogger wires the dependencies around an existing logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	parsers := factory.New(logger, factory.Options{CSVDelimiter: cfg.Delimiter()})

	var cat *categorizer.Categorizer
	if cfg.Categorization.Enabled {
		categoryStore := store.NewCategoryStore(cfg.Categorization.File, cfg.Categorization.CreditorsFile, logger)
		cat = categorizer.NewCategorizer(categoryStore, logger)
		logger.Info("Category enrichment enabled", logging.F(logging.FieldFile, cfg.Categorization.File))
	} else {
		logger.Debug("Category enrichment disabled")
	}

	return &Container{
		logger:      logger,
		config:      cfg,
		parsers:     parsers,
		loader:      batch.NewLoader(parsers, logger, cfg.Ingest.MaxConcurrency),
		aggregator:  aggregator.NewAggregator(logger, cfg.Aggregation.TopN),
		categorizer: cat,
		generator:   report.NewGenerator(logger, cfg.Delimiter()),
	}, nil
}

// GetLogger returns the logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetParsers returns the parser factory.
func (c *Container) GetParsers() *factory.Factory {
	return c.parsers
}

// GetLoader returns the multi-file loader.
func (c *Container) GetLoader() *batch.Loader {
	return c.loader
}

// GetAggregator returns the aggregator.
func (c *Container) GetAggregator() *aggregator.Aggregator {
	return c.aggregator
}

// GetCategorizer returns the categorizer, or nil when enrichment is disabled.
func (c *Container) GetCategorizer() *categorizer.Categorizer {
	return c.categorizer
}

// GetGenerator returns the report generator.
func (c *Container) GetGenerator() *report.Generator {
	return c.generator
}

// NewWebAPI builds the HTTP API from the container's dependencies.
func (c *Container) NewWebAPI(addr string) *server.WebAPI {
	if addr == "" {
		addr = c.config.Server.Addr
	}
	return server.NewWebAPI(server.Config{
		Addr:            addr,
		ShutdownTimeout: c.config.Server.ShutdownTimeout,
		MaxUploadBytes:  c.config.Server.MaxUploadBytes,
		Dependencies: server.Dependencies{
			Logger:      c.logger,
			Parsers:     c.parsers,
			Aggregator:  c.aggregator,
			Generator:   c.generator,
			Categorizer: c.categorizer,
		},
	})
}
