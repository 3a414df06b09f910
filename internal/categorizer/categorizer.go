// Package categorizer fills in missing expense categories before aggregation.
// Strategies run in order: direct creditor mapping, then keyword rules.
package categorizer

import (
	"context"
	"strings"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
)

// Categorizer applies its strategies to records lacking a category. It is
// read-only after construction and safe for concurrent use.
type Categorizer struct {
	strategies []CategorizationStrategy
	logger     logging.Logger
}

// NewCategorizer builds a Categorizer with the default strategy chain.
func NewCategorizer(store CategoryStoreInterface, logger logging.Logger) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return NewCategorizerWithStrategies(logger,
		NewDirectMappingStrategy(store, logger),
		NewKeywordStrategy(store, logger),
	)
}

// NewCategorizerWithStrategies builds a Categorizer from explicit strategies.
func NewCategorizerWithStrategies(logger logging.Logger, strategies ...CategorizationStrategy) *Categorizer {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Categorizer{strategies: strategies, logger: logger}
}

// Categorize runs the strategies in order and returns the first match.
func (c *Categorizer) Categorize(ctx context.Context, tx Transaction) (string, bool) {
	for _, s := range c.strategies {
		category, ok, err := s.Categorize(ctx, tx)
		if err != nil {
			c.logger.WithError(err).Warn("Categorization strategy failed",
				logging.F("strategy", s.Name()))
			continue
		}
		if ok {
			c.logger.Debug("Transaction categorized",
				logging.F("strategy", s.Name()),
				logging.F(logging.FieldCategory, category))
			return category, true
		}
	}
	return "", false
}

// Enrich returns a copy of records where expense records without a category
// get one from the strategies. Income records and records that already carry
// a category are left untouched. The second result is the number of records
// that were categorized.
func (c *Categorizer) Enrich(ctx context.Context, records []models.RawRecord) ([]models.RawRecord, int) {
	out := make([]models.RawRecord, len(records))
	copy(out, records)

	enriched := 0
	for i := range out {
		if ctx.Err() != nil {
			break
		}
		r := &out[i]
		if strings.TrimSpace(r.Category) != "" {
			continue
		}
		if t, err := models.ParseRecordType(r.Type); err != nil || t != models.RecordTypeExpense {
			continue
		}
		if category, ok := c.Categorize(ctx, Transaction{PartyName: r.Counterparty, Description: r.Description}); ok {
			r.Category = category
			enriched++
		}
	}

	c.logger.Info("Enriched expense categories",
		logging.F(logging.FieldCount, len(records)),
		logging.F("categorized", enriched))
	return out, enriched
}
