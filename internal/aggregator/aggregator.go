package aggregator

import (
	"time"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
)

// Aggregator validates and aggregates record batches, logging every skipped record.
type Aggregator struct {
	logger logging.Logger
	topN   int
}

// NewAggregator creates an Aggregator. A nil logger discards output; a topN below 1
// falls back to models.TopN.
func NewAggregator(logger logging.Logger, topN int) *Aggregator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if topN < 1 {
		topN = models.TopN
	}
	return &Aggregator{
		logger: logger,
		topN:   topN,
	}
}

// Run normalizes raw records and aggregates the ones that survive validation.
// It never fails; callers check HasData on the result.
func (a *Aggregator) Run(raw []models.RawRecord) models.AggregationResult {
	start := time.Now()

	records, warnings := Normalize(raw)
	for _, w := range warnings {
		a.logger.Warn("Skipping malformed record",
			logging.F(logging.FieldRecordIndex, w.Index),
			logging.F(logging.FieldRecordField, w.Field),
			logging.F(logging.FieldReason, w.Reason))
	}
	if warnings == nil {
		warnings = []models.RecordWarning{}
	}

	result := models.AggregationResult{
		Dataset:  AggregateTop(records, a.topN),
		Warnings: warnings,
		Accepted: len(records),
		Skipped:  len(warnings),
	}

	a.logger.Info("Aggregated transaction records",
		logging.F(logging.FieldAccepted, result.Accepted),
		logging.F(logging.FieldSkipped, result.Skipped),
		logging.F(logging.FieldDuration, time.Since(start).Milliseconds()))

	return result
}
