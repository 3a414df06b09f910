package categorizer

import (
	"context"
	"strings"

	"finsight/insights/internal/logging"
)

// DirectMappingStrategy assigns categories from exact creditor name matches.
type DirectMappingStrategy struct {
	creditorMappings map[string]string
	logger           logging.Logger
}

// NewDirectMappingStrategy loads the creditor mappings from the store.
// Load failures are logged and leave the strategy empty.
func NewDirectMappingStrategy(store CategoryStoreInterface, logger logging.Logger) *DirectMappingStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &DirectMappingStrategy{
		creditorMappings: map[string]string{},
		logger:           logger,
	}

	mappings, err := store.LoadCreditorMappings()
	if err != nil {
		logger.WithError(err).Warn("Failed to load creditor mappings")
		return s
	}
	for name, category := range mappings {
		s.creditorMappings[normalize(name)] = category
	}
	logger.Debug("Loaded creditor mappings", logging.F(logging.FieldCount, len(s.creditorMappings)))
	return s
}

// Name returns the name of this strategy.
func (s *DirectMappingStrategy) Name() string {
	return "DirectMapping"
}

// Categorize implements CategorizationStrategy.
func (s *DirectMappingStrategy) Categorize(_ context.Context, tx Transaction) (string, bool, error) {
	party := normalize(tx.PartyName)
	if party == "" {
		return "", false, nil
	}
	category, ok := s.creditorMappings[party]
	return category, ok, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
