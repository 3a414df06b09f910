package categorizer

import (
	"context"
	"strings"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
)

// KeywordStrategy implements categorization using keyword pattern matching
// from category configuration loaded from YAML files. Rules are tried in file
// order and the first matching keyword wins.
type KeywordStrategy struct {
	categories []models.CategoryConfig
	logger     logging.Logger
}

// NewKeywordStrategy creates a new KeywordStrategy instance.
func NewKeywordStrategy(store CategoryStoreInterface, logger logging.Logger) *KeywordStrategy {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	s := &KeywordStrategy{categories: []models.CategoryConfig{}, logger: logger}

	categories, err := store.LoadCategories()
	if err != nil {
		logger.WithError(err).Warn("Failed to load categories")
		return s
	}
	for _, c := range categories {
		rule := models.CategoryConfig{Name: strings.TrimSpace(c.Name)}
		for _, k := range c.Keywords {
			if k = strings.ToUpper(strings.TrimSpace(k)); k != "" {
				rule.Keywords = append(rule.Keywords, k)
			}
		}
		if rule.Name != "" && len(rule.Keywords) > 0 {
			s.categories = append(s.categories, rule)
		}
	}
	logger.Debug("Loaded keyword rules", logging.F(logging.FieldCount, len(s.categories)))
	return s
}

// Name returns the name of this strategy.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Categorize implements CategorizationStrategy. Matching is case-insensitive
// against the party name and the description.
func (s *KeywordStrategy) Categorize(_ context.Context, tx Transaction) (string, bool, error) {
	party := strings.ToUpper(tx.PartyName)
	description := strings.ToUpper(tx.Description)
	if strings.TrimSpace(party) == "" && strings.TrimSpace(description) == "" {
		return "", false, nil
	}

	for _, c := range s.categories {
		for _, keyword := range c.Keywords {
			if strings.Contains(party, keyword) || strings.Contains(description, keyword) {
				return c.Name, true, nil
			}
		}
	}
	return "", false, nil
}
