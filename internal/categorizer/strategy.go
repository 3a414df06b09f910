package categorizer

import (
	"context"

	"finsight/insights/internal/models"
)

// Transaction is the view of a record a strategy categorizes.
type Transaction struct {
	PartyName   string
	Description string
}

// CategorizationStrategy is one way of assigning a category.
type CategorizationStrategy interface {
	// Categorize returns the category name and whether the strategy matched.
	Categorize(ctx context.Context, tx Transaction) (string, bool, error)

	// Name returns the name of this strategy for logging.
	Name() string
}

// CategoryStoreInterface is the subset of store.CategoryStore the strategies need.
type CategoryStoreInterface interface {
	LoadCategories() ([]models.CategoryConfig, error)
	LoadCreditorMappings() (map[string]string, error)
}
