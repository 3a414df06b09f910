package store

import (
	"maps"

	"finsight/insights/internal/models"
)

// MockCategoryStore is an in-memory CategoryStore for tests.
type MockCategoryStore struct {
	Categories       []models.CategoryConfig
	CreditorMappings map[string]string

	LoadCategoriesError       error
	LoadCreditorMappingsError error
}

// LoadCategories returns the mock categories.
func (m *MockCategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if m.LoadCategoriesError != nil {
		return nil, m.LoadCategoriesError
	}
	return m.Categories, nil
}

// LoadCreditorMappings returns a copy of the mock creditor mappings.
func (m *MockCategoryStore) LoadCreditorMappings() (map[string]string, error) {
	if m.LoadCreditorMappingsError != nil {
		return nil, m.LoadCreditorMappingsError
	}
	result := make(map[string]string, len(m.CreditorMappings))
	maps.Copy(result, m.CreditorMappings)
	return result, nil
}
