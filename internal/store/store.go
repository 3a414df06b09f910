// Package store loads categorization rules from YAML files.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"

	"gopkg.in/yaml.v3"
)

// Default file names looked up when none is configured.
const (
	DefaultCategoriesFile = "categories.yaml"
	DefaultCreditorsFile  = "creditors.yaml"
)

// CategoryStore manages loading of category data.
type CategoryStore struct {
	CategoriesFile string
	CreditorsFile  string
	logger         logging.Logger
}

// NewCategoryStore creates a new store for category-related data.
func NewCategoryStore(categoriesFile, creditorsFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		CreditorsFile:  creditorsFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations:
// the path itself, ./config, ./.finsight and $HOME/.finsight.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err != nil {
			return "", err
		}
		return filename, nil
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
		filepath.Join(".finsight", filename),
	}
	if home, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(home, ".finsight", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", fs.ErrNotExist
}

// readConfigFile returns nil data without error when the file does not exist.
func (s *CategoryStore) readConfigFile(filename, fallback string) ([]byte, string, error) {
	if filename == "" {
		filename = fallback
	}
	path, err := s.FindConfigFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("Configuration file not found", logging.F(logging.FieldFile, filename))
			return nil, filename, nil
		}
		return nil, filename, fmt.Errorf("error resolving %s: %w", filename, err)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, path, fmt.Errorf("error reading %s: %w", path, err)
	}
	return data, path, nil
}

// LoadCategories loads keyword rules. The file may hold either a top-level
// "categories:" list or a bare list. A missing file yields no rules.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	data, path, err := s.readConfigFile(s.CategoriesFile, DefaultCategoriesFile)
	if err != nil || data == nil {
		return []models.CategoryConfig{}, err
	}

	var cfg models.CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err == nil && len(cfg.Categories) > 0 {
		s.logger.Debug("Loaded categories",
			logging.F(logging.FieldFile, path),
			logging.F(logging.FieldCount, len(cfg.Categories)))
		return cfg.Categories, nil
	}

	var categories []models.CategoryConfig
	if err := yaml.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("error parsing categories file %s: %w", path, err)
	}
	if categories == nil {
		categories = []models.CategoryConfig{}
	}
	s.logger.Debug("Loaded categories from bare list",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(categories)))
	return categories, nil
}

// LoadCreditorMappings loads the exact creditor name to category map.
// A missing file yields an empty map.
func (s *CategoryStore) LoadCreditorMappings() (map[string]string, error) {
	data, path, err := s.readConfigFile(s.CreditorsFile, DefaultCreditorsFile)
	if err != nil {
		return nil, err
	}
	mappings := map[string]string{}
	if data == nil {
		return mappings, nil
	}
	if err := yaml.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("error parsing creditor mappings %s: %w", path, err)
	}
	s.logger.Debug("Loaded creditor mappings",
		logging.F(logging.FieldFile, path),
		logging.F(logging.FieldCount, len(mappings)))
	return mappings, nil
}
