package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"finsight/insights/internal/config"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainer_NilConfig(t *testing.T) {
	_, err := NewContainer(nil)
	assert.Error(t, err)

	_, err = NewContainerWithLogger(nil, nil)
	assert.Error(t, err)
}

func TestNewContainer_Defaults(t *testing.T) {
	cfg := config.Default()
	c, err := NewContainer(cfg)
	require.NoError(t, err)

	assert.NotNil(t, c.GetLogger())
	assert.Same(t, cfg, c.GetConfig())
	assert.NotNil(t, c.GetParsers())
	assert.NotNil(t, c.GetLoader())
	assert.NotNil(t, c.GetAggregator())
	assert.NotNil(t, c.GetGenerator())
	assert.Nil(t, c.GetCategorizer())
}

func TestNewContainer_WithCategorization(t *testing.T) {
	dir := t.TempDir()
	rules := filepath.Join(dir, "rules.yaml")
	require.NoError(t, os.WriteFile(rules, []byte("categories:\n  - name: Rent\n    keywords: [rent]\n"), 0600))

	cfg := config.Default()
	cfg.Categorization.Enabled = true
	cfg.Categorization.File = rules
	cfg.Categorization.CreditorsFile = filepath.Join(dir, "creditors.yaml")

	logger := logging.NewMockLogger()
	c, err := NewContainerWithLogger(cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, c.GetCategorizer())
	assert.True(t, logger.HasEntry("INFO", "Category enrichment enabled"))

	out, n := c.GetCategorizer().Enrich(context.Background(), []models.RawRecord{{Type: "expense", Description: "Rent"}})
	assert.Equal(t, 1, n)
	assert.Equal(t, "Rent", out[0].Category)
}

func TestContainer_CSVDelimiterIsShared(t *testing.T) {
	cfg := config.Default()
	cfg.CSV.Delimiter = ";"
	c, err := NewContainerWithLogger(cfg, nil)
	require.NoError(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "in.csv")
	require.NoError(t, os.WriteFile(file, []byte("date;amount;type\n2026-01-01;5;income\n"), 0600))

	records, err := c.GetLoader().LoadFiles(context.Background(), []string{file}, "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.AmountString("5"), records[0].Amount)
}

func TestContainer_NewWebAPI(t *testing.T) {
	c, err := NewContainerWithLogger(config.Default(), nil)
	require.NoError(t, err)

	api := c.NewWebAPI("")
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
