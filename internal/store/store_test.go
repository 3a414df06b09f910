package store

import (
	"os"
	"path/filepath"
	"testing"

	"finsight/insights/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func newTestStore(dir string) *CategoryStore {
	return NewCategoryStore(
		filepath.Join(dir, "categories.yaml"),
		filepath.Join(dir, "creditors.yaml"),
		nil)
}

func TestNewCategoryStore(t *testing.T) {
	s := NewCategoryStore("categories.yaml", "creditors.yaml", nil)
	assert.Equal(t, "categories.yaml", s.CategoriesFile)
	assert.Equal(t, "creditors.yaml", s.CreditorsFile)
	assert.NotNil(t, s.logger)
}

func TestFindConfigFile(t *testing.T) {
	dir := t.TempDir()
	testFile := filepath.Join(dir, "test.yaml")
	writeFile(t, testFile, "test content")

	s := NewCategoryStore("", "", nil)

	file, err := s.FindConfigFile(testFile)
	assert.NoError(t, err)
	assert.Equal(t, testFile, file)

	_, err = s.FindConfigFile(filepath.Join(dir, "nonexistent.yaml"))
	assert.Error(t, err)
}

func TestLoadCategories_Envelope(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "categories.yaml"), `categories:
  - name: Rent
    keywords: ["landlord", "rent"]
  - name: Software
    keywords: ["github", "jetbrains"]
`)

	cats, err := newTestStore(dir).LoadCategories()
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Rent", cats[0].Name)
	assert.Equal(t, []string{"github", "jetbrains"}, cats[1].Keywords)
}

func TestLoadCategories_BareListAndMissing(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "categories.yaml"), `- name: Groceries
  keywords: ["supermarket", "grocery"]
  color: "green"
`)

	logger := logging.NewMockLogger()
	s := newTestStore(dir)
	s.logger = logger

	cats, err := s.LoadCategories()
	require.NoError(t, err)
	require.Len(t, cats, 1)
	assert.Equal(t, "Groceries", cats[0].Name)

	s.CategoriesFile = filepath.Join(dir, "missing.yaml")
	cats, err = s.LoadCategories()
	assert.NoError(t, err)
	assert.Empty(t, cats)
	assert.True(t, logger.HasEntry("WARN", "Configuration file not found"))
}

func TestLoadCategories_Malformed(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "categories.yaml"), "name: [unclosed")

	_, err := newTestStore(dir).LoadCategories()
	assert.Error(t, err)
}

func TestLoadCreditorMappings(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "creditors.yaml"), "Swisscom AG: Telecom\nSBB CFF FFS: Travel\n")

	mappings, err := newTestStore(dir).LoadCreditorMappings()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Swisscom AG": "Telecom", "SBB CFF FFS": "Travel"}, mappings)

	empty, err := NewCategoryStore("", filepath.Join(dir, "none.yaml"), nil).LoadCreditorMappings()
	require.NoError(t, err)
	assert.Empty(t, empty)

	writeFile(t, filepath.Join(dir, "creditors.yaml"), "- not\n- a map\n")
	_, err = newTestStore(dir).LoadCreditorMappings()
	assert.Error(t, err)
}

func TestMockCategoryStore(t *testing.T) {
	m := &MockCategoryStore{CreditorMappings: map[string]string{"a": "b"}}
	got, err := m.LoadCreditorMappings()
	require.NoError(t, err)
	got["c"] = "d"
	assert.Len(t, m.CreditorMappings, 1)
}
