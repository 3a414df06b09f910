package common

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"finsight/insights/internal/config"
	"finsight/insights/internal/container"
	"finsight/insights/internal/parsererror"
	"finsight/insights/internal/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContainer(t *testing.T) *container.Container {
	t.Helper()
	c, err := container.NewContainerWithLogger(config.Default(), nil)
	require.NoError(t, err)
	return c
}

func write(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestProcessFiles(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		write(t, dir, "a.json", `[{"date":"2026-01-10","amount":500,"type":"income","counterparty":"Acme"}]`),
		write(t, dir, "b.csv", "date,amount,type,category\n2026-02-03,200,expense,Rent\n2026-02-04,oops,expense,Rent\n"),
	}

	out, result, err := ProcessFiles(context.Background(), newContainer(t), AggregateOptions{
		Inputs:       inputs,
		OutputFormat: report.JSON,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Accepted)
	assert.Equal(t, 1, result.Skipped)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(out, &doc))
	assert.Len(t, doc["monthlyData"], 2)
}

func TestProcessFiles_InsufficientData(t *testing.T) {
	dir := t.TempDir()
	input := write(t, dir, "a.json", `[{"date":"never","amount":1,"type":"income"}]`)

	_, result, err := ProcessFiles(context.Background(), newContainer(t), AggregateOptions{
		Inputs:       []string{input},
		OutputFormat: report.JSON,
	})
	assert.True(t, errors.Is(err, parsererror.ErrInsufficientData))
	assert.Len(t, result.Warnings, 1)
}

func TestProcessFiles_LoadError(t *testing.T) {
	_, _, err := ProcessFiles(context.Background(), newContainer(t), AggregateOptions{
		Inputs: []string{filepath.Join(t.TempDir(), "missing.json")},
	})
	assert.Error(t, err)
}

func TestWriteOutput(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, WriteOutput("", []byte("a"), &stdout))
	require.NoError(t, WriteOutput("-", []byte("b"), &stdout))
	assert.Equal(t, "ab", stdout.String())

	path := filepath.Join(t.TempDir(), "out", "report.yaml")
	require.NoError(t, WriteOutput(path, []byte("c"), &stdout))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c", string(data))
}
