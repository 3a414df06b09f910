// Package batch loads records from several input files concurrently.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"finsight/insights/internal/factory"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parser"

	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrency bounds the number of files read at the same time.
const DefaultMaxConcurrency = 4

// Loader reads input files with bounded concurrency and concatenates their
// records in the order the files were given.
type Loader struct {
	factory        *factory.Factory
	logger         logging.Logger
	maxConcurrency int
}

// NewLoader creates a Loader. maxConcurrency < 1 selects DefaultMaxConcurrency.
func NewLoader(f *factory.Factory, logger logging.Logger, maxConcurrency int) *Loader {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if f == nil {
		f = factory.New(logger, factory.Options{})
	}
	if maxConcurrency < 1 {
		maxConcurrency = DefaultMaxConcurrency
	}
	return &Loader{factory: f, logger: logger, maxConcurrency: maxConcurrency}
}

// LoadFiles parses every file and returns all records. When format is empty the
// format of each file is inferred from its extension. The first failure cancels
// the remaining work and is returned.
func (l *Loader) LoadFiles(ctx context.Context, files []string, format parser.Format) ([]models.RawRecord, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no input files given")
	}

	results := make([][]models.RawRecord, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.maxConcurrency)

	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			records, err := l.loadFile(file, format)
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, r := range results {
		total += len(r)
	}
	all := make([]models.RawRecord, 0, total)
	for _, r := range results {
		all = append(all, r...)
	}

	l.logger.Info("Loaded input files",
		logging.F(logging.FieldCount, len(files)),
		logging.F("records", len(all)))
	l.detectAndLogDuplicates(all)
	return all, nil
}

func (l *Loader) loadFile(file string, format parser.Format) ([]models.RawRecord, error) {
	var (
		p   parser.Parser
		err error
	)
	if format == "" {
		p, format, err = l.factory.GetParserForFile(file)
	} else {
		p, err = l.factory.GetParser(format)
	}
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Clean(file))
	if err != nil {
		return nil, fmt.Errorf("error opening input file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			l.logger.WithError(cerr).Warn("Failed to close file", logging.F(logging.FieldFile, file))
		}
	}()

	l.logger.Debug("Processing file",
		logging.F(logging.FieldFile, filepath.Base(file)),
		logging.F(logging.FieldFormat, string(format)))

	records, err := p.Parse(f)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Loaded records from file",
		logging.F(logging.FieldCount, len(records)),
		logging.F(logging.FieldFile, filepath.Base(file)))
	return records, nil
}

// detectAndLogDuplicates warns about records that look identical. Overlapping
// statement exports are the usual cause; all records are kept.
func (l *Loader) detectAndLogDuplicates(records []models.RawRecord) int {
	seen := make(map[string]int, len(records))
	duplicates := 0
	for i, r := range records {
		key := duplicateKey(r)
		if first, ok := seen[key]; ok {
			duplicates++
			l.logger.Warn("Potential duplicate record",
				logging.F(logging.FieldRecordIndex, i),
				logging.F("first_index", first),
				logging.F("date", r.Date),
				logging.F("amount", string(r.Amount)))
			continue
		}
		seen[key] = i
	}
	if duplicates > 0 {
		l.logger.Warn("Found potential duplicate records", logging.F(logging.FieldCount, duplicates))
	}
	return duplicates
}

func duplicateKey(r models.RawRecord) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return strings.Join([]string{
		norm(r.Date), norm(string(r.Amount)), norm(r.Type), norm(r.Counterparty), norm(r.Description),
	}, "\x1f")
}
