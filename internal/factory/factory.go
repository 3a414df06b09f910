package factory

import (
	"fmt"

	"finsight/insights/internal/camtparser"
	"finsight/insights/internal/csvparser"
	"finsight/insights/internal/jsonparser"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/parser"
	"finsight/insights/internal/parsererror"
)

// Options tunes the parsers built by the factory.
type Options struct {
	// CSVDelimiter is the field separator for CSV input; zero means comma.
	CSVDelimiter rune
}

// Factory creates parsers that share a logger and options.
type Factory struct {
	logger logging.Logger
	opts   Options
}

// New creates a Factory. A nil logger discards output.
func New(logger logging.Logger, opts Options) *Factory {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Factory{logger: logger, opts: opts}
}

// GetParser returns a new parser for the given format.
func (f *Factory) GetParser(format parser.Format) (parser.Parser, error) {
	return GetParserWithLogger(format, f.logger, f.opts)
}

// GetParserForFile picks the parser from the file extension.
func (f *Factory) GetParserForFile(name string) (parser.Parser, parser.Format, error) {
	format, err := parser.FormatFromFilename(name)
	if err != nil {
		return nil, "", err
	}
	p, err := f.GetParser(format)
	return p, format, err
}

// GetParserWithLogger returns a new instance of the parser for the given format
// with the provided logger.
func GetParserWithLogger(format parser.Format, logger logging.Logger, opts Options) (parser.Parser, error) {
	switch format {
	case parser.JSON:
		return jsonparser.NewJSONParser(logger), nil
	case parser.CSV:
		return csvparser.NewCSVParser(logger, opts.CSVDelimiter), nil
	case parser.CAMT:
		return camtparser.NewCAMTParser(logger), nil
	default:
		return nil, fmt.Errorf("unknown parser type: %w",
			&parsererror.UnsupportedFormatError{Kind: "input", Format: string(format)})
	}
}
