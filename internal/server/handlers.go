package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"finsight/insights/internal/calculator"
	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parser"
	"finsight/insights/internal/parsererror"
	"finsight/insights/internal/report"

	"github.com/go-chi/chi/v5"
)

const insufficientData = "insufficient data"

type handler struct {
	deps      Dependencies
	maxUpload int64
}

func newHandler(deps Dependencies, maxUpload int64) *handler {
	return &handler{deps: deps, maxUpload: maxUpload}
}

type errorResponse struct {
	Error string `json:"error"`
}

type insufficientDataResponse struct {
	Error    string                 `json:"error"`
	Warnings []models.RecordWarning `json:"warnings"`
}

type calculatorResponse struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func (h *handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// Aggregate accepts records as a JSON body, a raw CSV or CAMT body, or a
// multipart upload in field "file". The response format is chosen by the
// "output" query parameter (json, yaml or csv) and "series" for csv.
func (h *handler) Aggregate(w http.ResponseWriter, r *http.Request) {
	logger := LoggerFromContext(r.Context())

	outFormat, series, err := outputOptions(r)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	records, status, err := h.readRecords(r)
	if err != nil {
		logger.WithError(err).Warn("Failed to read uploaded records")
		writeError(w, r, status, err.Error())
		return
	}

	if h.deps.Categorizer != nil {
		records, _ = h.deps.Categorizer.Enrich(r.Context(), records)
	}

	result := h.deps.Aggregator.Run(records)
	if !result.HasData() {
		writeJSON(w, r, http.StatusUnprocessableEntity, insufficientDataResponse{
			Error:    insufficientData,
			Warnings: result.Warnings,
		})
		return
	}

	body, err := h.deps.Generator.Generate(result, outFormat, series)
	if err != nil {
		logger.WithError(err).Error("Failed to render report")
		writeError(w, r, http.StatusInternalServerError, "failed to render report")
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(outFormat))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		logger.WithError(err).Error("Failed to write response")
	}
}

// readRecords returns the parsed records, or the HTTP status to answer with.
func (h *handler) readRecords(r *http.Request) ([]models.RawRecord, int, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, http.StatusUnsupportedMediaType, fmt.Errorf("missing or invalid Content-Type")
	}

	var (
		format parser.Format
		body   io.Reader = r.Body
	)
	switch mediaType {
	case "application/json":
		format = parser.JSON
	case "text/csv":
		format = parser.CSV
	case "application/xml", "text/xml":
		format = parser.CAMT
	case "multipart/form-data":
		if err := r.ParseMultipartForm(h.maxUpload); err != nil {
			return nil, uploadErrorStatus(err), fmt.Errorf("failed to read upload: %w", err)
		}
		file, fileHeader, err := r.FormFile("file")
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("failed to retrieve file from request, ensure 'file' field is used")
		}
		defer func() { _ = file.Close() }()

		if f := r.FormValue("format"); f != "" {
			format, err = parser.ParseFormat(f)
		} else {
			format, err = parser.FormatFromFilename(fileHeader.Filename)
		}
		if err != nil {
			return nil, http.StatusUnsupportedMediaType, err
		}
		body = file
	default:
		return nil, http.StatusUnsupportedMediaType,
			&parsererror.UnsupportedFormatError{Kind: "upload", Format: mediaType}
	}

	p, err := h.deps.Parsers.GetParser(format)
	if err != nil {
		return nil, http.StatusUnsupportedMediaType, err
	}
	records, err := p.Parse(body)
	if err != nil {
		return nil, uploadErrorStatus(err), err
	}
	return records, http.StatusOK, nil
}

func uploadErrorStatus(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func outputOptions(r *http.Request) (report.Format, report.Series, error) {
	q := r.URL.Query()
	format := report.JSON
	if v := q.Get("output"); v != "" {
		f, err := report.ParseFormat(v)
		if err != nil {
			return "", "", err
		}
		format = f
	}
	series, err := report.ParseSeries(q.Get("series"))
	if err != nil {
		return "", "", err
	}
	return format, series, nil
}

func contentTypeFor(f report.Format) string {
	switch f {
	case report.YAML:
		return "application/yaml"
	case report.CSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/json"
	}
}

func (h *handler) ListCalculators(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string][]string{"calculators": calculator.Names()})
}

func (h *handler) Calculate(w http.ResponseWriter, r *http.Request) {
	name := strings.ToLower(chi.URLParam(r, "name"))

	var in calculator.Inputs
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, r, uploadErrorStatus(err), fmt.Sprintf("invalid calculator input: %v", err))
		return
	}

	value, err := calculator.Compute(name, in)
	if err != nil {
		var verr *parsererror.ValidationError
		switch {
		case errors.Is(err, calculator.ErrUnknownCalculator):
			writeError(w, r, http.StatusNotFound, err.Error())
		case errors.As(err, &verr):
			writeError(w, r, http.StatusBadRequest, err.Error())
		default:
			writeError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, r, http.StatusOK, calculatorResponse{Name: name, Value: value.InexactFloat64()})
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	writeJSON(w, r, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		LoggerFromContext(r.Context()).Error("failed to encode response", logging.F(logging.FieldError, err.Error()))
	}
}
