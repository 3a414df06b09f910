package aggregator

import (
	"errors"

	"finsight/insights/internal/dateutils"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parsererror"
)

const normalizeStage = "normalize"

// Normalize validates raw records. Records with an unparseable date, a
// non-numeric, out-of-range or negative amount, or an unknown type are skipped
// and reported as warnings; the remaining records are returned in input order.
func Normalize(raw []models.RawRecord) ([]models.TransactionRecord, []models.RecordWarning) {
	records := make([]models.TransactionRecord, 0, len(raw))
	var warnings []models.RecordWarning

	for i, r := range raw {
		rec, err := normalizeOne(r)
		if err != nil {
			warnings = append(warnings, warningFor(i, r, err))
			continue
		}
		records = append(records, rec)
	}

	return records, warnings
}

// normalizeOne returns a *parsererror.ParseError for unparseable fields and a
// *parsererror.ValidationError for parsed values that are not acceptable.
func normalizeOne(r models.RawRecord) (models.TransactionRecord, error) {
	date, _, err := dateutils.ParseDate(r.Date)
	if err != nil {
		return models.TransactionRecord{}, &parsererror.ParseError{Parser: normalizeStage, Field: "date", Value: r.Date, Err: err}
	}

	amount, err := models.ParseAmount(string(r.Amount))
	if err != nil {
		return models.TransactionRecord{}, &parsererror.ParseError{Parser: normalizeStage, Field: "amount", Value: string(r.Amount), Err: err}
	}
	if amount.IsNegative() {
		return models.TransactionRecord{}, &parsererror.ValidationError{Field: "amount", Reason: "amount must not be negative"}
	}

	recordType, err := models.ParseRecordType(r.Type)
	if err != nil {
		return models.TransactionRecord{}, &parsererror.ParseError{Parser: normalizeStage, Field: "type", Value: r.Type, Err: err}
	}

	return models.TransactionRecord{
		Date:         date,
		Amount:       amount,
		Type:         recordType,
		Counterparty: r.Counterparty,
		Description:  r.Description,
		Category:     r.Category,
	}, nil
}

func warningFor(index int, r models.RawRecord, err error) models.RecordWarning {
	w := models.RecordWarning{Index: index, Reason: err.Error()}

	var perr *parsererror.ParseError
	var verr *parsererror.ValidationError
	switch {
	case errors.As(err, &perr):
		w.Field = perr.Field
		w.Value = perr.Value
		w.Reason = perr.Err.Error()
	case errors.As(err, &verr):
		w.Field = verr.Field
		w.Reason = verr.Reason
		if verr.Field == "amount" {
			w.Value = string(r.Amount)
		}
	}
	return w
}
