// Package camtparser reads ISO 20022 CAMT.053 bank-to-customer statements.
// Each booked entry (Ntry) of every statement becomes one raw record.
package camtparser

import (
	"io"

	"finsight/insights/internal/logging"
	"finsight/insights/internal/models"
	"finsight/insights/internal/parser"
	"finsight/insights/internal/parsererror"
	"finsight/insights/internal/textutils"
	"finsight/insights/internal/xmlutils"

	"gopkg.in/xmlpath.v2"
)

const expectedFormat = "CAMT.053 XML (Document/BkToCstmrStmt/Stmt)"

var (
	statementPath = xmlpath.MustCompile(xmlutils.XPathStatement)
	entryPath     = xmlpath.MustCompile(xmlutils.XPathEntry)

	amountPath    = xmlpath.MustCompile(xmlutils.XPathAmount)
	indicatorPath = xmlpath.MustCompile(xmlutils.XPathCreditDebitInd)

	datePaths = []*xmlpath.Path{
		xmlpath.MustCompile(xmlutils.XPathBookingDate),
		xmlpath.MustCompile(xmlutils.XPathBookingDateTm),
		xmlpath.MustCompile(xmlutils.XPathValueDate),
		xmlpath.MustCompile(xmlutils.XPathValueDateTm),
	}
	descriptionPaths = []*xmlpath.Path{
		xmlpath.MustCompile(xmlutils.XPathRemittanceInfo),
		xmlpath.MustCompile(xmlutils.XPathAddTxInfo),
		xmlpath.MustCompile(xmlutils.XPathAddEntryInfo),
	}
	debtorPaths = []*xmlpath.Path{
		xmlpath.MustCompile(xmlutils.XPathDebtorName),
		xmlpath.MustCompile(xmlutils.XPathDebtorPtyName),
		xmlpath.MustCompile(xmlutils.XPathUltimateDebtor),
	}
	creditorPaths = []*xmlpath.Path{
		xmlpath.MustCompile(xmlutils.XPathCreditorName),
		xmlpath.MustCompile(xmlutils.XPathCreditorPtyName),
		xmlpath.MustCompile(xmlutils.XPathUltimateCdtr),
	}
)

// CAMTParser implements parser.Parser for CAMT.053 documents.
type CAMTParser struct {
	parser.BaseParser
}

// NewCAMTParser creates a CAMTParser.
func NewCAMTParser(logger logging.Logger) *CAMTParser {
	return &CAMTParser{BaseParser: parser.NewBaseParser(logger)}
}

// Parse implements parser.Parser.
func (p *CAMTParser) Parse(r io.Reader) ([]models.RawRecord, error) {
	root, err := xmlutils.Parse(r)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{
			Source:         "camt",
			ExpectedFormat: expectedFormat,
			Msg:            "document is not well-formed XML",
			Err:            err,
		}
	}

	if !xmlutils.Exists(root, statementPath) {
		return nil, &parsererror.InvalidFormatError{
			Source:               "camt",
			ExpectedFormat:       expectedFormat,
			ActualContentSnippet: parsererror.Snippet([]byte(root.String()), 64),
			Msg:                  "no statement found",
		}
	}

	entries := xmlutils.Nodes(root, entryPath)
	records := make([]models.RawRecord, 0, len(entries))
	for _, entry := range entries {
		records = append(records, entryToRecord(entry))
	}

	p.GetLogger().Debug("Extracted CAMT.053 entries",
		logging.F(logging.FieldParser, string(parser.CAMT)),
		logging.F(logging.FieldCount, len(records)))
	return records, nil
}

// entryToRecord maps one Ntry. Values are passed through as text so that
// validation reports malformed entries the same way as for other formats.
func entryToRecord(entry *xmlpath.Node) models.RawRecord {
	indicator := xmlutils.FirstValue(entry, indicatorPath)

	record := models.RawRecord{
		Date:        xmlutils.FirstValue(entry, datePaths...),
		Amount:      models.AmountString(xmlutils.FirstValue(entry, amountPath)),
		Type:        indicator,
		Description: xmlutils.FirstValue(entry, descriptionPaths...),
	}

	switch indicator {
	case models.CreditDebitCredit:
		record.Type = string(models.RecordTypeIncome)
		record.Counterparty = xmlutils.FirstValue(entry, debtorPaths...)
	case models.CreditDebitDebit:
		record.Type = string(models.RecordTypeExpense)
		record.Counterparty = xmlutils.FirstValue(entry, creditorPaths...)
	}
	if record.Counterparty == "" {
		record.Counterparty = textutils.Counterparty(record.Description)
	}
	return record
}
