// Package models provides the data structures shared by ingestion, aggregation and rendering.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// RecordType tells whether a transaction brings money in or takes it out.
type RecordType string

const (
	RecordTypeIncome  RecordType = "income"
	RecordTypeExpense RecordType = "expense"
)

// ParseRecordType accepts the upload API spelling as well as the CAMT indicators
// and a few common synonyms, case-insensitively.
func ParseRecordType(s string) (RecordType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "income", "revenue", "credit", "crdt", "in":
		return RecordTypeIncome, nil
	case "expense", "expenses", "debit", "dbit", "out":
		return RecordTypeExpense, nil
	default:
		return "", fmt.Errorf("unknown record type %q", s)
	}
}

// AmountString is an amount as it arrives on the wire. In JSON it may be a number
// or a string; everywhere else it is plain text.
type AmountString string

// UnmarshalJSON accepts numbers, strings and null.
func (a *AmountString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount must be a number or a string: %w", err)
	}
	*a = AmountString(n.String())
	return nil
}

// RawRecord is a transaction record exactly as supplied by an upload, before validation.
type RawRecord struct {
	Date         string       `json:"date" csv:"date" yaml:"date"`
	Amount       AmountString `json:"amount" csv:"amount" yaml:"amount"`
	Type         string       `json:"type" csv:"type" yaml:"type"`
	Counterparty string       `json:"counterparty,omitempty" csv:"counterparty" yaml:"counterparty,omitempty"`
	Description  string       `json:"description,omitempty" csv:"description" yaml:"description,omitempty"`
	Category     string       `json:"category,omitempty" csv:"category" yaml:"category,omitempty"`
}

// TransactionRecord is a validated record ready for aggregation. It is never
// mutated once built.
type TransactionRecord struct {
	Date         time.Time
	Amount       decimal.Decimal
	Type         RecordType
	Counterparty string
	Description  string
	Category     string
}

// ClientLabel resolves the label an income record is ranked under:
// counterparty, then description, then "Unknown".
func (r TransactionRecord) ClientLabel() string {
	if s := strings.TrimSpace(r.Counterparty); s != "" {
		return s
	}
	if s := strings.TrimSpace(r.Description); s != "" {
		return s
	}
	return UnknownClient
}

// CategoryLabel resolves the category an expense record is grouped under.
func (r TransactionRecord) CategoryLabel() string {
	if s := strings.TrimSpace(r.Category); s != "" {
		return s
	}
	return DefaultCategory
}

// IsIncome reports whether the record is an income record.
func (r TransactionRecord) IsIncome() bool {
	return r.Type == RecordTypeIncome
}
