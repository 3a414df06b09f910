package models

// Fallback labels used when a record does not carry its own.
const (
	DefaultCategory = "Other"
	UnknownClient   = "Unknown"
)

// TopN is the default number of entries kept in the category and client rankings.
const TopN = 10

// CAMT credit/debit indicators
const (
	CreditDebitCredit = "CRDT"
	CreditDebitDebit  = "DBIT"
)

// File permissions
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
