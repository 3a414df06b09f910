package xmlutils

// XPath expressions for CAMT.053 statements. Entry-level paths are relative to an Ntry node.
const (
	XPathStatement = "//BkToCstmrStmt/Stmt"
	XPathEntry     = "//BkToCstmrStmt/Stmt/Ntry"

	XPathAmount         = "Amt"
	XPathCreditDebitInd = "CdtDbtInd" // #nosec G101 -- XPath expression, not credentials
	XPathBookingDate    = "BookgDt/Dt"
	XPathBookingDateTm  = "BookgDt/DtTm"
	XPathValueDate      = "ValDt/Dt"
	XPathValueDateTm    = "ValDt/DtTm"

	XPathRemittanceInfo = "NtryDtls/TxDtls/RmtInf/Ustrd"
	XPathAddEntryInfo   = "AddtlNtryInf"
	XPathAddTxInfo      = "NtryDtls/TxDtls/AddtlTxInf"

	// CAMT.053.001.02 puts names directly under Dbtr/Cdtr; later versions nest them in Pty.
	XPathDebtorName      = "NtryDtls/TxDtls/RltdPties/Dbtr/Nm"          // #nosec G101 -- XPath expression, not credentials
	XPathDebtorPtyName   = "NtryDtls/TxDtls/RltdPties/Dbtr/Pty/Nm"      // #nosec G101 -- XPath expression, not credentials
	XPathCreditorName    = "NtryDtls/TxDtls/RltdPties/Cdtr/Nm"          // #nosec G101 -- XPath expression, not credentials
	XPathCreditorPtyName = "NtryDtls/TxDtls/RltdPties/Cdtr/Pty/Nm"      // #nosec G101 -- XPath expression, not credentials
	XPathUltimateDebtor  = "NtryDtls/TxDtls/RltdPties/UltmtDbtr/Nm"
	XPathUltimateCdtr    = "NtryDtls/TxDtls/RltdPties/UltmtCdtr/Nm" // #nosec G101 -- XPath expression, not credentials
)
