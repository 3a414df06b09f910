package logging

// Standardized field names for structured logging.
const (
	FieldFile        = "file_path"
	FieldFormat      = "format"
	FieldParser      = "parser"
	FieldRecordIndex = "record_index"
	FieldRecordField = "record_field"
	FieldCategory    = "category"
	FieldReason      = "reason"
	FieldOperation   = "operation"
	FieldStatus      = "status"
	FieldError       = "error"
	FieldDuration    = "duration_ms"
	FieldCount       = "count"
	FieldAccepted    = "accepted"
	FieldSkipped     = "skipped"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldRemoteAddr  = "remote_ip"
	FieldRequestID   = "request_id"
)
