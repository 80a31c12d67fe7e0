package errors

// ErrorCode identifies application error conditions independently of HTTP status.
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL         ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT ErrorCode = 1001
	ErrorCode_NOT_FOUND        ErrorCode = 1002

	// Feedback pipeline
	ErrorCode_MISSING_FILE     ErrorCode = 2000
	ErrorCode_NO_FILE_SELECTED ErrorCode = 2001
	ErrorCode_INVALID_WORKBOOK ErrorCode = 2002
	ErrorCode_MALFORMED_INPUT  ErrorCode = 2003
	ErrorCode_SCORING_FAILED   ErrorCode = 2004
	ErrorCode_PROCESSING_FAILED ErrorCode = 2005

	// Integrations
	ErrorCode_SNAPSHOT_UNAVAILABLE ErrorCode = 3000
	ErrorCode_TRANSLATION_FAILED   ErrorCode = 3001
	ErrorCode_STORAGE_FAILED       ErrorCode = 3002
	ErrorCode_CACHE_FAILED         ErrorCode = 3003

	// Database
	ErrorCode_DB_CONNECTION_FAILED ErrorCode = 4000
	ErrorCode_DB_QUERY_FAILED      ErrorCode = 4001
)

// String returns the symbolic name of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrorCode_HTTP_OK:
		return "OK"
	case ErrorCode_INTERNAL:
		return "INTERNAL"
	case ErrorCode_INVALID_ARGUMENT:
		return "INVALID_ARGUMENT"
	case ErrorCode_NOT_FOUND:
		return "NOT_FOUND"
	case ErrorCode_MISSING_FILE:
		return "MISSING_FILE"
	case ErrorCode_NO_FILE_SELECTED:
		return "NO_FILE_SELECTED"
	case ErrorCode_INVALID_WORKBOOK:
		return "INVALID_WORKBOOK"
	case ErrorCode_MALFORMED_INPUT:
		return "MALFORMED_INPUT"
	case ErrorCode_SCORING_FAILED:
		return "SCORING_FAILED"
	case ErrorCode_PROCESSING_FAILED:
		return "PROCESSING_FAILED"
	case ErrorCode_SNAPSHOT_UNAVAILABLE:
		return "SNAPSHOT_UNAVAILABLE"
	case ErrorCode_TRANSLATION_FAILED:
		return "TRANSLATION_FAILED"
	case ErrorCode_STORAGE_FAILED:
		return "STORAGE_FAILED"
	case ErrorCode_CACHE_FAILED:
		return "CACHE_FAILED"
	case ErrorCode_DB_CONNECTION_FAILED:
		return "DB_CONNECTION_FAILED"
	case ErrorCode_DB_QUERY_FAILED:
		return "DB_QUERY_FAILED"
	default:
		return "UNKNOWN"
	}
}
