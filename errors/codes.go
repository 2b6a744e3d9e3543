package errors

// ErrorCode identifies an application error category in responses and logs
type ErrorCode int

const (
	ErrorCode_HTTP_OK ErrorCode = 0

	// General
	ErrorCode_INTERNAL          ErrorCode = 1000
	ErrorCode_INVALID_ARGUMENT  ErrorCode = 1001
	ErrorCode_NOT_FOUND         ErrorCode = 1002
	ErrorCode_ALREADY_EXISTS    ErrorCode = 1003
	ErrorCode_PERMISSION_DENIED ErrorCode = 1004
	ErrorCode_FORBIDDEN         ErrorCode = 1005
	ErrorCode_INVALID_PAYLOAD   ErrorCode = 1006

	// Meeting pipeline
	ErrorCode_MEETING_NOT_FOUND       ErrorCode = 2000
	ErrorCode_MEETING_INVALID_STATE   ErrorCode = 2001
	ErrorCode_MISSING_AUDIO_OBJECT    ErrorCode = 2002
	ErrorCode_TRANSCRIPT_JOB_UNKNOWN  ErrorCode = 2003
	ErrorCode_TRANSCRIPTION_FAILED    ErrorCode = 2004
	ErrorCode_SUMMARIZATION_FAILED    ErrorCode = 2005
	ErrorCode_PROCESSING_FAILED       ErrorCode = 2006
	ErrorCode_ACTION_ITEM_NOT_FOUND   ErrorCode = 2007
	ErrorCode_TRANSCRIPT_NOT_READY    ErrorCode = 2008
	ErrorCode_INVALID_WEBHOOK_PAYLOAD ErrorCode = 2009

	// Integrations
	ErrorCode_INTEGRATION_STORAGE_FAILED      ErrorCode = 3000
	ErrorCode_INTEGRATION_CACHE_FAILED        ErrorCode = 3001
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = 3002

	// Database
	ErrorCode_DB_CONNECTION_FAILED  ErrorCode = 4000
	ErrorCode_DB_QUERY_FAILED       ErrorCode = 4001
	ErrorCode_DB_TRANSACTION_FAILED ErrorCode = 4002
)

var codeNames = map[ErrorCode]string{
	ErrorCode_HTTP_OK:                         "OK",
	ErrorCode_INTERNAL:                        "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:                "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:                       "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:                  "ALREADY_EXISTS",
	ErrorCode_PERMISSION_DENIED:               "PERMISSION_DENIED",
	ErrorCode_FORBIDDEN:                       "FORBIDDEN",
	ErrorCode_INVALID_PAYLOAD:                 "INVALID_PAYLOAD",
	ErrorCode_MEETING_NOT_FOUND:               "MEETING_NOT_FOUND",
	ErrorCode_MEETING_INVALID_STATE:           "MEETING_INVALID_STATE",
	ErrorCode_MISSING_AUDIO_OBJECT:            "MISSING_AUDIO_OBJECT",
	ErrorCode_TRANSCRIPT_JOB_UNKNOWN:          "TRANSCRIPT_JOB_UNKNOWN",
	ErrorCode_TRANSCRIPTION_FAILED:            "TRANSCRIPTION_FAILED",
	ErrorCode_SUMMARIZATION_FAILED:            "SUMMARIZATION_FAILED",
	ErrorCode_PROCESSING_FAILED:               "PROCESSING_FAILED",
	ErrorCode_ACTION_ITEM_NOT_FOUND:           "ACTION_ITEM_NOT_FOUND",
	ErrorCode_TRANSCRIPT_NOT_READY:            "TRANSCRIPT_NOT_READY",
	ErrorCode_INVALID_WEBHOOK_PAYLOAD:         "INVALID_WEBHOOK_PAYLOAD",
	ErrorCode_INTEGRATION_STORAGE_FAILED:      "INTEGRATION_STORAGE_FAILED",
	ErrorCode_INTEGRATION_CACHE_FAILED:        "INTEGRATION_CACHE_FAILED",
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED: "INTEGRATION_EXTERNAL_API_FAILED",
	ErrorCode_DB_CONNECTION_FAILED:            "DB_CONNECTION_FAILED",
	ErrorCode_DB_QUERY_FAILED:                 "DB_QUERY_FAILED",
	ErrorCode_DB_TRANSACTION_FAILED:           "DB_TRANSACTION_FAILED",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
