package constant

// System-level error codes (1xxx)

const (
	CodeSuccess            = 0
	CodeSystemError        = 1000 // unexpected internal failure
	CodeDatabaseError      = 1001 // connection, query or transaction failure
	CodeRedisError         = 1002 // cache read/write failure
	CodeInternalError      = 1003 // business logic hit an unexpected state
	CodeServiceUnavailable = 1004
	CodeTimeout            = 1005
)

// Parameter error codes

const (
	CodeInvalidParams    = 1100 // request body does not bind
	CodeMissingParams    = 1101
	CodeParamsRangeError = 1104 // value outside the allowed range
	CodeDuplicateRequest = 1105 // same request replayed within the window
)

// Auth error codes

const (
	CodeUnauthorized     = 1200 // missing or bad internal token
	CodeIPNotWhitelisted = 1205
)
