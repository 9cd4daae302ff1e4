package constant

import "fmt"

// Error is the coded error surface returned by handlers.
type Error interface {
	error
	Code() int
	Message() string
	WithData(data interface{}) Error
}

// CustomError implements Error with an optional data payload.
type CustomError struct {
	code    int
	message string
	data    interface{}
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("code: %d, message: %s", e.code, e.message)
}

func (e *CustomError) Code() int {
	return e.code
}

func (e *CustomError) Message() string {
	return e.message
}

func (e *CustomError) WithData(data interface{}) Error {
	e.data = data
	return e
}

// NewError builds a coded error from the message table.
func NewError(code int) Error {
	if info, exists := ErrorMessages[code]; exists {
		return &CustomError{code: code, message: info.EN}
	}
	return &CustomError{code: code, message: "unknown error"}
}

// GetErrorInfo looks up the message pair for a code.
func GetErrorInfo(code int) (ErrorInfo, bool) {
	info, exists := ErrorMessages[code]
	return info, exists
}
