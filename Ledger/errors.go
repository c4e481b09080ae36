package Ledger

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ErrCodeNotFound = "NOT_FOUND"
	ErrCodeConflict = "CONFLICT"
	ErrCodeDatabase = "DATABASE_ERROR"
	ErrCodeSequence = "SEQUENCE_CONFLICT"
)

// OpError is the error type every ledger operation returns. A referenced
// record that does not exist aborts the whole unit of work.
type OpError struct {
	Code    string
	Message string
	Detail  string
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %s - %s", e.Code, e.Message, e.Detail)
}

func notFoundError(what string, id interface{}) *OpError {
	return &OpError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", what),
		Detail:  fmt.Sprintf("%s %v does not exist", what, id),
	}
}

func conflictError(message, detail string) *OpError {
	return &OpError{Code: ErrCodeConflict, Message: message, Detail: detail}
}

func dbError(message string, err error) *OpError {
	return &OpError{Code: ErrCodeDatabase, Message: message, Detail: err.Error()}
}

func IsNotFound(err error) bool {
	var opErr *OpError
	return errors.As(err, &opErr) && opErr.Code == ErrCodeNotFound
}

func IsConflict(err error) bool {
	var opErr *OpError
	return errors.As(err, &opErr) && opErr.Code == ErrCodeConflict
}

// isDuplicateCode reports whether err comes from the unique index on a
// generated reference code. sqlite and mysql spell the violation differently.
func isDuplicateCode(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry")
}
