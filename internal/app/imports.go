package app

import "strings"

// ImportResult holds the outcome of a feed import.
type ImportResult struct {
	ItemCount     int
	ClosedCount   int
	RelationCount int
}

type ImportErrorCode string

const (
	ImportErrInvalidFeed      ImportErrorCode = "INVALID_FEED"
	ImportErrValidationFailed ImportErrorCode = "VALIDATION_FAILED"
)

// ImportError reports a rejected feed. Errors lists every validation problem.
type ImportError struct {
	Code    ImportErrorCode
	Message string
	Errors  []error
}

func (e *ImportError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Code) + ": " + e.Message)
	for _, err := range e.Errors {
		b.WriteString("\n  - " + err.Error())
	}
	return b.String()
}
