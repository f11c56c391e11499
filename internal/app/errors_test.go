package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapacityError_FormatAndUnwrap(t *testing.T) {
	cause := errors.New("end before start")
	err := &CapacityError{Code: CapacityErrInvalidRange, Message: "bad range", Err: cause}

	assert.Equal(t, "INVALID_RANGE: bad range", err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestImportError_ListsValidationErrors(t *testing.T) {
	err := &ImportError{
		Code:    ImportErrValidationFailed,
		Message: "2 problems",
		Errors:  []error{errors.New("issue #1: duplicate id"), errors.New("issue #2: bad date")},
	}

	assert.Equal(t, "VALIDATION_FAILED: 2 problems\n  - issue #1: duplicate id\n  - issue #2: bad date", err.Error())
}
