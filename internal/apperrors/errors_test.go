package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "seat not found with ID: abc", NotFoundError{Resource: "seat", ID: "abc"}.Error())
	assert.Equal(t, "trip not found", NotFoundError{Resource: "trip"}.Error())
	assert.Equal(t, "position taken", ConflictError{Msg: "position taken"}.Error())
	assert.Equal(t, "conflict", ConflictError{}.Error())
}

func TestTypeChecksThroughWrapping(t *testing.T) {
	inner := ConflictError{Msg: "seat taken"}
	wrapped := fmt.Errorf("booking failed: %w", inner)

	assert.True(t, IsConflict(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.False(t, IsConflict(errors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key value")
	err := ConflictError{Msg: "seat taken", Err: cause}

	assert.ErrorIs(t, err, cause)
}
