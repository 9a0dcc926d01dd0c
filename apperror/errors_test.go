package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsSurviveWrapping(t *testing.T) {
	err := fmt.Errorf("complete movie: %w", BadRequest("title is required"))

	assert.True(t, IsBadRequest(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, "complete movie: title is required", err.Error())
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("movie", 42)

	assert.True(t, IsNotFound(err))
	assert.Equal(t, "movie not found: 42", err.Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("duplicate key")
	err := Conflict("seat position already taken").Wrap(cause)

	assert.True(t, IsConflict(err))
	assert.ErrorIs(t, err, cause)
}

func TestKindOfPlainError(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
}
