package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTransportError(t *testing.T) {
	t.Run("network failure", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := NewTransportError("https://filmarks.com/users/x", 0, cause)

		assert.Equal(t, ErrorTypeNetwork, err.Type)
		assert.True(t, IsTransport(err))
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, err.Error(), "connection reset")
	})

	t.Run("status failure", func(t *testing.T) {
		err := NewTransportError("https://filmarks.com/users/x", 503, nil)

		assert.Equal(t, ErrorTypeHTTPStatus, err.Type)
		assert.Equal(t, 503, err.Code)
		assert.True(t, IsTransport(err))
		assert.False(t, IsParse(err))
	})
}

func TestNewParseError(t *testing.T) {
	err := NewParseError("https://filmarks.com/users/x", 3, "title %q does not match", "Foo")

	assert.True(t, IsParse(err))
	assert.False(t, IsTransport(err))
	assert.Contains(t, err.Error(), "card 3")
	assert.Contains(t, err.Error(), `"Foo"`)

	detail := NewParseError("https://filmarks.com/movies/1/reviews/2", DetailCard, "missing review")
	assert.Contains(t, detail.Error(), "detail page")
}

func TestWrappedErrorsKeepType(t *testing.T) {
	base := NewParseError("u", 0, "missing title")
	wrapped := fmt.Errorf("page 2: %w", base)

	assert.True(t, IsParse(wrapped))
	assert.Equal(t, ErrorTypeParsing, TypeOf(wrapped))
	assert.Equal(t, ErrorType(""), TypeOf(errors.New("plain")))

	notFound := fmt.Errorf("scrape: %w", ErrUserNotFound)
	assert.ErrorIs(t, notFound, ErrUserNotFound)
}
