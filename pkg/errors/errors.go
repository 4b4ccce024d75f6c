package errors

import (
	"errors"
	"fmt"
)

// ErrorType represents the different failure classes of a scrape session
type ErrorType string

const (
	ErrorTypeNetwork    ErrorType = "network"
	ErrorTypeHTTPStatus ErrorType = "http_status"
	ErrorTypeParsing    ErrorType = "parsing"
	ErrorTypeNotFound   ErrorType = "not_found"
)

// ErrUserNotFound is returned when the first listing page of a user responds 404
var ErrUserNotFound = errors.New("user not found")

// DetailCard marks a ParseError raised on a detail page rather than a listing card
const DetailCard = -1

// Error represents a typed scrape error
type Error struct {
	Type    ErrorType
	Message string
	Code    int
	URL     string
	Card    int
	Err     error
}

func (e *Error) Error() string {
	switch e.Type {
	case ErrorTypeParsing:
		if e.Card == DetailCard {
			return fmt.Sprintf("parsing error at %s (detail page): %s", e.URL, e.Message)
		}
		return fmt.Sprintf("parsing error at %s (card %d): %s", e.URL, e.Card, e.Message)
	case ErrorTypeHTTPStatus:
		return fmt.Sprintf("%s error (code %d) at %s: %s", e.Type, e.Code, e.URL, e.Message)
	default:
		if e.Err != nil {
			return fmt.Sprintf("%s error at %s: %s: %v", e.Type, e.URL, e.Message, e.Err)
		}
		return fmt.Sprintf("%s error at %s: %s", e.Type, e.URL, e.Message)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewTransportError builds the error for a network failure (code 0) or a
// non-2xx, non-404 response
func NewTransportError(url string, code int, cause error) *Error {
	if code == 0 {
		return &Error{
			Type:    ErrorTypeNetwork,
			Message: "request failed",
			URL:     url,
			Err:     cause,
		}
	}
	return &Error{
		Type:    ErrorTypeHTTPStatus,
		Message: fmt.Sprintf("unexpected status code: %d", code),
		Code:    code,
		URL:     url,
		Err:     cause,
	}
}

// NewParseError builds the error for markup that did not match the expected
// selectors or patterns. card is the zero-based card index, or DetailCard.
func NewParseError(url string, card int, format string, args ...interface{}) *Error {
	return &Error{
		Type:    ErrorTypeParsing,
		Message: fmt.Sprintf(format, args...),
		URL:     url,
		Card:    card,
	}
}

// NewNotFoundError builds the error for a 404 that is not a pagination boundary
func NewNotFoundError(url string) *Error {
	return &Error{
		Type:    ErrorTypeNotFound,
		Message: "resource not found",
		Code:    404,
		URL:     url,
	}
}

// IsTransport reports whether err is a network or HTTP status failure
func IsTransport(err error) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Type == ErrorTypeNetwork || e.Type == ErrorTypeHTTPStatus
	}
	return false
}

// IsParse reports whether err is a markup parsing failure
func IsParse(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Type == ErrorTypeParsing
}

// TypeOf returns the ErrorType of err, or "" if err is not an *Error
func TypeOf(err error) ErrorType {
	var e *Error
	if errors.As(err, &e) {
		return e.Type
	}
	return ""
}
