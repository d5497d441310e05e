package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"

	"github.com/abyxtask/taskctl/internal/domain/entities"
)

// FallbackMessage is shown when a failed response carries no decodable error
// body.
const FallbackMessage = "ارتباط با سرور برقرار نشد"

// Fixed advisory strings for transport-level failures.
const (
	AdviceTimeout    = "Network request timed out. Please try again."
	AdviceNetwork    = "Network error. Please check your connection."
	AdviceUnexpected = "An unexpected error occurred. Please try again."
)

// Error is a failed backend response. StatusCode lets callers branch on the
// semantic codes (403 unverified login, 401 wrong current password, 404 empty
// task list); Message is already user-displayable.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsStatus reports whether err is a backend response with the given status.
func IsStatus(err error, statusCode int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}

// translate turns a failed response into an *Error, extracting the backend's
// message field when the body decodes and falling back to the fixed message
// otherwise.
func translate(statusCode int, body []byte) *Error {
	message := FallbackMessage

	if len(body) > 0 {
		var payload entities.Message
		if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
			message = payload.Message
		}
	}

	return &Error{StatusCode: statusCode, Message: message}
}

// Advice maps a transport failure to the fixed advisory string a caller
// should surface. Backend responses are not transport failures; use the
// *Error message for those.
func Advice(err error) string {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return AdviceTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return AdviceTimeout
	}

	var urlErr *url.Error
	var opErr *net.OpError
	if errors.As(err, &urlErr) || errors.As(err, &opErr) ||
		errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return AdviceNetwork
	}

	return AdviceUnexpected
}
