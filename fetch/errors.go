package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrNoData marks a page that yielded nothing to extract. It ends a
// category's pagination without counting as a failure.
var ErrNoData = errors.New("fetch: no data")

// ErrTimeout indicates the request exceeded its time budget.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Errorf("timeout: %w", e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Errorf("connection: %w", e.Err).Error()
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrBadStatus indicates a non-success HTTP response.
type ErrBadStatus struct {
	Code int
	Err  error
}

func (e ErrBadStatus) Error() string {
	return fmt.Sprintf("bad status %d", e.Code)
}

func (e ErrBadStatus) Unwrap() error {
	return e.Err
}

// ErrDecode indicates the response body was not a parseable envelope.
type ErrDecode struct {
	Err error
}

func (e ErrDecode) Error() string {
	return fmt.Errorf("decode: %w", e.Err).Error()
}

func (e ErrDecode) Unwrap() error {
	return e.Err
}

// Classify maps a raw transport error and status code onto the typed
// failure categories. All of them terminate a category's pagination,
// but they stay distinguishable in logs and metrics.
func Classify(err error, statusCode int) error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}

	if statusCode >= 400 {
		return ErrBadStatus{Code: statusCode, Err: err}
	}

	return err
}

// Label names an error's category for metrics and log fields.
func Label(err error) string {
	if err == nil {
		return "unknown"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "connection"
	}
	var status ErrBadStatus
	if errors.As(err, &status) {
		return "bad_status"
	}
	var decode ErrDecode
	if errors.As(err, &decode) {
		return "decode"
	}
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return "other"
}
