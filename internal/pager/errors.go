package pager

import (
	"errors"
	"fmt"
)

// Sentinel causes carried by ProtocolError.
var (
	ErrCursorCycle    = errors.New("next cursor was already visited")
	ErrMissingResults = errors.New("page body has no results array")
	ErrMalformedPage  = errors.New("page body is not valid JSON")
	ErrMalformedItem  = errors.New("page contains an item that cannot be decoded")
)

// FetchError reports an unsuccessful page response or a transport failure.
// HTTPStatus is 0 when no response was received.
type FetchError struct {
	Resource   string `json:"resource"    yaml:"resource"`
	HTTPStatus int    `json:"http_status" yaml:"http_status"`
	Message    string `json:"message"     yaml:"message"`
	Err        error  `json:"-"           yaml:"-"`
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func newStatusError(resource string, status int, statusText string) *FetchError {
	return &FetchError{
		Resource:   resource,
		HTTPStatus: status,
		Message:    fmt.Sprintf("Error fetching %s data: %d - %s", resource, status, statusText),
	}
}

func newTransportError(resource string, err error) *FetchError {
	return &FetchError{
		Resource: resource,
		Message:  fmt.Sprintf("Error fetching %s data: %v", resource, err),
		Err:      err,
	}
}

// ProtocolError reports an upstream that broke the paging contract: a body
// without results, an undecodable item, or a cursor that loops.
type ProtocolError struct {
	Resource string `json:"resource" yaml:"resource"`
	Reason   string `json:"reason"   yaml:"reason"`
	Err      error  `json:"-"        yaml:"-"`
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error fetching %s data: %s", e.Resource, e.Reason)
}

func (e *ProtocolError) Unwrap() error {
	return e.Err
}

// HTTPStatus extracts the upstream status from err, or 0 when err is not a
// FetchError.
func HTTPStatus(err error) int {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.HTTPStatus
	}
	return 0
}
