package driven

import "fmt"

// ConnectionError reports a transport-level failure reaching the gateway:
// the request never produced an HTTP response.
type ConnectionError struct {
	Endpoint string
	Err      error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %v", e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthenticationError reports a login the gateway rejected.
type AuthenticationError struct {
	StatusCode int
	Message    string // Gateway-provided reason, when present.
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("login rejected (status %d): %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("login rejected (status %d)", e.StatusCode)
}

// MalformedResponseError reports a login response whose body could not be
// interpreted: not valid JSON, or no usable token in it.
type MalformedResponseError struct {
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed login response: %s", e.Reason)
}

// ReportFetchError reports a non-success status from the report endpoint.
type ReportFetchError struct {
	StatusCode int
	Endpoint   string
}

func (e *ReportFetchError) Error() string {
	return fmt.Sprintf("fetch %s: unexpected status %d", e.Endpoint, e.StatusCode)
}
