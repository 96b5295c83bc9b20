package predictor

import "fmt"

// ValidationError is returned for a request that is rejected before any
// network traffic, such as a team playing itself.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConnectionError wraps a transport failure while talking to the server.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("error connecting to server during %s: %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// NotAuthenticatedError is returned when a deployment requires login and
// Predict is called before a successful Login.
type NotAuthenticatedError struct{}

func (e *NotAuthenticatedError) Error() string {
	return "not authenticated: log in before requesting a prediction"
}

// PredictionError is a non-200 answer from the predict endpoint.
type PredictionError struct {
	StatusCode int
	Message    string
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// APIError is a non-200 answer from one of the catalog endpoints.
type APIError struct {
	Path       string
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("GET %s failed with status %d: %s", e.Path, e.StatusCode, e.Message)
}

// DecodeError is returned when a 200 response does not match the expected
// shape.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("failed to decode server response: %v", e.Err)
	}
	return fmt.Sprintf("failed to decode server response: field %s: %v", e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
