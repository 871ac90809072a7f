package gemini

import "fmt"

// ServiceError reports a transport or remote-service failure for one
// submission. Message carries the remote-reported message when the service
// returned a structured error body.
type ServiceError struct {
	StatusCode int
	Status     string
	Message    string
	Err        error
}

func (e *ServiceError) Error() string {
	if e.Message != "" {
		if e.StatusCode > 0 {
			return fmt.Sprintf("analysis service error: status=%d message=%s", e.StatusCode, e.Message)
		}
		return "analysis service error: " + e.Message
	}
	if e.Err != nil {
		return fmt.Sprintf("analysis service unreachable: %v", e.Err)
	}
	return fmt.Sprintf("analysis service error: status=%d", e.StatusCode)
}

func (e *ServiceError) Unwrap() error { return e.Err }
