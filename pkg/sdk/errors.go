package ragchat

import "fmt"

// APIError is a non-2xx response from the chat API. Status holds the
// HTTP status code; Message holds the server's error text. Use
// errors.As() to check.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ragchat: HTTP %d: %s", e.Status, e.Message)
}
