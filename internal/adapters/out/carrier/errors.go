package carrier

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is a non-2xx carrier response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("carrier responded %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("carrier responded %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether repeating the request may succeed. Only 5xx qualifies;
// every 4xx, 429 included, is final.
func (e *StatusError) Temporary() bool {
	return e.StatusCode >= http.StatusInternalServerError
}

// IsTemporary reports whether err is a StatusError worth retrying, or a transport error.
func IsTemporary(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return err != nil
}
