package clients

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("not found")

// StatusError is a non-2xx answer from an upstream.
type StatusError struct {
	Endpoint string
	Status   int
	Body     []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: upstream status %d", e.Endpoint, e.Status)
}

// Is lets callers test errors.Is(err, ErrNotFound) for 404s.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

func (e *StatusError) Message() string {
	return ErrorMessage(e.Body)
}

// ErrorMessage reads the error text from a backend JSON body, preferring
// error over message. It returns "" when neither is present.
func ErrorMessage(body []byte) string {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil {
		return ""
	}
	for _, k := range []string{"error", "message"} {
		if s, ok := obj[k].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
