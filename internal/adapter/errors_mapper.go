package adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
)

// fallbackMessage is used when an error body carries neither "error" nor
// "message".
const fallbackMessage = "request failed"

var errEmptyBody = errors.New("empty response body")

// parseBody decodes a raw response body into a generic JSON value. A 204
// response without a body decodes to nil.
func parseBody(status int, body []byte) (any, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		if status == http.StatusNoContent {
			return nil, nil
		}
		return nil, &MalformedResponseError{Status: status, Err: errEmptyBody}
	}

	var parsed any
	if err := json.Unmarshal(trimmed, &parsed); err != nil {
		return nil, &MalformedResponseError{Status: status, Err: err}
	}
	return parsed, nil
}

// mapHTTPError returns nil for 2xx statuses and a *RequestFailedError
// otherwise. The message is the first non-empty string among the "error" and
// "message" fields of parsed.
func mapHTTPError(status int, parsed any) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	return &RequestFailedError{Status: status, Message: errorMessage(parsed)}
}

func errorMessage(parsed any) string {
	fields, ok := parsed.(map[string]any)
	if !ok {
		return fallbackMessage
	}

	for _, key := range []string{"error", "message"} {
		if msg, ok := fields[key].(string); ok && msg != "" {
			return msg
		}
	}
	return fallbackMessage
}
