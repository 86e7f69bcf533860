package reqkit

import (
	"encoding/json"
	"net/http"
)

// UnknownErrorMessage is used when neither the body nor the status code
// yields a message.
const UnknownErrorMessage = "Unknown Error"

// ErrorSource tells where an extracted error message came from.
type ErrorSource string

const (
	SourceMessage    ErrorSource = "message"
	SourceError      ErrorSource = "error"
	SourceStatusText ErrorSource = "status_text"
	SourceGeneric    ErrorSource = "generic"
)

// ParseJSONError builds the RequestError for a failed response. The message
// is the body's "message" string, else its "error" string, else the standard
// status text for resp.StatusCode. A body that is not JSON is not a failure;
// it takes the status text path. opts is accepted for call-site symmetry with
// Builder and is not read. The result is never nil.
func ParseJSONError(opts Options, resp Response) *RequestError {
	message, _ := ExtractErrorMessage(resp.StatusCode, resp.Body)
	return &RequestError{
		StatusCode: resp.StatusCode,
		Message:    message,
		Name:       RequestErrorName,
	}
}

// ExtractErrorMessage runs the message fallback chain and reports which step
// produced the message.
func ExtractErrorMessage(statusCode int, body []byte) (string, ErrorSource) {
	if fields, ok := decodeErrorBody(body); ok {
		if msg, ok := fields["message"].(string); ok && msg != "" {
			return msg, SourceMessage
		}
		if msg, ok := fields["error"].(string); ok && msg != "" {
			return msg, SourceError
		}
	}
	return statusMessage(statusCode)
}

// decodeErrorBody reports false for bodies that are not a JSON object.
func decodeErrorBody(body []byte) (map[string]any, bool) {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, false
	}
	return fields, fields != nil
}

func statusMessage(statusCode int) (string, ErrorSource) {
	if text := http.StatusText(statusCode); text != "" {
		return text, SourceStatusText
	}
	return UnknownErrorMessage, SourceGeneric
}
