package output

import (
	"encoding/json"
	"errors"
	"io"
)

const schemaVersion = "v1"

// Response is the envelope every command writes to stdout.
type Response struct {
	SchemaVersion   string            `json:"schema_version"`
	Success         bool              `json:"success"`
	Data            any               `json:"data,omitempty"`
	Error           string            `json:"error,omitempty"`
	ErrorCode       string            `json:"error_code,omitempty"`
	ErrorContext    map[string]string `json:"error_context,omitempty"`
	SuggestedAction string            `json:"suggested_action,omitempty"`
}

// recoverableError mirrors models.RecoverableError without importing models.
type recoverableError interface {
	error
	ErrorCode() string
	Context() map[string]string
	SuggestedAction() string
}

// Success wraps data in a successful envelope.
func Success(data any) Response {
	return Response{
		SchemaVersion: schemaVersion,
		Success:       true,
		Data:          data,
	}
}

// Error wraps err in a failed envelope. Errors that carry a code, context and
// suggested action have those copied onto the envelope.
func Error(err error) Response {
	resp := Response{
		SchemaVersion: schemaVersion,
		Success:       false,
		Error:         err.Error(),
	}
	var re recoverableError
	if errors.As(err, &re) {
		resp.ErrorCode = re.ErrorCode()
		resp.ErrorContext = re.Context()
		resp.SuggestedAction = re.SuggestedAction()
	}
	return resp
}

// ErrorWithData is Error plus a data payload, used when a failed request
// still has something worth showing (status, raw body).
func ErrorWithData(err error, data any) Response {
	resp := Error(err)
	resp.Data = data
	return resp
}

// Config controls where and how JSON is written. The zero Pretty value
// writes compact single-line JSON.
type Config struct {
	Writer io.Writer
	Pretty bool
}

// PrintWith encodes v using cfg.
func PrintWith(cfg Config, v any) error {
	enc := json.NewEncoder(cfg.Writer)
	enc.SetEscapeHTML(false)
	if cfg.Pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}
