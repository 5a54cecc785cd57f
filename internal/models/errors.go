package models

// RecoverableError is implemented by errors that carry a stable code, structured
// context and a remediation hint. Validation errors from actions and HTTP status
// errors from the reporter both satisfy it, so the output package can enrich its
// envelope without importing either.
type RecoverableError interface {
	error
	ErrorCode() string
	Context() map[string]string
	SuggestedAction() string
}
