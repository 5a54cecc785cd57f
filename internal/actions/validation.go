package actions

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/dotcommander/shelf/internal/models"
)

// ValidationError is a client-side rejection. An operation that fails validation
// is never sent.
type ValidationError struct {
	Field  string
	Reason string
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) ErrorCode() string { return "VALIDATION_FAILED" }

func (e *ValidationError) Context() map[string]string {
	if e.Field == "" {
		return nil
	}
	return map[string]string{"field": e.Field}
}

func (e *ValidationError) SuggestedAction() string {
	return "correct the input; nothing was sent to the catalog API"
}

// compile-time check
var _ models.RecoverableError = (*ValidationError)(nil)

// checkKind rejects kinds other than book and author.
func checkKind(kind models.ResourceKind) error {
	if !kind.Valid() {
		return invalid("kind", "must be %q or %q", models.KindBook, models.KindAuthor)
	}
	return nil
}

// checkID requires a non-empty identifier without whitespace or control characters.
func checkID(field, id string) error {
	if id == "" {
		return invalid(field, "identifier is required")
	}
	for _, r := range id {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return invalid(field, "identifier %q is malformed", id)
		}
	}
	return nil
}

func trimmed(s string) string { return strings.TrimSpace(s) }
