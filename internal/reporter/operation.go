package reporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/dotcommander/shelf/internal/models"
)

// Action is the catalog action an Operation performs.
type Action string

// Actions.
const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionSearch Action = "search"
	ActionScrape Action = "scrape"
)

// Decode selects how a successful response body is interpreted.
type Decode int

// Decode modes.
const (
	DecodeText Decode = iota
	DecodeJSON
)

// ErrInvalidOperation is wrapped by Operation.Validate failures.
var ErrInvalidOperation = errors.New("invalid operation")

// Operation is a single request built fresh from one submission. It is executed
// at most once and never queued.
type Operation struct {
	Action Action
	// Kind is empty for operations that are not tied to one collection (scrape).
	Kind   models.ResourceKind
	Method string
	Route  string
	Query  url.Values
	// Body is JSON-encoded when non-nil.
	Body   any
	Decode Decode
	// Summary becomes Success.Description when the request succeeds.
	Summary string
	// RequestID is sent as X-Request-ID; generated when empty.
	RequestID string
}

// Validate enforces the input constraints of Execute.
func (op Operation) Validate() error {
	if strings.TrimSpace(op.Method) == "" {
		return fmt.Errorf("%w: method is required", ErrInvalidOperation)
	}
	if strings.TrimSpace(op.Route) == "" {
		return fmt.Errorf("%w: route is required", ErrInvalidOperation)
	}
	if op.Body != nil {
		if _, err := json.Marshal(op.Body); err != nil {
			return fmt.Errorf("%w: body is not serializable: %v", ErrInvalidOperation, err)
		}
	}
	return nil
}

// encodeBody returns the JSON body bytes, or nil when the operation has none.
func (op Operation) encodeBody() ([]byte, error) {
	if op.Body == nil {
		return nil, nil
	}
	return json.Marshal(op.Body)
}
