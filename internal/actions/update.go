package actions

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/reporter"
)

// Update builds the update operation. payload is a JSON object of fields to
// change; it may not name the identifier, which is merged in from id.
func Update(routes reporter.Routes, kind models.ResourceKind, id, payload string) (reporter.Operation, error) {
	if err := checkKind(kind); err != nil {
		return reporter.Operation{}, err
	}
	id = trimmed(id)
	if err := checkID(models.AttrID, id); err != nil {
		return reporter.Operation{}, err
	}

	var changes map[string]any
	if err := json.Unmarshal([]byte(payload), &changes); err != nil || changes == nil {
		return reporter.Operation{}, invalid("update", "update payload must be a JSON object")
	}
	if _, ok := changes[models.AttrID]; ok {
		return reporter.Operation{}, invalid("update", "instance attribute %q is immutable", models.AttrID)
	}
	if len(changes) == 0 {
		return reporter.Operation{}, invalid("update", "update payload is empty")
	}
	if err := checkUnknownAttrs(kind, keysOf(changes)); err != nil {
		return reporter.Operation{}, err
	}
	if err := checkNumbers(changes); err != nil {
		return reporter.Operation{}, err
	}

	body := make(map[string]any, len(changes)+1)
	for k, v := range changes {
		body[k] = v
	}
	body[models.AttrID] = id

	return reporter.Operation{
		Action:  reporter.ActionUpdate,
		Kind:    kind,
		Method:  http.MethodPut,
		Route:   kindRoute(routes, kind),
		Body:    body,
		Summary: fmt.Sprintf("Successfully Updated ID: %s in %s!", id, kind.DBName()),
	}, nil
}
