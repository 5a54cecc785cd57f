package actions

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/reporter"
)

// Create builds the single-record creation operation from form input. Every
// tracked attribute is sent: blank values become null, numeric attributes must
// parse as non-negative numbers, and a value written as a JSON array is sent as
// a list. The body is a one-element array.
func Create(routes reporter.Routes, kind models.ResourceKind, form map[string]string) (reporter.Operation, error) {
	if err := checkKind(kind); err != nil {
		return reporter.Operation{}, err
	}
	if err := checkUnknownAttrs(kind, keysOf(form)); err != nil {
		return reporter.Operation{}, err
	}

	id := trimmed(form[models.AttrID])
	if id == "" {
		return reporter.Operation{}, invalid(models.AttrID, "attribute must be filled")
	}
	if err := checkID(models.AttrID, id); err != nil {
		return reporter.Operation{}, err
	}

	record := make(map[string]any, len(kind.Attrs()))
	for _, attr := range kind.Attrs() {
		raw := trimmed(form[attr])
		if raw == "" {
			record[attr] = nil
			continue
		}
		v, err := formValue(attr, raw)
		if err != nil {
			return reporter.Operation{}, err
		}
		record[attr] = v
	}
	record[models.AttrID] = id

	return reporter.Operation{
		Action:  reporter.ActionCreate,
		Kind:    kind,
		Method:  http.MethodPost,
		Route:   kindRoute(routes, kind),
		Body:    []map[string]any{record},
		Summary: fmt.Sprintf("Successfully Created ID: %s in %s Database!", id, kind.DisplayName()),
	}, nil
}

func formValue(attr, raw string) (any, error) {
	if models.IsNumericAttr(attr) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
		if err != nil || !nonNegative(n) {
			return nil, invalid(attr, "illegal numeric input %q", raw)
		}
		return n, nil
	}
	if strings.HasPrefix(raw, "[") {
		var list []any
		if err := json.Unmarshal([]byte(raw), &list); err == nil {
			return list, nil
		}
	}
	return raw, nil
}

func nonNegative(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0) && n >= 0
}

// checkNumbers rejects numeric attributes of a decoded record that are not
// non-negative JSON numbers. null leaves the attribute unset.
func checkNumbers(rec map[string]any) error {
	for _, k := range keysOf(rec) {
		if !models.IsNumericAttr(k) {
			continue
		}
		switch v := rec[k].(type) {
		case nil:
		case float64:
			if !nonNegative(v) {
				return invalid(k, "illegal numeric input %v", v)
			}
		default:
			return invalid(k, "illegal numeric input %v: want a number", v)
		}
	}
	return nil
}

// DecodeRecords reads an upload document: a JSON object or an array of objects.
func DecodeRecords(data []byte) ([]map[string]any, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, invalid("file", "input JSON is not legal: %v", err)
	}
	switch v := doc.(type) {
	case map[string]any:
		return []map[string]any{v}, nil
	case []any:
		out := make([]map[string]any, 0, len(v))
		for i, item := range v {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, invalid("file", "element %d is not an object", i)
			}
			out = append(out, m)
		}
		return out, nil
	default:
		return nil, invalid("file", "expected a JSON object or array of objects")
	}
}

// Upload builds the creation operation for records read from a file. Every record
// must carry every tracked attribute of kind, and numeric attributes must be
// non-negative numbers or null. One record goes to the single-record
// route, several to the bulk route.
func Upload(routes reporter.Routes, kind models.ResourceKind, records []map[string]any) (reporter.Operation, error) {
	if err := checkKind(kind); err != nil {
		return reporter.Operation{}, err
	}
	if len(records) == 0 {
		return reporter.Operation{}, invalid("file", "no records to upload")
	}

	missing := map[string]bool{}
	for _, rec := range records {
		for _, attr := range kind.Attrs() {
			if _, ok := rec[attr]; !ok {
				missing[attr] = true
			}
		}
		if err := checkUnknownAttrs(kind, keysOf(rec)); err != nil {
			return reporter.Operation{}, err
		}
		if err := checkNumbers(rec); err != nil {
			return reporter.Operation{}, err
		}
	}
	if len(missing) > 0 {
		return reporter.Operation{}, invalid("file", "attributes %s are missing", strings.Join(keysOf(missing), ", "))
	}

	route := kindRoute(routes, kind)
	summary := fmt.Sprintf("Successfully Created ID: %v in %s Database!", records[0][models.AttrID], kind.DisplayName())
	if len(records) > 1 {
		route = pluralRoute(routes, kind)
		summary = fmt.Sprintf("Successfully Uploaded %d records to %s!", len(records), kind.DBName())
	}
	return reporter.Operation{
		Action:  reporter.ActionCreate,
		Kind:    kind,
		Method:  http.MethodPost,
		Route:   route,
		Body:    records,
		Summary: summary,
	}, nil
}

func checkUnknownAttrs(kind models.ResourceKind, keys []string) error {
	for _, k := range keys {
		if !kind.HasAttr(k) {
			return invalid(k, "not a tracked %s attribute", kind)
		}
	}
	return nil
}

func keysOf[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
