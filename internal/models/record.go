package models

import (
	"fmt"
	"sort"
	"strconv"
)

// Record is one catalog entry as returned by the backend. Field presence is not
// enforced; Kind travels with the data so renderers never have to guess.
type Record struct {
	Kind   ResourceKind   `json:"kind"`
	Fields map[string]any `json:"fields"`
}

// Field is a single name/value pair in display order.
type Field struct {
	Name  string
	Value any
}

// NewRecord tags fields with kind.
func NewRecord(kind ResourceKind, fields map[string]any) Record {
	if fields == nil {
		fields = map[string]any{}
	}
	return Record{Kind: kind, Fields: fields}
}

// RecordsFromPayload converts a decoded JSON payload (object or array of objects)
// into records of the given kind. Non-object array elements are skipped.
func RecordsFromPayload(kind ResourceKind, payload any) []Record {
	switch v := payload.(type) {
	case map[string]any:
		return []Record{NewRecord(kind, v)}
	case []any:
		out := make([]Record, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, NewRecord(kind, m))
			}
		}
		return out
	default:
		return nil
	}
}

// ID returns the record identifier as a string, or "" when absent.
func (r Record) ID() string {
	return stringify(r.Fields[AttrID])
}

// Title returns the kind's title attribute.
func (r Record) Title() string {
	return stringify(r.Fields[r.Kind.TitleAttr()])
}

// URL returns the kind's URL attribute.
func (r Record) URL() string {
	return stringify(r.Fields[r.Kind.URLAttr()])
}

// Rating returns rating_value as a float. Missing or unparseable values yield 0.
func (r Record) Rating() float64 {
	return number(r.Fields[AttrRatingValue])
}

// RatingCount returns rating_count as an integer. Missing values yield 0.
func (r Record) RatingCount() int64 {
	return int64(number(r.Fields[AttrRatingCount]))
}

// OrderedFields returns scalar fields first (tracked attributes in form order, then
// unknown keys alphabetically), followed by list-valued fields in the same order.
func (r Record) OrderedFields() []Field {
	seen := make(map[string]bool, len(r.Fields))
	names := make([]string, 0, len(r.Fields))
	for _, a := range r.Kind.Attrs() {
		if _, ok := r.Fields[a]; ok {
			names = append(names, a)
			seen[a] = true
		}
	}
	extra := make([]string, 0)
	for k := range r.Fields {
		if !seen[k] {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	names = append(names, extra...)

	scalars := make([]Field, 0, len(names))
	lists := make([]Field, 0)
	for _, n := range names {
		f := Field{Name: n, Value: r.Fields[n]}
		if _, isList := f.Value.([]any); isList {
			lists = append(lists, f)
			continue
		}
		scalars = append(scalars, f)
	}
	return append(scalars, lists...)
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

func number(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
