// Package query parses the catalog search language so malformed searches are
// rejected before they reach the API.
//
// A query is one or two units joined by AND or OR:
//
//	book.rating_value : > 4.6
//	author.author_name : "Robert C. Martin" OR author.rating_value : < 3
//
// A unit is "<kind>.<attr> : [>|<|NOT] <value>". Exact and NOT values must be
// double-quoted; > and < take a non-negative number. A single "*" wildcard may
// appear in either the attribute or the value, never both, and never together
// with a comparison operator.
package query

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dotcommander/shelf/internal/models"
)

// Operator is the comparison in a unit. The zero value is an exact match.
type Operator string

// Operators.
const (
	OpExact Operator = ""
	OpGT    Operator = ">"
	OpLT    Operator = "<"
	OpNot   Operator = "NOT"
)

// Logic joins two units.
type Logic string

// Logic operators. LogicNone means a single unit.
const (
	LogicNone Logic = ""
	LogicAnd  Logic = "AND"
	LogicOr   Logic = "OR"
)

// ErrMalformed is wrapped by every parse error.
var ErrMalformed = errors.New("malformed query")

var (
	unitPattern    = regexp.MustCompile(`^\s*(book|author)\.(\S*)\s*:\s*(>|<|NOT)?\s*(.*?)\s*$`)
	logicPattern   = regexp.MustCompile(`^\s*(.*?)\s+(AND|OR)\s+(.*?)\s*$`)
	numberPattern  = regexp.MustCompile(`^\d*\.?\d*$`)
	quotedPattern  = regexp.MustCompile(`^"(.*)"$`)
	nestedLogicPat = regexp.MustCompile(`\b(AND|OR)\b`)
)

// Unit is one "<kind>.<attr> : <op> <value>" clause.
type Unit struct {
	Kind  models.ResourceKind `json:"kind"`
	Attr  string              `json:"attr"`
	Op    Operator            `json:"op,omitempty"`
	Value string              `json:"value"`
}

// String renders the unit in canonical form.
func (u Unit) String() string {
	if u.Op == OpExact {
		return fmt.Sprintf("%s.%s : %s", u.Kind, u.Attr, u.Value)
	}
	return fmt.Sprintf("%s.%s : %s %s", u.Kind, u.Attr, u.Op, u.Value)
}

// Query is a parsed search string.
type Query struct {
	Raw   string `json:"raw"`
	Units []Unit `json:"units"`
	Logic Logic  `json:"logic,omitempty"`
}

// Kind is the collection every unit of the query targets.
func (q Query) Kind() models.ResourceKind {
	if len(q.Units) == 0 {
		return ""
	}
	return q.Units[0].Kind
}

// Parse validates q and returns its structure.
func Parse(q string) (Query, error) {
	if strings.TrimSpace(q) == "" {
		return Query{}, fmt.Errorf("%w: query is empty", ErrMalformed)
	}

	m := logicPattern.FindStringSubmatch(q)
	if m == nil {
		u, err := parseUnit(q)
		if err != nil {
			return Query{}, err
		}
		return Query{Raw: q, Units: []Unit{u}}, nil
	}

	left, logic, right := m[1], Logic(m[2]), m[3]
	if nestedLogicPat.MatchString(right) {
		return Query{}, fmt.Errorf("%w: nested logic operators are not supported", ErrMalformed)
	}
	u1, err := parseUnit(left)
	if err != nil {
		return Query{}, err
	}
	u2, err := parseUnit(right)
	if err != nil {
		return Query{}, err
	}
	if u1.Kind != u2.Kind {
		return Query{}, fmt.Errorf("%w: logic operators only join units of the same kind", ErrMalformed)
	}
	return Query{Raw: q, Units: []Unit{u1, u2}, Logic: logic}, nil
}

func parseUnit(s string) (Unit, error) {
	m := unitPattern.FindStringSubmatch(s)
	if m == nil {
		return Unit{}, fmt.Errorf("%w: %q is not of the form <kind>.<attr> : <value>", ErrMalformed, strings.TrimSpace(s))
	}
	u := Unit{Kind: models.ResourceKind(m[1]), Attr: m[2], Op: Operator(m[3]), Value: m[4]}

	switch {
	case u.Attr == "":
		return Unit{}, fmt.Errorf("%w: query field is missing", ErrMalformed)
	case u.Value == "":
		return Unit{}, fmt.Errorf("%w: query value is missing", ErrMalformed)
	case strings.Contains(u.Value, ">") || strings.Contains(u.Value, "<") || strings.Contains(u.Value, "NOT"):
		return Unit{}, fmt.Errorf("%w: only one comparison operator is allowed", ErrMalformed)
	}

	attrWildcard := strings.Contains(u.Attr, "*")
	if !attrWildcard && !u.Kind.HasAttr(u.Attr) {
		return Unit{}, fmt.Errorf("%w: field %q is not tracked for %s", ErrMalformed, u.Attr, u.Kind)
	}
	if attrWildcard && strings.Contains(u.Value, "*") {
		return Unit{}, fmt.Errorf("%w: only one wildcard is allowed per unit", ErrMalformed)
	}

	switch u.Op {
	case OpGT, OpLT:
		if !numberPattern.MatchString(u.Value) {
			return Unit{}, fmt.Errorf("%w: %s needs a non-negative number, got %s", ErrMalformed, u.Op, u.Value)
		}
		if attrWildcard || strings.Contains(u.Value, "*") {
			return Unit{}, fmt.Errorf("%w: wildcards cannot be combined with comparison operators", ErrMalformed)
		}
	default:
		if !quotedPattern.MatchString(u.Value) {
			return Unit{}, fmt.Errorf("%w: exact matches must be quoted, got %s", ErrMalformed, u.Value)
		}
		if u.Op == OpNot && (attrWildcard || strings.Contains(u.Value, "*")) {
			return Unit{}, fmt.Errorf("%w: wildcards cannot be combined with NOT", ErrMalformed)
		}
	}
	return u, nil
}

// Compose joins query parts the way the search form collects them. logic and
// unit2 must be given together or not at all.
func Compose(unit1 string, logic Logic, unit2 string) (string, error) {
	unit1 = strings.TrimSpace(unit1)
	unit2 = strings.TrimSpace(unit2)
	if unit1 == "" {
		return "", fmt.Errorf("%w: first query unit is required", ErrMalformed)
	}
	if (logic == LogicNone) != (unit2 == "") {
		return "", fmt.Errorf("%w: logic operator and second unit must be provided together", ErrMalformed)
	}
	if logic == LogicNone {
		return unit1, nil
	}
	if logic != LogicAnd && logic != LogicOr {
		return "", fmt.Errorf("%w: logic operator must be AND or OR, got %q", ErrMalformed, logic)
	}
	return unit1 + " " + string(logic) + " " + unit2, nil
}

// All returns the wildcard query matching every record of kind.
func All(kind models.ResourceKind) string {
	return fmt.Sprintf(`%s._id : "*"`, kind)
}
