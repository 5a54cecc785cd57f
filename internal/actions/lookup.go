package actions

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/query"
	"github.com/dotcommander/shelf/internal/reporter"
)

// Lookup builds the fetch-by-identifier operation.
func Lookup(routes reporter.Routes, kind models.ResourceKind, id string) (reporter.Operation, error) {
	if err := checkKind(kind); err != nil {
		return reporter.Operation{}, err
	}
	id = trimmed(id)
	if err := checkID(models.AttrID, id); err != nil {
		return reporter.Operation{}, err
	}
	return reporter.Operation{
		Action: reporter.ActionRead,
		Kind:   kind,
		Method: http.MethodGet,
		Route:  kindRoute(routes, kind),
		Query:  url.Values{models.AttrID: {id}},
		Decode: reporter.DecodeJSON,
	}, nil
}

// Search parses q and builds the search operation. The parsed query is returned
// so callers know which kind the results belong to.
func Search(routes reporter.Routes, q string) (reporter.Operation, query.Query, error) {
	parsed, err := query.Parse(q)
	if err != nil {
		return reporter.Operation{}, query.Query{}, invalid("query", "%s", err.Error())
	}
	return reporter.Operation{
		Action: reporter.ActionSearch,
		Kind:   parsed.Kind(),
		Method: http.MethodGet,
		Route:  routes.Search,
		Query:  url.Values{"q": {q}},
		Decode: reporter.DecodeJSON,
	}, parsed, nil
}

// Delete builds the remove-by-identifier operation.
func Delete(routes reporter.Routes, kind models.ResourceKind, id string) (reporter.Operation, error) {
	if err := checkKind(kind); err != nil {
		return reporter.Operation{}, err
	}
	id = trimmed(id)
	if err := checkID(models.AttrID, id); err != nil {
		return reporter.Operation{}, err
	}
	return reporter.Operation{
		Action:  reporter.ActionDelete,
		Kind:    kind,
		Method:  http.MethodDelete,
		Route:   kindRoute(routes, kind),
		Query:   url.Values{models.AttrID: {id}},
		Summary: fmt.Sprintf("Successfully Removed ID: %s from %s!", id, kind.DBName()),
	}, nil
}

func kindRoute(routes reporter.Routes, kind models.ResourceKind) string {
	if kind == models.KindAuthor {
		return routes.Author
	}
	return routes.Book
}

func pluralRoute(routes reporter.Routes, kind models.ResourceKind) string {
	if kind == models.KindAuthor {
		return routes.Authors
	}
	return routes.Books
}
