package reporter

import "net/http"

// descriptors maps the statuses the catalog API is known to produce to labels.
// Lookup happens at render time only; statuses outside the table have no label.
var descriptors = map[int]string{
	http.StatusBadRequest:           "Bad Request",
	http.StatusNotFound:             "Resource Not Found",
	http.StatusUnsupportedMediaType: "Bad Application",
}

// LookupLabel returns the configured label for code, or "" when code is unknown.
func LookupLabel(code int) string {
	return descriptors[code]
}
