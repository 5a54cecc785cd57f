package actions

import (
	"net/http"
	"regexp"

	"github.com/dotcommander/shelf/internal/reporter"
)

// MaxScrapeCount bounds max_book and max_author.
const MaxScrapeCount = 2000

var startURLPattern = regexp.MustCompile(`^https://www\.goodreads\.com/book/show/.*$`)

// ScrapeRequest is the scrape form.
type ScrapeRequest struct {
	MaxBook   int
	MaxAuthor int
	StartURL  string
}

// ScrapeBody is the wire body of the scrape route.
type ScrapeBody struct {
	MaxBook   int    `json:"max_book"`
	MaxAuthor int    `json:"max_author"`
	StartURL  string `json:"start_url"`
}

// Scrape builds the operation asking the backend to ingest new records,
// starting from a book page. The backend runs it asynchronously.
func Scrape(routes reporter.Routes, req ScrapeRequest) (reporter.Operation, error) {
	if req.MaxBook < 0 || req.MaxBook > MaxScrapeCount {
		return reporter.Operation{}, invalid("max_book", "must be an integer between 0 and %d", MaxScrapeCount)
	}
	if req.MaxAuthor < 0 || req.MaxAuthor > MaxScrapeCount {
		return reporter.Operation{}, invalid("max_author", "must be an integer between 0 and %d", MaxScrapeCount)
	}
	startURL := trimmed(req.StartURL)
	if !startURLPattern.MatchString(startURL) {
		return reporter.Operation{}, invalid("start_url", "must be a goodreads book page (https://www.goodreads.com/book/show/...)")
	}

	return reporter.Operation{
		Action: reporter.ActionScrape,
		Method: http.MethodPost,
		Route:  routes.Scrape,
		Body: ScrapeBody{
			MaxBook:   req.MaxBook,
			MaxAuthor: req.MaxAuthor,
			StartURL:  startURL,
		},
		Summary: "Scraping done successfully!",
	}, nil
}
