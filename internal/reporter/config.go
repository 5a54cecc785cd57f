package reporter

import (
	"errors"
	"net/url"
	"strings"
)

// DefaultHost is the catalog API address used when nothing else is configured.
const DefaultHost = "http://127.0.0.1:5000/"

// Routes names the backend paths, relative to Config.Host.
type Routes struct {
	Book    string `yaml:"book" json:"book"`
	Author  string `yaml:"author" json:"author"`
	Books   string `yaml:"books" json:"books"`
	Authors string `yaml:"authors" json:"authors"`
	Search  string `yaml:"search" json:"search"`
	Scrape  string `yaml:"scrape" json:"scrape"`
}

// DefaultRoutes returns the catalog API's standard routes.
func DefaultRoutes() Routes {
	return Routes{
		Book:    "api/book",
		Author:  "api/author",
		Books:   "api/books",
		Authors: "api/authors",
		Search:  "api/search",
		Scrape:  "api/scrape",
	}
}

// WithDefaults fills empty routes from DefaultRoutes.
func (r Routes) WithDefaults() Routes {
	d := DefaultRoutes()
	if r.Book == "" {
		r.Book = d.Book
	}
	if r.Author == "" {
		r.Author = d.Author
	}
	if r.Books == "" {
		r.Books = d.Books
	}
	if r.Authors == "" {
		r.Authors = d.Authors
	}
	if r.Search == "" {
		r.Search = d.Search
	}
	if r.Scrape == "" {
		r.Scrape = d.Scrape
	}
	return r
}

// Config is the explicit endpoint configuration a Reporter is built with.
type Config struct {
	Host      string `json:"host"`
	Routes    Routes `json:"routes"`
	UserAgent string `json:"user_agent,omitempty"`
}

// Validate checks that Host is an absolute http(s) URL.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("host is required")
	}
	u, err := url.Parse(c.Host)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errors.New("host must be an http or https URL")
	}
	if u.Host == "" {
		return errors.New("host must include an address")
	}
	return nil
}

// URL joins Host, route and query into a request URL.
func (c Config) URL(route string, query url.Values) string {
	u := strings.TrimRight(c.Host, "/") + "/" + strings.TrimLeft(route, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
