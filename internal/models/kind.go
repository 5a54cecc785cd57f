package models

import (
	"fmt"
	"strings"
)

// ResourceKind identifies which catalog collection a record or operation targets.
// The kind is always carried explicitly; it is never inferred from record shape.
type ResourceKind string

// Resource kinds.
const (
	KindBook   ResourceKind = "book"
	KindAuthor ResourceKind = "author"
)

// Attribute names shared by both kinds.
const (
	AttrID          = "_id"
	AttrRatingValue = "rating_value"
	AttrRatingCount = "rating_count"
	AttrReviewCount = "review_count"
)

// BookAttrs lists every tracked book attribute in form order.
var BookAttrs = []string{
	"_id", "book_id", "book_title", "book_url", "cover_url", "author_name", "author_url",
	"ISBN", "rating_value", "rating_count", "review_count", "similar_book_urls",
}

// AuthorAttrs lists every tracked author attribute in form order.
var AuthorAttrs = []string{
	"_id", "author_id", "author_name", "author_url", "image_url",
	"rating_value", "rating_count", "review_count", "author_books", "related_authors",
}

// numericAttrs are parsed as non-negative numbers before being sent.
var numericAttrs = []string{AttrRatingValue, AttrRatingCount, AttrReviewCount}

// Kinds returns all known kinds in display order.
func Kinds() []ResourceKind {
	return []ResourceKind{KindBook, KindAuthor}
}

// ParseKind accepts "book" or "author" (case-insensitive, surrounding space ignored).
func ParseKind(s string) (ResourceKind, error) {
	switch ResourceKind(strings.ToLower(strings.TrimSpace(s))) {
	case KindBook:
		return KindBook, nil
	case KindAuthor:
		return KindAuthor, nil
	default:
		return "", fmt.Errorf("resource kind must be %q or %q, got %q", KindBook, KindAuthor, s)
	}
}

func (k ResourceKind) String() string { return string(k) }

// Valid reports whether k is one of the known kinds.
func (k ResourceKind) Valid() bool {
	return k == KindBook || k == KindAuthor
}

// Plural is the collective name ("books", "authors").
func (k ResourceKind) Plural() string { return string(k) + "s" }

// DisplayName is "Book" or "Author".
func (k ResourceKind) DisplayName() string {
	if k == KindAuthor {
		return "Author"
	}
	return "Book"
}

// DBName is the human name of the backing collection ("Book DB", "Author DB").
func (k ResourceKind) DBName() string { return k.DisplayName() + " DB" }

// Attrs returns the tracked attribute list for the kind.
func (k ResourceKind) Attrs() []string {
	if k == KindAuthor {
		return AuthorAttrs
	}
	return BookAttrs
}

// HasAttr reports whether name is a tracked attribute of the kind.
func (k ResourceKind) HasAttr(name string) bool {
	for _, a := range k.Attrs() {
		if a == name {
			return true
		}
	}
	return false
}

// TitleAttr is the attribute used as a record's heading.
func (k ResourceKind) TitleAttr() string {
	if k == KindAuthor {
		return "author_name"
	}
	return "book_title"
}

// URLAttr is the attribute pointing at the record's public page.
func (k ResourceKind) URLAttr() string {
	if k == KindAuthor {
		return "author_url"
	}
	return "book_url"
}

// IsNumericAttr reports whether name is parsed as a number on input.
func IsNumericAttr(name string) bool {
	for _, a := range numericAttrs {
		if a == name {
			return true
		}
	}
	return false
}
