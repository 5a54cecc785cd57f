package actions

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotcommander/shelf/internal/models"
	"github.com/dotcommander/shelf/internal/reporter"
)

var routes = reporter.DefaultRoutes()

func requireValidation(t *testing.T, err error, field string) {
	t.Helper()
	require.Error(t, err)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	require.Equal(t, field, ve.Field)
	require.Equal(t, "VALIDATION_FAILED", ve.ErrorCode())
}

func bodyJSON(t *testing.T, op reporter.Operation) string {
	t.Helper()
	b, err := json.Marshal(op.Body)
	require.NoError(t, err)
	return string(b)
}

func TestLookup(t *testing.T) {
	op, err := Lookup(routes, models.KindAuthor, " 45372 ")
	require.NoError(t, err)
	require.NoError(t, op.Validate())
	require.Equal(t, http.MethodGet, op.Method)
	require.Equal(t, "api/author", op.Route)
	require.Equal(t, "45372", op.Query.Get("_id"))
	require.Equal(t, reporter.DecodeJSON, op.Decode)
	require.Equal(t, models.KindAuthor, op.Kind)

	_, err = Lookup(routes, models.KindBook, "")
	requireValidation(t, err, "_id")
	_, err = Lookup(routes, models.KindBook, "37 35")
	requireValidation(t, err, "_id")
	_, err = Lookup(routes, models.ResourceKind("magazine"), "1")
	requireValidation(t, err, "kind")
}

func TestSearch(t *testing.T) {
	op, q, err := Search(routes, `book.rating_value : > 4.6`)
	require.NoError(t, err)
	require.Equal(t, "api/search", op.Route)
	require.Equal(t, `book.rating_value : > 4.6`, op.Query.Get("q"))
	require.Equal(t, models.KindBook, q.Kind())
	require.Equal(t, models.KindBook, op.Kind)

	_, _, err = Search(routes, `book.rating_value : > four`)
	requireValidation(t, err, "query")
}

func TestDelete(t *testing.T) {
	op, err := Delete(routes, models.KindBook, "3735293")
	require.NoError(t, err)
	require.Equal(t, http.MethodDelete, op.Method)
	require.Equal(t, "api/book", op.Route)
	require.Equal(t, "3735293", op.Query.Get("_id"))
	require.Nil(t, op.Body)
	require.Equal(t, "Successfully Removed ID: 3735293 from Book DB!", op.Summary)

	op, err = Delete(routes, models.KindAuthor, "45372")
	require.NoError(t, err)
	require.Equal(t, "Successfully Removed ID: 45372 from Author DB!", op.Summary)
}

func TestUpdate_MergesIdentifier(t *testing.T) {
	op, err := Update(routes, models.KindBook, "3735293", `{"book_id":"1"}`)
	require.NoError(t, err)
	require.Equal(t, http.MethodPut, op.Method)
	require.Equal(t, "api/book", op.Route)
	require.JSONEq(t, `{"_id":"3735293","book_id":"1"}`, bodyJSON(t, op))
	require.Equal(t, "Successfully Updated ID: 3735293 in Book DB!", op.Summary)
}

func TestUpdate_Rejects(t *testing.T) {
	_, err := Update(routes, models.KindBook, "3735293", `{"_id":"9","book_id":"1"}`)
	requireValidation(t, err, "update")
	require.Contains(t, err.Error(), "immutable")

	for _, payload := range []string{`{"book_id":`, `null`, `[1,2]`, `"x"`, `{}`} {
		_, err = Update(routes, models.KindBook, "3735293", payload)
		requireValidation(t, err, "update")
	}

	_, err = Update(routes, models.KindAuthor, "45372", `{"ISBN":"x"}`)
	requireValidation(t, err, "ISBN")

	_, err = Update(routes, models.KindBook, "", `{"book_id":"1"}`)
	requireValidation(t, err, "_id")
}

func TestUpdate_ChecksNumericAttributes(t *testing.T) {
	op, err := Update(routes, models.KindBook, "3735293", `{"rating_value":4.4,"review_count":null}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"_id":"3735293","rating_value":4.4,"review_count":null}`, bodyJSON(t, op))

	_, err = Update(routes, models.KindBook, "3735293", `{"rating_value":-1}`)
	requireValidation(t, err, "rating_value")

	_, err = Update(routes, models.KindAuthor, "45372", `{"rating_count":"lots"}`)
	requireValidation(t, err, "rating_count")
}

func TestCreate(t *testing.T) {
	op, err := Create(routes, models.KindBook, map[string]string{
		"_id":               "3735293",
		"book_title":        "Clean Code",
		"rating_value":      "4.37",
		"rating_count":      "18,934",
		"similar_book_urls": `["https://a", "https://b"]`,
	})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, op.Method)
	require.Equal(t, "api/book", op.Route)
	require.Equal(t, "Successfully Created ID: 3735293 in Book Database!", op.Summary)

	records, ok := op.Body.([]map[string]any)
	require.True(t, ok)
	require.Len(t, records, 1)
	rec := records[0]
	require.Len(t, rec, len(models.BookAttrs))
	require.Equal(t, "3735293", rec["_id"])
	require.Equal(t, 4.37, rec["rating_value"])
	require.Equal(t, float64(18934), rec["rating_count"])
	require.Nil(t, rec["review_count"])
	require.Nil(t, rec["ISBN"])
	require.Equal(t, []any{"https://a", "https://b"}, rec["similar_book_urls"])
}

func TestCreate_Rejects(t *testing.T) {
	_, err := Create(routes, models.KindBook, map[string]string{"book_title": "x"})
	requireValidation(t, err, "_id")

	_, err = Create(routes, models.KindBook, map[string]string{"_id": "1", "rating_value": "-1"})
	requireValidation(t, err, "rating_value")

	_, err = Create(routes, models.KindBook, map[string]string{"_id": "1", "review_count": "many"})
	requireValidation(t, err, "review_count")

	_, err = Create(routes, models.KindAuthor, map[string]string{"_id": "1", "book_title": "x"})
	requireValidation(t, err, "book_title")
}

func fullRecord(kind models.ResourceKind, id string) map[string]any {
	rec := map[string]any{}
	for _, a := range kind.Attrs() {
		rec[a] = nil
	}
	rec["_id"] = id
	return rec
}

func TestDecodeRecords(t *testing.T) {
	recs, err := DecodeRecords([]byte(`{"_id":"1"}`))
	require.NoError(t, err)
	require.Len(t, recs, 1)

	recs, err = DecodeRecords([]byte(`[{"_id":"1"},{"_id":"2"}]`))
	require.NoError(t, err)
	require.Len(t, recs, 2)

	for _, bad := range []string{`nope`, `[1]`, `"x"`} {
		_, err = DecodeRecords([]byte(bad))
		requireValidation(t, err, "file")
	}
}

func TestUpload_RoutesByCount(t *testing.T) {
	op, err := Upload(routes, models.KindAuthor, []map[string]any{fullRecord(models.KindAuthor, "45372")})
	require.NoError(t, err)
	require.Equal(t, "api/author", op.Route)
	require.Equal(t, "Successfully Created ID: 45372 in Author Database!", op.Summary)

	op, err = Upload(routes, models.KindBook, []map[string]any{fullRecord(models.KindBook, "1"), fullRecord(models.KindBook, "2")})
	require.NoError(t, err)
	require.Equal(t, "api/books", op.Route)
	require.Equal(t, "Successfully Uploaded 2 records to Book DB!", op.Summary)
}

func TestUpload_Rejects(t *testing.T) {
	_, err := Upload(routes, models.KindBook, nil)
	requireValidation(t, err, "file")

	partial := fullRecord(models.KindBook, "1")
	delete(partial, "ISBN")
	delete(partial, "cover_url")
	_, err = Upload(routes, models.KindBook, []map[string]any{partial})
	requireValidation(t, err, "file")
	require.Contains(t, err.Error(), "ISBN, cover_url")

	extra := fullRecord(models.KindBook, "1")
	extra["color"] = "red"
	_, err = Upload(routes, models.KindBook, []map[string]any{extra})
	requireValidation(t, err, "color")
}

func TestUpload_ChecksNumericAttributes(t *testing.T) {
	good := fullRecord(models.KindBook, "1")
	good["rating_value"] = 4.37
	good["rating_count"] = float64(18934)
	_, err := Upload(routes, models.KindBook, []map[string]any{good})
	require.NoError(t, err)

	negative := fullRecord(models.KindBook, "2")
	negative["review_count"] = float64(-3)
	_, err = Upload(routes, models.KindBook, []map[string]any{good, negative})
	requireValidation(t, err, "review_count")

	text := fullRecord(models.KindAuthor, "45372")
	text["rating_value"] = "high"
	_, err = Upload(routes, models.KindAuthor, []map[string]any{text})
	requireValidation(t, err, "rating_value")
}

func TestScrape_SendsStartURL(t *testing.T) {
	op, err := Scrape(routes, ScrapeRequest{
		MaxBook:   200,
		MaxAuthor: 150,
		StartURL:  "https://www.goodreads.com/book/show/3735293-clean-code",
	})
	require.NoError(t, err)
	require.Equal(t, http.MethodPost, op.Method)
	require.Equal(t, "api/scrape", op.Route)
	require.Equal(t, "Scraping done successfully!", op.Summary)
	// start_url must carry the URL, not the author count.
	require.JSONEq(t, `{"max_book":200,"max_author":150,"start_url":"https://www.goodreads.com/book/show/3735293-clean-code"}`, bodyJSON(t, op))
}

func TestScrape_Rejects(t *testing.T) {
	good := "https://www.goodreads.com/book/show/1"
	_, err := Scrape(routes, ScrapeRequest{MaxBook: -1, MaxAuthor: 10, StartURL: good})
	requireValidation(t, err, "max_book")
	_, err = Scrape(routes, ScrapeRequest{MaxBook: 10, MaxAuthor: -5, StartURL: good})
	requireValidation(t, err, "max_author")
	_, err = Scrape(routes, ScrapeRequest{MaxBook: MaxScrapeCount + 1, MaxAuthor: 10, StartURL: good})
	requireValidation(t, err, "max_book")
	_, err = Scrape(routes, ScrapeRequest{MaxBook: 1, MaxAuthor: 1, StartURL: "http://www.goodreads.com/book/show/1"})
	requireValidation(t, err, "start_url")
	_, err = Scrape(routes, ScrapeRequest{MaxBook: 0, MaxAuthor: 0, StartURL: good})
	require.NoError(t, err)
}

func TestRankAndTopRated(t *testing.T) {
	op, err := Rank(routes, models.KindBook, DefaultTopK)
	require.NoError(t, err)
	require.Equal(t, `book._id : "*"`, op.Query.Get("q"))

	_, err = Rank(routes, models.KindBook, MinTopK-1)
	requireValidation(t, err, "top")
	_, err = Rank(routes, models.KindBook, MaxTopK+1)
	requireValidation(t, err, "top")

	payload := []any{
		map[string]any{"_id": "a", "rating_value": 4.1},
		map[string]any{"_id": "b", "rating_value": 4.9},
		map[string]any{"_id": "c", "rating_value": 4.5},
		map[string]any{"_id": "d", "rating_value": 4.5},
	}
	top := TopRated(models.KindBook, payload, 3)
	ids := []string{}
	for _, r := range top {
		ids = append(ids, r.ID())
	}
	require.Equal(t, []string{"b", "c", "d"}, ids)
	require.Len(t, TopRated(models.KindBook, payload, 10), 4)
}

func TestValidationError_Message(t *testing.T) {
	require.EqualError(t, invalid("max_book", "must be positive"), "max_book: must be positive")
	require.EqualError(t, &ValidationError{Reason: "bad"}, "bad")
	require.Nil(t, (&ValidationError{Reason: "bad"}).Context())
}
