package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dotcommander/shelf/internal/models"
)

func TestParse_SingleUnits(t *testing.T) {
	tests := []struct {
		in   string
		want Unit
	}{
		{`book.rating_value : > 4.6`, Unit{Kind: models.KindBook, Attr: "rating_value", Op: OpGT, Value: "4.6"}},
		{`book.book_id :  "3735293"`, Unit{Kind: models.KindBook, Attr: "book_id", Value: `"3735293"`}},
		{`author.rating_count:<100`, Unit{Kind: models.KindAuthor, Attr: "rating_count", Op: OpLT, Value: "100"}},
		{`author.author_name : NOT "Anonymous"`, Unit{Kind: models.KindAuthor, Attr: "author_name", Op: OpNot, Value: `"Anonymous"`}},
		{`book._id : "*"`, Unit{Kind: models.KindBook, Attr: "_id", Value: `"*"`}},
		{`book.*_url : "https://x"`, Unit{Kind: models.KindBook, Attr: "*_url", Value: `"https://x"`}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			q, err := Parse(tt.in)
			require.NoError(t, err)
			require.Equal(t, LogicNone, q.Logic)
			require.Equal(t, []Unit{tt.want}, q.Units)
			require.Equal(t, tt.want.Kind, q.Kind())
		})
	}
}

func TestParse_LogicUnits(t *testing.T) {
	q, err := Parse(`book.rating_value : > 4.5 AND book.review_count : > 1000`)
	require.NoError(t, err)
	require.Equal(t, LogicAnd, q.Logic)
	require.Len(t, q.Units, 2)
	require.Equal(t, "review_count", q.Units[1].Attr)
	require.Equal(t, models.KindBook, q.Kind())
}

func TestParse_Rejects(t *testing.T) {
	for _, in := range []string{
		``,
		`   `,
		`rating_value : > 4`,
		`magazine.title : "x"`,
		`book. : "x"`,
		`book.rating_value : `,
		`book.rating_value : > > 4`,
		`book.unknown_field : "x"`,
		`book.rating_value : > abc`,
		`book.book_title : Clean Code`,
		`book.*_url : "*"`,
		`book.rating_value : > *`,
		`book.book_title : NOT "*"`,
		`book.rating_value : > 4 AND author.rating_value : > 4`,
		`book.rating_value : > 4 AND book.review_count : > 1 OR book.rating_count : > 1`,
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestCompose(t *testing.T) {
	q, err := Compose(`book.rating_value : > 4.6`, LogicNone, "")
	require.NoError(t, err)
	require.Equal(t, `book.rating_value : > 4.6`, q)

	q, err = Compose(` book.rating_value : > 4.6 `, LogicOr, `book.review_count : > 10`)
	require.NoError(t, err)
	require.Equal(t, `book.rating_value : > 4.6 OR book.review_count : > 10`, q)

	_, err = Compose("", LogicNone, "")
	require.ErrorIs(t, err, ErrMalformed)
	_, err = Compose(`book._id : "1"`, LogicAnd, "")
	require.ErrorIs(t, err, ErrMalformed)
	_, err = Compose(`book._id : "1"`, LogicNone, `book._id : "2"`)
	require.ErrorIs(t, err, ErrMalformed)
	_, err = Compose(`book._id : "1"`, Logic("XOR"), `book._id : "2"`)
	require.ErrorIs(t, err, ErrMalformed)
}

func TestAll(t *testing.T) {
	require.Equal(t, `author._id : "*"`, All(models.KindAuthor))
	_, err := Parse(All(models.KindAuthor))
	require.NoError(t, err)
}

func TestUnitString(t *testing.T) {
	require.Equal(t, `book.rating_value : > 4.6`, Unit{Kind: models.KindBook, Attr: "rating_value", Op: OpGT, Value: "4.6"}.String())
	require.Equal(t, `book._id : "1"`, Unit{Kind: models.KindBook, Attr: "_id", Value: `"1"`}.String())
}
