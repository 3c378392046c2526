package diag_test

import (
	"testing"

	"github.com/fy-lang/funcy/lang/diag"
	"github.com/fy-lang/funcy/lang/token"
	"github.com/stretchr/testify/require"
)

func span(module string, start, end int) token.Span {
	return token.NewSpan(
		token.Position{Module: module, Offset: start, Line: 1, Column: start + 1},
		token.Position{Module: module, Offset: end, Line: 1, Column: end + 1},
	)
}

func TestLogDedup(t *testing.T) {
	var l diag.Log
	l.Add(span("m", 0, 1), "bad thing")
	l.Add(span("m", 0, 1), "bad thing")
	require.Equal(t, 1, l.Len())
}

func TestLogSortOrder(t *testing.T) {
	var l diag.Log
	l.Add(span("b", 0, 1), "in b")
	l.Add(span("a", 5, 6), "second in a")
	l.Add(span("a", 1, 2), "first in a")

	recs := l.Records()
	require.Len(t, recs, 3)
	require.Equal(t, "first in a", recs[0].Message)
	require.Equal(t, "second in a", recs[1].Message)
	require.Equal(t, "in b", recs[2].Message)
}

func TestRecordStringUnlocated(t *testing.T) {
	r := diag.Record{Span: token.Unlocated, Message: "oops"}
	require.Contains(t, r.String(), "<unlocated>")
}

func TestRecordStringEscapesControlChars(t *testing.T) {
	r := diag.Record{Span: span("m", 0, 1), Message: "line1\nline2\ttabbed"}
	require.Contains(t, r.String(), `\n`)
	require.Contains(t, r.String(), `\t`)
}
