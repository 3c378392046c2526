// Package diag implements the compiler's diagnostic sink: an ordered,
// deduplicated log of lexical, syntactic, semantic and linker errors
// accumulated across a compilation and surfaced together at the end.
//
// This stays a plain accumulating slice printed with fmt, matching the
// teacher's own error-list texture (go/scanner.ErrorList, printed with
// fmt.Fprintf) rather than reaching for a structured logging library —
// there is no streaming, leveled, or concurrent logging need here, just a
// batch of compile diagnostics sorted once before display.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fy-lang/funcy/lang/token"
)

// Record is a single diagnostic: a message located at a span.
type Record struct {
	Span    token.Span
	Message string
}

// Log accumulates Records, keyed by span, and can sort and render them.
type Log struct {
	records []Record
	seen    map[string]bool
}

// Add inserts a new diagnostic. A Record with the same span and message as
// one already present is silently dropped (dedup).
func (l *Log) Add(span token.Span, format string, args ...any) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	key := dedupKey(span, msg)
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	if l.seen[key] {
		return
	}
	l.seen[key] = true
	l.records = append(l.records, Record{Span: span, Message: msg})
}

func dedupKey(span token.Span, msg string) string {
	return fmt.Sprintf("%s|%d|%d|%d|%s", span.Start.Module, span.Start.Offset, span.End.Offset, len(msg), msg)
}

// Len reports the number of distinct diagnostics recorded.
func (l *Log) Len() int { return len(l.records) }

// HasErrors reports whether any diagnostic was recorded.
func (l *Log) HasErrors() bool { return len(l.records) > 0 }

// Records returns the accumulated diagnostics, sorted by
// (module name, start offset ascending, end offset ascending).
func (l *Log) Records() []Record {
	sort.SliceStable(l.records, func(i, j int) bool {
		a, b := l.records[i], l.records[j]
		if a.Span.Start.Module != b.Span.Start.Module {
			return a.Span.Start.Module < b.Span.Start.Module
		}
		if a.Span.Start.Offset != b.Span.Start.Offset {
			return a.Span.Start.Offset < b.Span.Start.Offset
		}
		return a.Span.End.Offset < b.Span.End.Offset
	})
	return l.records
}

// Reset clears the log.
func (l *Log) Reset() {
	l.records = l.records[:0]
	l.seen = nil
}

// String renders every diagnostic, one per line, sorted as per Records.
func (l *Log) String() string {
	var sb strings.Builder
	for _, r := range l.Records() {
		sb.WriteString(r.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders a single record as "<span>: <message>", normalizing
// control characters in the message and using "<unlocated>" for an empty
// span.
func (r Record) String() string {
	loc := "<unlocated>"
	if !r.Span.Start.Unknown() {
		loc = r.Span.String()
	}
	return fmt.Sprintf("%s: %s", loc, escapeControl(r.Message))
}

func escapeControl(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\t", "\\t")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	return s
}
