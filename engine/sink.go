package engine

import (
	"bufio"
	"io"

	"github.com/obokit/gafcheck/curie"
	"github.com/obokit/gafcheck/errors"
	"github.com/obokit/gafcheck/rules"
)

// Sink receives results in input order, exactly once per input line.
type Sink interface {
	// Emit delivers one ordered result. Returning an error aborts the run.
	Emit(res Result) error
	// Close flushes anything buffered. Called once after the last Emit.
	Close() error
}

// WriterSink renders the corrected annotation stream: comment lines pass
// through verbatim, repaired records are re-rendered, and records with an
// error finding or a parse failure are dropped.
type WriterSink struct {
	w   *bufio.Writer
	ctx *curie.ContextMap
}

// NewWriterSink creates a corrected-output sink writing to w.
func NewWriterSink(w io.Writer, ctx *curie.ContextMap) *WriterSink {
	return &WriterSink{w: bufio.NewWriter(w), ctx: ctx}
}

// Emit implements Sink.
func (s *WriterSink) Emit(res Result) error {
	switch {
	case res.Comment:
		if _, err := s.w.WriteString(res.Line); err != nil {
			return errors.Wrap(err, "WriterSink", "Emit", "write comment")
		}
	case res.Record == nil:
		// malformed line, dropped
		return nil
	default:
		if sev, ok := rules.MaxSeverity(res.Issues); ok && sev == rules.SeverityError {
			return nil
		}
		if _, err := s.w.WriteString(res.Record.Render(s.ctx)); err != nil {
			return errors.Wrap(err, "WriterSink", "Emit", "write record")
		}
	}
	if err := s.w.WriteByte('\n'); err != nil {
		return errors.Wrap(err, "WriterSink", "Emit", "write record")
	}
	return nil
}

// Close implements Sink.
func (s *WriterSink) Close() error {
	if err := s.w.Flush(); err != nil {
		return errors.Wrap(err, "WriterSink", "Close", "flush")
	}
	return nil
}

// DiscardSink drops every result. Used when only the report is wanted.
type DiscardSink struct{}

// Emit implements Sink.
func (DiscardSink) Emit(Result) error { return nil }

// Close implements Sink.
func (DiscardSink) Close() error { return nil }
