// Package engine validates an annotation stream against an ontology. Lines
// are parsed and checked on a worker pool, then reassembled into input
// order before they reach the sink and the report aggregator, so parallel
// execution never reorders the output.
package engine

import (
	"bufio"
	"context"
	stderrors "errors"
	"io"
	"log/slog"
	"time"

	"github.com/obokit/gafcheck/annotation"
	"github.com/obokit/gafcheck/errors"
	"github.com/obokit/gafcheck/metric"
	"github.com/obokit/gafcheck/pkg/worker"
	"github.com/obokit/gafcheck/report"
	"github.com/obokit/gafcheck/rules"
)

const (
	// DefaultWorkers is the validation pool size when none is configured.
	DefaultWorkers = 4

	// maxLineBytes bounds one input line. GAF lines run long but not this
	// long; anything larger is a broken file.
	maxLineBytes = 1 << 20

	stopTimeout = 30 * time.Second
)

// Result is the outcome of one input line.
type Result struct {
	// Index is the zero-based line index within the input.
	Index int
	// Line is the raw input line without its trailing newline.
	Line string
	// Comment marks a passthrough comment line.
	Comment bool
	// Record is the parsed (possibly repaired) record, nil when the line
	// was a comment or failed to parse.
	Record *annotation.Record
	// Issues are the rule findings for the record.
	Issues []rules.Issue
	// ParseErr is set when structural parsing failed.
	ParseErr *annotation.ParseError
}

// Engine runs validation over annotation streams. One engine is built per
// loaded ontology and reused across inputs.
type Engine struct {
	env     *rules.Env
	set     []rules.Rule
	workers int
	metrics *metric.Metrics
	logger  *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithWorkers sets the validation pool size.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithRules replaces the default rule set.
func WithRules(set []rules.Rule) Option {
	return func(e *Engine) { e.set = set }
}

// WithMetrics wires the engine to the registry's core run metrics.
func WithMetrics(registry *metric.Registry) Option {
	return func(e *Engine) {
		if registry != nil {
			e.metrics = registry.Metrics
		}
	}
}

// WithLogger sets the engine's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an engine over the given validation environment.
func New(env *rules.Env, opts ...Option) *Engine {
	e := &Engine{
		env:     env,
		set:     rules.Default(),
		workers: DefaultWorkers,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the engine's rule set, for report aggregator setup.
func (e *Engine) Rules() []rules.Rule { return e.set }

type task struct {
	index int
	line  string
}

// Run validates one input stream. Results reach sink and agg in input
// order. The returned error is nil when the run completed, even if every
// record had findings; findings live in the aggregator.
func (e *Engine) Run(ctx context.Context, r io.Reader, sink Sink, agg *report.Aggregator) error {
	start := time.Now()

	results := make(chan Result, e.workers*4)

	pool := worker.NewPool(e.workers, e.workers*4, func(ctx context.Context, t task) error {
		res := e.check(t)
		select {
		case results <- res:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	if err := pool.Start(ctx); err != nil {
		return errors.WrapFatal(err, "Engine", "Run", "start worker pool")
	}

	drainErr := make(chan error, 1)
	go func() {
		drainErr <- e.drain(results, sink, agg)
	}()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	var scanErr error
	index := 0
	for scanner.Scan() {
		if err := pool.Submit(ctx, task{index: index, line: scanner.Text()}); err != nil {
			scanErr = errors.WrapFatal(err, "Engine", "Run", "submit line")
			break
		}
		index++
	}
	if scanErr == nil && scanner.Err() != nil {
		scanErr = errors.WrapFatal(scanner.Err(), "Engine", "Run", "read input")
	}

	if err := pool.Stop(stopTimeout); err != nil && scanErr == nil {
		scanErr = errors.WrapFatal(err, "Engine", "Run", "drain worker pool")
	}
	close(results)

	if err := <-drainErr; err != nil && scanErr == nil {
		scanErr = err
	}
	if err := sink.Close(); err != nil && scanErr == nil {
		scanErr = err
	}

	if e.metrics != nil {
		e.metrics.RunDuration.Observe(time.Since(start).Seconds())
	}
	e.logger.Debug("run complete",
		"lines", index,
		"elapsed", time.Since(start),
		"workers", e.workers)

	return scanErr
}

// check parses and validates one line. Runs on the worker pool.
func (e *Engine) check(t task) Result {
	res := Result{Index: t.index, Line: t.line}

	if annotation.IsComment(t.line) {
		res.Comment = true
		return res
	}

	start := time.Now()
	rec, err := annotation.ParseLine(t.line, t.index+1, e.env.Context)
	if err != nil {
		var parseErr *annotation.ParseError
		stderrors.As(err, &parseErr)
		res.ParseErr = parseErr
		return res
	}

	res.Record = rec
	res.Issues = rules.Apply(e.set, rec, e.env)

	if e.metrics != nil {
		e.metrics.RecordDuration.Observe(time.Since(start).Seconds())
	}
	return res
}

// drain reorders worker results back into input order and feeds the sink
// and the aggregator. Only this goroutine touches either.
func (e *Engine) drain(results <-chan Result, sink Sink, agg *report.Aggregator) error {
	pending := make(map[int]Result)
	next := 0

	for res := range results {
		pending[res.Index] = res
		for {
			ready, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++

			e.account(ready, agg)
			if err := sink.Emit(ready); err != nil {
				// drain the channel so the workers can finish
				for range results {
				}
				return err
			}
		}
	}
	return nil
}

// account updates the aggregator and metrics for one ordered result.
func (e *Engine) account(res Result, agg *report.Aggregator) {
	outcome := metric.OutcomeOK

	switch {
	case res.Comment:
		outcome = metric.OutcomeComment
	case res.ParseErr != nil:
		outcome = metric.OutcomeMalformed
		if agg != nil {
			agg.Malformed(rules.Issue{
				Rule:     rules.RuleMalformed,
				Severity: rules.SeverityError,
				Line:     res.ParseErr.Line,
				Field:    res.ParseErr.Field,
				Message:  res.ParseErr.Err.Error(),
			})
		}
		e.logger.Warn("malformed line",
			"line", res.Index+1,
			"field", res.ParseErr.Field,
			"error", res.ParseErr.Err)
	default:
		if agg != nil {
			agg.Record(res.Issues)
		}
		if sev, ok := rules.MaxSeverity(res.Issues); ok {
			if sev == rules.SeverityError {
				outcome = metric.OutcomeSkipped
			} else {
				outcome = metric.OutcomeRepaired
			}
		}
	}

	if e.metrics != nil {
		e.metrics.RecordsTotal.WithLabelValues(outcome).Inc()
		for _, is := range res.Issues {
			e.metrics.FindingsTotal.WithLabelValues(is.Rule, is.Severity.String()).Inc()
		}
	}
}
