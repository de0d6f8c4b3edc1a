// Package report aggregates validation findings into a run report:
// counts by rule and severity, a bounded sample of findings per rule, and
// record totals. Aggregation is single-writer; the engine's ordered drain
// feeds it one record at a time.
package report

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/obokit/gafcheck/rules"
)

// DefaultSampleCap bounds the findings retained per rule. Counting is
// never bounded, only the retained samples.
const DefaultSampleCap = 50

// RuleSummary is the per-rule section of a finished report.
type RuleSummary struct {
	Rule    string        `json:"rule"`
	Name    string        `json:"name,omitempty"`
	Count   int           `json:"count"`
	Samples []rules.Issue `json:"samples,omitempty"`
}

// Report is the finished, serializable result of one validation run.
type Report struct {
	RunID            string         `json:"run_id"`
	Input            string         `json:"input,omitempty"`
	StartedAt        time.Time      `json:"started_at"`
	FinishedAt       time.Time      `json:"finished_at"`
	TotalRecords     int            `json:"total_records"`
	MalformedRecords int            `json:"malformed_records"`
	SkippedRecords   int            `json:"skipped_records"`
	CountsBySeverity map[string]int `json:"counts_by_severity"`
	Rules            []RuleSummary  `json:"rules"`
	LoadWarnings     []string       `json:"load_warnings,omitempty"`
}

// Clean reports whether the run produced no findings at all.
func (r *Report) Clean() bool {
	return len(r.Rules) == 0 && r.MalformedRecords == 0
}

// Aggregator accumulates findings for one run. Not safe for concurrent
// use; callers serialize through the engine's drain goroutine.
type Aggregator struct {
	runID        string
	input        string
	loadWarnings []string
	startedAt    time.Time
	sampleCap    int
	total        int
	malformed    int
	skipped      int
	bySeverity   map[rules.Severity]int
	byRule       map[string]*RuleSummary
	ruleNames    map[string]string
	finished     *Report
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithSampleCap overrides the per-rule sample bound. A cap of zero keeps
// counts only.
func WithSampleCap(n int) Option {
	return func(a *Aggregator) { a.sampleCap = n }
}

// WithInput records the input name in the finished report.
func WithInput(name string) Option {
	return func(a *Aggregator) { a.input = name }
}

// WithLoadWarnings records ontology load warnings from a tolerant load in
// the finished report.
func WithLoadWarnings(warnings []string) Option {
	return func(a *Aggregator) { a.loadWarnings = warnings }
}

// NewAggregator creates an empty aggregator for one run. Each run gets a
// fresh UUID so reports from repeated runs over the same input stay
// distinguishable.
func NewAggregator(set []rules.Rule, opts ...Option) *Aggregator {
	a := &Aggregator{
		runID:      uuid.NewString(),
		startedAt:  time.Now().UTC(),
		sampleCap:  DefaultSampleCap,
		bySeverity: make(map[rules.Severity]int),
		byRule:     make(map[string]*RuleSummary),
		ruleNames:  make(map[string]string, len(set)),
	}
	for _, rule := range set {
		a.ruleNames[rules.FormatRuleID(rule.ID())] = rule.Name()
	}
	a.ruleNames[rules.RuleMalformed] = "line failed to parse"
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RunID returns the run's identifier.
func (a *Aggregator) RunID() string { return a.runID }

// Record counts one successfully parsed record and its findings.
func (a *Aggregator) Record(issues []rules.Issue) {
	a.total++
	for _, is := range issues {
		a.count(is)
	}

	if sev, ok := rules.MaxSeverity(issues); ok && sev == rules.SeverityError {
		a.skipped++
	}
}

// Malformed records one line that failed structural parsing. Malformed
// lines are always skipped; the parse failure is counted as an error
// finding under the issue's rule label.
func (a *Aggregator) Malformed(is rules.Issue) {
	a.total++
	a.malformed++
	a.skipped++
	a.count(is)
}

func (a *Aggregator) count(is rules.Issue) {
	a.bySeverity[is.Severity]++

	summary, ok := a.byRule[is.Rule]
	if !ok {
		summary = &RuleSummary{Rule: is.Rule, Name: a.ruleNames[is.Rule]}
		a.byRule[is.Rule] = summary
	}
	summary.Count++
	if len(summary.Samples) < a.sampleCap {
		summary.Samples = append(summary.Samples, is)
	}
}

// Finish closes the aggregator and returns the report. Further calls
// return the same report.
func (a *Aggregator) Finish() *Report {
	if a.finished != nil {
		return a.finished
	}

	summaries := make([]RuleSummary, 0, len(a.byRule))
	for _, summary := range a.byRule {
		summaries = append(summaries, *summary)
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Rule < summaries[j].Rule })

	bySeverity := make(map[string]int, len(a.bySeverity))
	for sev, n := range a.bySeverity {
		bySeverity[sev.String()] = n
	}

	a.finished = &Report{
		RunID:            a.runID,
		Input:            a.input,
		StartedAt:        a.startedAt,
		FinishedAt:       time.Now().UTC(),
		TotalRecords:     a.total,
		MalformedRecords: a.malformed,
		SkippedRecords:   a.skipped,
		CountsBySeverity: bySeverity,
		Rules:            summaries,
		LoadWarnings:     a.loadWarnings,
	}
	return a.finished
}
