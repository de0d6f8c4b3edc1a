package vocabulary

// Issue predicates define attributes for validation issue entities when
// publishing to a knowledge graph.
const (
	// IssueRule is the GO rule identifier (e.g., "gorule-0000020").
	IssueRule = "gafcheck.issue.rule"

	// IssueSeverity is the issue severity. Values: error, warning.
	IssueSeverity = "gafcheck.issue.severity"

	// IssueLine is the 1-based input line number.
	IssueLine = "gafcheck.issue.line"

	// IssueField names the annotation column the issue is tagged to.
	IssueField = "gafcheck.issue.field"

	// IssueMessage is the human-readable finding.
	IssueMessage = "gafcheck.issue.message"

	// IssueRun links an issue to its validation run entity.
	IssueRun = "gafcheck.issue.run"
)

// Run predicates define attributes for a validation run entity.
const (
	// RunInput is the annotation file the run validated.
	RunInput = "gafcheck.run.input"

	// RunTotal is the total number of records seen.
	RunTotal = "gafcheck.run.total"

	// RunSkipped is the number of records withheld from corrected output.
	RunSkipped = "gafcheck.run.skipped"

	// RunFinishedAt is the RFC3339 completion timestamp.
	RunFinishedAt = "gafcheck.run.finished_at"
)
