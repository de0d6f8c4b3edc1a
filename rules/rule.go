// Package rules implements the ordered validation rule set applied to each
// annotation record. Rules run in registry order against a shared ontology
// graph; a rule may repair the record in place, and later rules see the
// repaired value.
package rules

import (
	"encoding/json"
	"fmt"

	"github.com/obokit/gafcheck/annotation"
	"github.com/obokit/gafcheck/curie"
	"github.com/obokit/gafcheck/ontology"
)

// Severity ranks a finding. Error findings exclude the record from
// corrected output; Warning and Info findings do not.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String implements fmt.Stringer.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return fmt.Sprintf("severity(%d)", int(s))
	}
}

// ParseSeverity parses the textual form used in configuration files.
func ParseSeverity(s string) (Severity, error) {
	switch s {
	case "info":
		return SeverityInfo, nil
	case "warning":
		return SeverityWarning, nil
	case "error":
		return SeverityError, nil
	default:
		return 0, fmt.Errorf("severity %q not recognized, want info, warning or error", s)
	}
}

// MarshalJSON renders the severity as its textual form.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts the textual form.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	parsed, err := ParseSeverity(text)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// FormatRuleID renders a numeric rule id in the canonical zero-padded form,
// e.g. 20 becomes "gorule-0000020".
func FormatRuleID(n int) string {
	return fmt.Sprintf("gorule-%07d", n)
}

// RuleMalformed labels structural parse failures in reports. It is not a
// numbered rule; malformed lines never reach the rule set.
const RuleMalformed = "MalformedRecord"

// Issue is one finding produced by a rule against one record.
type Issue struct {
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Line     int      `json:"line"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

// CouplingPolicy overrides an evidence code's default With/From
// requirement.
type CouplingPolicy int

const (
	// CouplingDefault keeps the code's built-in policy.
	CouplingDefault CouplingPolicy = iota
	// CouplingRequire makes an empty With/From column an error.
	CouplingRequire
	// CouplingForbid makes a populated With/From column an error.
	CouplingForbid
	// CouplingAny disables the check for the code.
	CouplingAny
)

// CouplingRule is one evidence code's entry in the coupling table: the
// With/From requirement direction and the severity of a violation.
// Codes without an entry keep their built-in direction and report
// violations as warnings.
type CouplingRule struct {
	Policy   CouplingPolicy
	Severity Severity
}

// Env is the shared read context for a validation run. One Env serves all
// workers; everything it holds is immutable after construction.
type Env struct {
	Graph    *ontology.Graph
	Context  *curie.ContextMap
	Coupling map[annotation.EvidenceCode]CouplingRule
}

// Rule checks one record. Check may rewrite the record's fields; the
// registry runs rules in a fixed order so later rules observe repairs.
type Rule interface {
	// ID is the numeric rule identifier.
	ID() int
	// Name is a short human-readable rule title.
	Name() string
	// Check validates rec against env and returns zero or more findings.
	Check(rec *annotation.Record, env *Env) []Issue
}

func issue(r Rule, rec *annotation.Record, sev Severity, field, format string, args ...any) Issue {
	return Issue{
		Rule:     FormatRuleID(r.ID()),
		Severity: sev,
		Line:     rec.Line,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	}
}
