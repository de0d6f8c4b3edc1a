package rules

import (
	"github.com/obokit/gafcheck/annotation"
	"github.com/obokit/gafcheck/vocabulary"
)

// NegatedProteinBinding is gorule-0000002: a NOT annotation to the bare
// "protein binding" term carries no information about what is not bound,
// so it is flagged. NOT against a more specific descendant is fine.
type NegatedProteinBinding struct{}

// ID implements Rule.
func (NegatedProteinBinding) ID() int { return 2 }

// Name implements Rule.
func (NegatedProteinBinding) Name() string { return "no NOT with protein binding" }

// Check implements Rule.
func (n NegatedProteinBinding) Check(rec *annotation.Record, env *Env) []Issue {
	if !rec.Negated() || rec.Term != vocabulary.TermProteinBinding {
		return nil
	}
	return []Issue{issue(n, rec, SeverityWarning, annotation.FieldQualifier,
		"NOT annotation to %s (protein binding) is uninformative, annotate a specific binding term",
		env.Context.Compress(rec.Term))}
}
