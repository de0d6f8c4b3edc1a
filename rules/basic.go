package rules

import (
	"github.com/obokit/gafcheck/annotation"
)

// BasicChecks is gorule-0000001: structural requirements that do not need
// the ontology. Qualifiers must come from the closed GAF vocabulary and
// every annotation needs at least one reference.
type BasicChecks struct{}

// ID implements Rule.
func (BasicChecks) ID() int { return 1 }

// Name implements Rule.
func (BasicChecks) Name() string { return "basic annotation checks" }

// Check implements Rule.
func (b BasicChecks) Check(rec *annotation.Record, _ *Env) []Issue {
	var issues []Issue

	for _, q := range rec.Qualifiers {
		if _, ok := annotation.LegalQualifiers[q]; !ok {
			issues = append(issues, issue(b, rec, SeverityError, annotation.FieldQualifier,
				"qualifier %q is not in the GAF 2.1 qualifier vocabulary", q))
		}
	}

	if len(rec.References) == 0 {
		issues = append(issues, issue(b, rec, SeverityError, annotation.FieldReference,
			"annotation has no reference"))
	}

	return issues
}
