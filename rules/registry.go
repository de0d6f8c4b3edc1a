package rules

import (
	"github.com/obokit/gafcheck/annotation"
)

// Default returns the standard rule set in execution order. The obsolete
// term repair runs before every rule that consults the ontology, so the
// ontology-dependent rules always see a live term.
func Default() []Rule {
	return []Rule{
		BasicChecks{},
		ObsoleteRepair{},
		AspectConsistency{},
		WithFromCoupling{},
		TaxonCount{},
		NegatedProteinBinding{},
		NDRootOnly{},
	}
}

// Apply runs the rule set against one record in order, collecting every
// finding. Repairs made by earlier rules are visible to later ones.
func Apply(set []Rule, rec *annotation.Record, env *Env) []Issue {
	var issues []Issue
	for _, rule := range set {
		issues = append(issues, rule.Check(rec, env)...)
	}
	return issues
}

// MaxSeverity returns the highest severity among the findings, and false
// when there are none.
func MaxSeverity(issues []Issue) (Severity, bool) {
	if len(issues) == 0 {
		return 0, false
	}
	max := issues[0].Severity
	for _, is := range issues[1:] {
		if is.Severity > max {
			max = is.Severity
		}
	}
	return max, true
}
