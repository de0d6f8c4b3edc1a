package rules

import (
	"github.com/obokit/gafcheck/annotation"
	"github.com/obokit/gafcheck/vocabulary"
)

// rootTerms are the three aspect roots, the only terms an ND annotation
// may use.
var rootTerms = map[string]struct{}{
	vocabulary.TermMolecularFunctionRoot: {},
	vocabulary.TermCellularComponentRoot: {},
	vocabulary.TermBiologicalProcessRoot: {},
}

// NDRootOnly is gorule-0000011: the ND (no data) evidence code states that
// nothing is known, so it may only annotate an aspect root term, and the
// root terms may only be annotated with ND.
type NDRootOnly struct{}

// ID implements Rule.
func (NDRootOnly) ID() int { return 11 }

// Name implements Rule.
func (NDRootOnly) Name() string { return "ND evidence only on root terms" }

// Check implements Rule.
func (n NDRootOnly) Check(rec *annotation.Record, env *Env) []Issue {
	_, isRoot := rootTerms[rec.Term]

	switch {
	case rec.Evidence == annotation.EvidenceND && !isRoot:
		return []Issue{issue(n, rec, SeverityError, annotation.FieldEvidence,
			"ND evidence requires a root term, got %s", env.Context.Compress(rec.Term))}
	case rec.Evidence != annotation.EvidenceND && isRoot:
		return []Issue{issue(n, rec, SeverityError, annotation.FieldTerm,
			"root term %s requires ND evidence, got %s",
			env.Context.Compress(rec.Term), rec.Evidence)}
	default:
		return nil
	}
}
