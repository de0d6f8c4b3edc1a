package rules

import (
	"github.com/obokit/gafcheck/annotation"
)

// TaxonCount is gorule-0000015: cross-organism interaction evidence
// names both organisms, so IGI annotations carry exactly two taxon ids
// and every other code exactly one. Syntax of the ids is checked at
// parse time; this rule couples the count to the evidence code.
type TaxonCount struct{}

// ID implements Rule.
func (TaxonCount) ID() int { return 15 }

// Name implements Rule.
func (TaxonCount) Name() string { return "taxon count matches evidence" }

// Check implements Rule.
func (t TaxonCount) Check(rec *annotation.Record, env *Env) []Issue {
	interacting := rec.Evidence.InteractingTaxon()
	switch {
	case interacting && len(rec.Taxa) != 2:
		return []Issue{issue(t, rec, SeverityError, annotation.FieldTaxon,
			"evidence %s describes an interaction, want an interacting taxon, got %d taxon id(s)",
			rec.Evidence, len(rec.Taxa))}
	case !interacting && len(rec.Taxa) != 1:
		return []Issue{issue(t, rec, SeverityError, annotation.FieldTaxon,
			"evidence %s annotates a single organism, want one taxon id, got %d",
			rec.Evidence, len(rec.Taxa))}
	default:
		return nil
	}
}
