package rules

import (
	stderrors "errors"

	"github.com/obokit/gafcheck/annotation"
	"github.com/obokit/gafcheck/errors"
)

// ObsoleteRepair is gorule-0000020: annotations to a deprecated term are
// rewritten to the term's live replacement when one can be resolved. The
// rewrite happens before any ontology-dependent rule runs, so the rest of
// the set validates the repaired term. Terms the ontology does not know,
// and deprecations with no resolvable replacement, are errors.
type ObsoleteRepair struct{}

// ID implements Rule.
func (ObsoleteRepair) ID() int { return 20 }

// Name implements Rule.
func (ObsoleteRepair) Name() string { return "obsolete term repair" }

// Check implements Rule.
func (o ObsoleteRepair) Check(rec *annotation.Record, env *Env) []Issue {
	node, err := env.Graph.Lookup(rec.Term)
	if err != nil {
		return []Issue{issue(o, rec, SeverityError, annotation.FieldTerm,
			"term %s is not in the ontology", env.Context.Compress(rec.Term))}
	}
	if !node.Deprecated {
		return nil
	}

	replacement, err := env.Graph.ResolveCurrent(rec.Term)
	if err != nil {
		msg := "cannot be resolved"
		if stderrors.Is(err, errors.ErrUnresolvableDeprecation) {
			msg = "has no resolvable replacement"
		}
		return []Issue{issue(o, rec, SeverityError, annotation.FieldTerm,
			"term %s is obsolete and %s", env.Context.Compress(rec.Term), msg)}
	}

	original := rec.Term
	rec.Term = replacement
	return []Issue{issue(o, rec, SeverityWarning, annotation.FieldTerm,
		"term %s is obsolete, replaced by %s",
		env.Context.Compress(original), env.Context.Compress(replacement))}
}
