package rules

import (
	"github.com/obokit/gafcheck/annotation"
)

// AspectConsistency is gorule-0000028: the aspect column must agree with
// the term's ontology namespace. A mismatch against a known namespace is
// an error; a term whose namespace maps to no aspect is left alone.
type AspectConsistency struct{}

// ID implements Rule.
func (AspectConsistency) ID() int { return 28 }

// Name implements Rule.
func (AspectConsistency) Name() string { return "aspect matches term namespace" }

// Check implements Rule.
func (a AspectConsistency) Check(rec *annotation.Record, env *Env) []Issue {
	// unknown terms were already reported by the obsolete-term rule
	namespace := env.Graph.NamespaceOf(rec.Term)

	want, ok := annotation.AspectForNamespace(namespace)
	if !ok || want == rec.Aspect {
		return nil
	}

	return []Issue{issue(a, rec, SeverityError, annotation.FieldAspect,
		"aspect %s does not match namespace %s of term %s, want %s",
		rec.Aspect, namespace, env.Context.Compress(rec.Term), want)}
}
