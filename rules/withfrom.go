package rules

import (
	"github.com/obokit/gafcheck/annotation"
)

// WithFromCoupling is gorule-0000018 generalized to every evidence code:
// codes describing an inference from another entity (IPI among them) need
// a populated With/From column, and codes describing direct assays must
// leave it empty. The environment's coupling table can override the
// per-code defaults.
type WithFromCoupling struct{}

// ID implements Rule.
func (WithFromCoupling) ID() int { return 18 }

// Name implements Rule.
func (WithFromCoupling) Name() string { return "evidence and With/From coupling" }

// Check implements Rule.
func (w WithFromCoupling) Check(rec *annotation.Record, env *Env) []Issue {
	policy := CouplingDefault
	severity := SeverityWarning
	if cfg, ok := env.Coupling[rec.Evidence]; ok {
		policy = cfg.Policy
		severity = cfg.Severity
	}

	require := rec.Evidence.RequiresWithFrom()
	forbid := rec.Evidence.ForbidsWithFrom()
	switch policy {
	case CouplingRequire:
		require, forbid = true, false
	case CouplingForbid:
		require, forbid = false, true
	case CouplingAny:
		require, forbid = false, false
	}

	switch {
	case require && len(rec.WithFrom) == 0:
		return []Issue{issue(w, rec, severity, annotation.FieldWithFrom,
			"evidence %s requires a With/From value", rec.Evidence)}
	case forbid && len(rec.WithFrom) > 0:
		return []Issue{issue(w, rec, severity, annotation.FieldWithFrom,
			"evidence %s does not allow a With/From value", rec.Evidence)}
	default:
		return nil
	}
}
