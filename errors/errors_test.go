package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifyFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"unknown prefix", ErrUnknownPrefix, ErrorFatal},
		{"duplicate prefix", ErrDuplicatePrefix, ErrorFatal},
		{"ontology load", ErrOntologyLoad, ErrorFatal},
		{"malformed record", ErrMalformedRecord, ErrorRecord},
		{"unknown term", ErrUnknownTerm, ErrorFinding},
		{"unresolvable deprecation", ErrUnresolvableDeprecation, ErrorFinding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyWrapped(t *testing.T) {
	err := fmt.Errorf("loading go-basic.json: %w", ErrOntologyLoad)
	if !IsFatal(err) {
		t.Errorf("wrapped ontology load error should be fatal")
	}

	err = WrapRecord(errors.New("column count 12, want 17"), "gaf", "ParseLine", "split fields")
	if IsFatal(err) {
		t.Errorf("record error should not be fatal")
	}
	if Classify(err) != ErrorRecord {
		t.Errorf("Classify() = %v, want %v", Classify(err), ErrorRecord)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(nil, "c", "m", "a") != nil {
		t.Error("Wrap(nil) should return nil")
	}
	if WrapFatal(nil, "c", "m", "a") != nil {
		t.Error("WrapFatal(nil) should return nil")
	}
	if WrapRecord(nil, "c", "m", "a") != nil {
		t.Error("WrapRecord(nil) should return nil")
	}
}

func TestClassifiedErrorUnwrap(t *testing.T) {
	base := ErrUnknownTerm
	wrapped := WrapFatal(base, "ontology", "Lookup", "resolve term")

	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should match base via errors.Is")
	}

	var ce *ClassifiedError
	if !errors.As(wrapped, &ce) {
		t.Fatal("wrapped error should be a ClassifiedError")
	}
	if ce.Component != "ontology" || ce.Operation != "Lookup" {
		t.Errorf("unexpected component/operation: %s/%s", ce.Component, ce.Operation)
	}
}

func TestErrorClassString(t *testing.T) {
	if ErrorFatal.String() != "fatal" || ErrorRecord.String() != "record" || ErrorFinding.String() != "finding" {
		t.Error("unexpected ErrorClass string values")
	}
	if ErrorClass(99).String() != "unknown" {
		t.Error("out of range class should be unknown")
	}
}
