// Package annotation provides the typed record model for GAF 2.x
// annotation rows: strict per-field parsing, multi-value splitting, and
// rendering back to the tabular wire form.
package annotation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/obokit/gafcheck/vocabulary"
)

// Aspect is the single-letter classification of an annotation record,
// expected to agree with the GO namespace of its term.
type Aspect byte

const (
	// AspectProcess is P, biological_process.
	AspectProcess Aspect = 'P'
	// AspectFunction is F, molecular_function.
	AspectFunction Aspect = 'F'
	// AspectComponent is C, cellular_component.
	AspectComponent Aspect = 'C'
)

// ParseAspect parses the aspect column.
func ParseAspect(s string) (Aspect, error) {
	switch s {
	case "P":
		return AspectProcess, nil
	case "F":
		return AspectFunction, nil
	case "C":
		return AspectComponent, nil
	}
	return 0, fmt.Errorf("aspect must be P, F, or C, got %q", s)
}

// String returns the single-letter form.
func (a Aspect) String() string { return string(rune(a)) }

// Namespace returns the GO namespace this aspect corresponds to.
func (a Aspect) Namespace() string {
	switch a {
	case AspectProcess:
		return vocabulary.NamespaceBiologicalProcess
	case AspectFunction:
		return vocabulary.NamespaceMolecularFunction
	case AspectComponent:
		return vocabulary.NamespaceCellularComponent
	}
	return ""
}

// AspectForNamespace returns the aspect letter for a GO namespace.
func AspectForNamespace(namespace string) (Aspect, bool) {
	switch namespace {
	case vocabulary.NamespaceBiologicalProcess:
		return AspectProcess, true
	case vocabulary.NamespaceMolecularFunction:
		return AspectFunction, true
	case vocabulary.NamespaceCellularComponent:
		return AspectComponent, true
	}
	return 0, false
}

// QualifierNot is the negation qualifier.
const QualifierNot = "NOT"

// LegalQualifiers is the fixed qualifier vocabulary for GAF 2.1.
var LegalQualifiers = map[string]struct{}{
	QualifierNot:       {},
	"contributes_to":   {},
	"colocalizes_with": {},
}

// dateLayout is the 8-digit calendar pattern of the date column.
const dateLayout = "20060102"

// ParseDate parses the YYYYMMDD date column.
func ParseDate(s string) (time.Time, error) {
	if len(s) != len(dateLayout) {
		return time.Time{}, fmt.Errorf("date must be 8 digits (YYYYMMDD), got %q", s)
	}
	date, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q: %w", s, err)
	}
	return date, nil
}

// FormatDate renders a date back to the YYYYMMDD column form.
func FormatDate(date time.Time) string { return date.Format(dateLayout) }

// taxonPrefix is the fixed prefix of taxon column values.
const taxonPrefix = "taxon:"

// ParseTaxon parses one `taxon:<integer>` value and returns the numeric id.
func ParseTaxon(s string) (int, error) {
	rest, ok := strings.CutPrefix(s, taxonPrefix)
	if !ok {
		return 0, fmt.Errorf("taxon must take the form taxon:<id>, got %q", s)
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("taxon id must be a positive integer, got %q", rest)
	}
	return id, nil
}

// ParseTaxa parses the taxon column: one taxon id, or two separated by a
// pipe for interacting-taxon annotations.
func ParseTaxa(s string) ([]int, error) {
	parts := strings.Split(s, "|")
	if len(parts) > 2 {
		return nil, fmt.Errorf("taxon column carries at most two values, got %d", len(parts))
	}
	taxa := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := ParseTaxon(part)
		if err != nil {
			return nil, err
		}
		taxa = append(taxa, id)
	}
	return taxa, nil
}

// FormatTaxa renders taxon ids back to the column form.
func FormatTaxa(taxa []int) string {
	parts := make([]string, len(taxa))
	for i, id := range taxa {
		parts[i] = taxonPrefix + strconv.Itoa(id)
	}
	return strings.Join(parts, "|")
}

// splitList splits a pipe-separated multi-value column. An empty column
// yields no values.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, "|")
}
