package annotation

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/obokit/gafcheck/curie"
	"github.com/obokit/gafcheck/errors"
)

// ColumnCount is the fixed column count of the supported GAF 2.1 format.
const ColumnCount = 17

// Column names used to tag parse errors and validation issues.
const (
	FieldDB              = "db"
	FieldObjectID        = "db_object_id"
	FieldObjectSymbol    = "db_object_symbol"
	FieldQualifier       = "qualifier"
	FieldTerm            = "go_id"
	FieldReference       = "reference"
	FieldEvidence        = "evidence_code"
	FieldWithFrom        = "with_from"
	FieldAspect          = "aspect"
	FieldObjectName      = "db_object_name"
	FieldSynonym         = "db_object_synonym"
	FieldObjectType      = "db_object_type"
	FieldTaxon           = "taxon"
	FieldDate            = "date"
	FieldAssignedBy      = "assigned_by"
	FieldExtension       = "annotation_extension"
	FieldGeneProductForm = "gene_product_form_id"
)

// Extension is one relation(filler) expression from the extension column.
// The relation is an ontology URI when its label is known, otherwise the
// raw label; the filler is always a full URI.
type Extension struct {
	Relation string
	Filler   string
}

// ExtensionGroup is a comma-separated conjunction of extensions. Groups
// are alternatives separated by pipes in the column.
type ExtensionGroup []Extension

// Record is one logical row of the annotation format. Parsed fresh from
// one input line; the validation engine may rewrite Term exactly once
// (deprecated-term substitution) before the record is emitted.
type Record struct {
	DB              string
	ObjectID        string
	ObjectSymbol    string
	Qualifiers      []string
	Term            string // full URI
	References      []string
	Evidence        EvidenceCode
	WithFrom        []string
	Aspect          Aspect
	ObjectName      string
	Synonyms        []string
	ObjectType      string
	Taxa            []int // one id, or two for interacting-taxon records
	Date            time.Time
	AssignedBy      string
	Extensions      []ExtensionGroup
	GeneProductForm string // full URI, optional
	Line            int
}

// Negated reports whether the record carries the NOT qualifier.
func (r *Record) Negated() bool {
	for _, q := range r.Qualifiers {
		if q == QualifierNot {
			return true
		}
	}
	return false
}

// ParseError tags a structural per-record failure with its line number and
// the offending column. Malformed lines never abort the stream.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, field %s: %v", e.Line, e.Field, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error { return e.Err }

// Is matches ParseError against ErrMalformedRecord.
func (e *ParseError) Is(target error) bool { return target == errors.ErrMalformedRecord }

func parseErr(line int, field string, err error) *ParseError {
	return &ParseError{Line: line, Field: field, Err: err}
}

// IsComment reports whether a line is a GAF comment (leading `!`).
// Comment lines are passed through unvalidated.
func IsComment(line string) bool { return strings.HasPrefix(line, "!") }

// extensionPattern matches one relation(filler) expression.
var extensionPattern = regexp.MustCompile(`^([^()]+)\(([^()]+)\)$`)

// ParseLine parses one tab-separated GAF 2.1 line into a Record. Term
// references are expanded to full URIs through the context immediately;
// prefixed forms are never retained. The returned error, when non-nil, is
// always a *ParseError.
func ParseLine(line string, lineNumber int, ctx *curie.ContextMap) (*Record, error) {
	columns := strings.Split(line, "\t")
	if len(columns) != ColumnCount {
		return nil, parseErr(lineNumber, "",
			fmt.Errorf("column count %d, want %d", len(columns), ColumnCount))
	}

	record := &Record{
		DB:           columns[0],
		ObjectID:     columns[1],
		ObjectSymbol: columns[2],
		Qualifiers:   splitList(columns[3]),
		References:   splitList(columns[5]),
		WithFrom:     splitList(columns[7]),
		ObjectName:   columns[9],
		Synonyms:     splitList(columns[10]),
		ObjectType:   columns[11],
		AssignedBy:   columns[14],
		Line:         lineNumber,
	}

	required := []struct {
		field string
		value string
	}{
		{FieldDB, record.DB},
		{FieldObjectID, record.ObjectID},
		{FieldObjectSymbol, record.ObjectSymbol},
		{FieldObjectType, record.ObjectType},
		{FieldAssignedBy, record.AssignedBy},
	}
	for _, r := range required {
		if r.value == "" {
			return nil, parseErr(lineNumber, r.field, fmt.Errorf("required field is empty"))
		}
	}

	term, err := ctx.Expand(columns[4])
	if err != nil {
		return nil, parseErr(lineNumber, FieldTerm, err)
	}
	record.Term = term

	evidence, err := ParseEvidenceCode(columns[6])
	if err != nil {
		return nil, parseErr(lineNumber, FieldEvidence, err)
	}
	record.Evidence = evidence

	aspect, err := ParseAspect(columns[8])
	if err != nil {
		return nil, parseErr(lineNumber, FieldAspect, err)
	}
	record.Aspect = aspect

	taxa, err := ParseTaxa(columns[12])
	if err != nil {
		return nil, parseErr(lineNumber, FieldTaxon, err)
	}
	record.Taxa = taxa

	date, err := ParseDate(columns[13])
	if err != nil {
		return nil, parseErr(lineNumber, FieldDate, err)
	}
	record.Date = date

	extensions, err := parseExtensions(columns[15], ctx)
	if err != nil {
		return nil, parseErr(lineNumber, FieldExtension, err)
	}
	record.Extensions = extensions

	if columns[16] != "" {
		form, err := ctx.Expand(columns[16])
		if err != nil {
			return nil, parseErr(lineNumber, FieldGeneProductForm, err)
		}
		record.GeneProductForm = form
	}

	return record, nil
}

// parseExtensions parses the annotation extension column: pipe-separated
// groups of comma-separated relation(filler) expressions.
func parseExtensions(column string, ctx *curie.ContextMap) ([]ExtensionGroup, error) {
	if column == "" {
		return nil, nil
	}

	groups := strings.Split(column, "|")
	parsed := make([]ExtensionGroup, 0, len(groups))
	for _, rawGroup := range groups {
		elements := strings.Split(rawGroup, ",")
		group := make(ExtensionGroup, 0, len(elements))
		for _, element := range elements {
			match := extensionPattern.FindStringSubmatch(element)
			if match == nil {
				return nil, fmt.Errorf("extension %q must take the form relation(filler)", element)
			}

			relation := match[1]
			if uri, ok := curie.LabelURI(relation); ok {
				relation = uri
			}

			filler, err := ctx.Expand(match[2])
			if err != nil {
				return nil, fmt.Errorf("extension filler %q: %w", match[2], err)
			}

			group = append(group, Extension{Relation: relation, Filler: filler})
		}
		parsed = append(parsed, group)
	}
	return parsed, nil
}

// Render writes the record back to its tab-separated wire form, with term
// references compressed to CURIEs and extension relations rendered by
// label where one is known.
func (r *Record) Render(ctx *curie.ContextMap) string {
	columns := make([]string, ColumnCount)
	columns[0] = r.DB
	columns[1] = r.ObjectID
	columns[2] = r.ObjectSymbol
	columns[3] = strings.Join(r.Qualifiers, "|")
	columns[4] = ctx.Compress(r.Term)
	columns[5] = strings.Join(r.References, "|")
	columns[6] = string(r.Evidence)
	columns[7] = strings.Join(r.WithFrom, "|")
	columns[8] = r.Aspect.String()
	columns[9] = r.ObjectName
	columns[10] = strings.Join(r.Synonyms, "|")
	columns[11] = r.ObjectType
	columns[12] = FormatTaxa(r.Taxa)
	columns[13] = FormatDate(r.Date)
	columns[14] = r.AssignedBy
	columns[15] = renderExtensions(r.Extensions, ctx)
	if r.GeneProductForm != "" {
		columns[16] = ctx.Compress(r.GeneProductForm)
	}
	return strings.Join(columns, "\t")
}

func renderExtensions(groups []ExtensionGroup, ctx *curie.ContextMap) string {
	if len(groups) == 0 {
		return ""
	}
	rendered := make([]string, 0, len(groups))
	for _, group := range groups {
		elements := make([]string, 0, len(group))
		for _, ext := range group {
			relation := ext.Relation
			if label, ok := curie.URILabel(relation); ok {
				relation = label
			}
			elements = append(elements, fmt.Sprintf("%s(%s)", relation, ctx.Compress(ext.Filler)))
		}
		rendered = append(rendered, strings.Join(elements, ","))
	}
	return strings.Join(rendered, "|")
}
