// Package ontology provides the in-memory ontology graph used to validate
// annotations: an immutable directed graph of classes and properties with
// is_a adjacency, deprecation/replacement resolution, and namespace and
// subset indices.
//
// Source documents follow the OBO graph JSON layout: a list of nodes, each
// with an optional metadata block, and a list of subject/predicate/object
// edges. Deprecation is signaled two ways in the wild - a boolean meta flag
// or an owl#deprecated property value - and both normalize to the same
// Deprecated attribute at decode time.
package ontology

import (
	"encoding/json"
	"os"

	"github.com/obokit/gafcheck/errors"
	"github.com/obokit/gafcheck/vocabulary"
)

// Document is the decoded form of an OBO graph JSON file. The top-level
// file holds one or more graphs; only the first is used.
type Document struct {
	Graphs []GraphDocument `json:"graphs"`
}

// GraphDocument is one graph within a Document.
type GraphDocument struct {
	ID    string     `json:"id,omitempty"`
	Nodes []NodeDoc  `json:"nodes"`
	Edges []EdgeDoc  `json:"edges"`
	Meta  *GraphMeta `json:"meta,omitempty"`
}

// GraphMeta carries graph-level metadata such as the ontology version.
type GraphMeta struct {
	Version             string             `json:"version,omitempty"`
	BasicPropertyValues []PropertyValueDoc `json:"basicPropertyValues,omitempty"`
}

// NodeDoc is the wire form of one ontology node.
type NodeDoc struct {
	ID    string    `json:"id"`
	Label string    `json:"lbl,omitempty"`
	Type  string    `json:"type,omitempty"` // CLASS or PROPERTY
	Meta  *NodeMeta `json:"meta,omitempty"`
}

// NodeMeta is the optional metadata block of a node.
type NodeMeta struct {
	Definition          *DefinitionDoc     `json:"definition,omitempty"`
	Synonyms            []SynonymDoc       `json:"synonyms,omitempty"`
	Xrefs               []XrefDoc          `json:"xrefs,omitempty"`
	Subsets             []string           `json:"subsets,omitempty"`
	Deprecated          bool               `json:"deprecated,omitempty"`
	BasicPropertyValues []PropertyValueDoc `json:"basicPropertyValues,omitempty"`
}

// DefinitionDoc is a node definition with supporting references.
type DefinitionDoc struct {
	Val   string   `json:"val"`
	Xrefs []string `json:"xrefs,omitempty"`
}

// SynonymDoc is one synonym with its scope predicate.
type SynonymDoc struct {
	Pred  string   `json:"pred"` // hasExactSynonym, hasBroadSynonym, ...
	Val   string   `json:"val"`
	Xrefs []string `json:"xrefs,omitempty"`
}

// XrefDoc is one cross-reference value.
type XrefDoc struct {
	Val string `json:"val"`
}

// PropertyValueDoc is one predicate/value pair in a metadata block.
type PropertyValueDoc struct {
	Pred string `json:"pred"`
	Val  string `json:"val"`
}

// EdgeDoc is the wire form of one assertional edge.
type EdgeDoc struct {
	Subject   string `json:"sub"`
	Predicate string `json:"pred"`
	Object    string `json:"obj"`
}

// Kind distinguishes class nodes from property nodes.
type Kind int

const (
	// KindClass is a controlled-vocabulary term.
	KindClass Kind = iota
	// KindProperty is a relation or annotation property.
	KindProperty
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	if k == KindProperty {
		return "property"
	}
	return "class"
}

// Synonym is one normalized synonym.
type Synonym struct {
	Text  string
	Scope string
}

// Node is the normalized, immutable form of one ontology node. The dual
// deprecation signal and the replacement and namespace property values are
// folded in here so downstream code never inspects raw property lists.
type Node struct {
	ID         string
	Kind       Kind
	Label      string
	Namespace  string
	Deprecated bool
	ReplacedBy string
	Synonyms   []Synonym
	Xrefs      map[string]struct{}
	Subsets    map[string]struct{}
}

// normalizeNode folds a NodeDoc and its metadata block into a Node.
func normalizeNode(doc NodeDoc) Node {
	node := Node{
		ID:    doc.ID,
		Label: doc.Label,
		Kind:  KindClass,
	}
	if doc.Type == "PROPERTY" {
		node.Kind = KindProperty
	}

	meta := doc.Meta
	if meta == nil {
		return node
	}

	node.Deprecated = meta.Deprecated
	if len(meta.Synonyms) > 0 {
		node.Synonyms = make([]Synonym, 0, len(meta.Synonyms))
		for _, syn := range meta.Synonyms {
			node.Synonyms = append(node.Synonyms, Synonym{Text: syn.Val, Scope: syn.Pred})
		}
	}
	if len(meta.Xrefs) > 0 {
		node.Xrefs = make(map[string]struct{}, len(meta.Xrefs))
		for _, xref := range meta.Xrefs {
			node.Xrefs[xref.Val] = struct{}{}
		}
	}
	if len(meta.Subsets) > 0 {
		node.Subsets = make(map[string]struct{}, len(meta.Subsets))
		for _, subset := range meta.Subsets {
			node.Subsets[subset] = struct{}{}
		}
	}

	for _, pv := range meta.BasicPropertyValues {
		switch pv.Pred {
		case vocabulary.OWLDeprecated:
			if pv.Val == "true" {
				node.Deprecated = true
			}
		case vocabulary.TermReplacedBy:
			if node.ReplacedBy == "" {
				node.ReplacedBy = pv.Val
			}
		case vocabulary.HasOBONamespace:
			if node.Namespace == "" {
				node.Namespace = pv.Val
			}
		}
	}

	return node
}

// ParseDocument decodes an OBO graph JSON document.
func ParseDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapFatal(err, "ontology", "ParseDocument", "decode ontology document")
	}
	if len(doc.Graphs) == 0 {
		return nil, errors.WrapFatal(errors.ErrOntologyLoad,
			"ontology", "ParseDocument", "document contains no graphs")
	}
	return &doc, nil
}

// LoadFile reads and decodes an ontology document, then builds the graph
// from its first contained graph.
func LoadFile(path string, opts ...Option) (*Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapFatal(err, "ontology", "LoadFile", "read ontology document")
	}
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return Build(&doc.Graphs[0], opts...)
}
