// Package vocabulary provides the IRI and predicate constants used across
// gafcheck: OBO PURL bases, the OWL/OBO metadata properties consulted during
// ontology loading, and the predicates emitted when publishing validation
// issues to a knowledge graph.
package vocabulary

// Base IRI constants for the OBO Foundry identifier space.
const (
	OBOBase = "http://purl.obolibrary.org/obo/"

	// GOBase is the prefix for Gene Ontology class IRIs.
	GOBase = OBOBase + "GO_"

	// ECOBase is the prefix for Evidence and Conclusion Ontology IRIs.
	ECOBase = OBOBase + "ECO_"

	// ROBase is the prefix for Relation Ontology IRIs.
	ROBase = OBOBase + "RO_"

	// BFOBase is the prefix for Basic Formal Ontology IRIs.
	BFOBase = OBOBase + "BFO_"

	// GORELBase is the prefix for GO-internal relation IRIs.
	GORELBase = OBOBase + "GOREL_"
)

// Metadata property IRIs consulted while normalizing ontology nodes.
const (
	// OWLDeprecated marks a node as deprecated via a basic property value.
	// Ontology documents signal deprecation either through this property or
	// through the boolean meta flag; both normalize to Node.Deprecated.
	OWLDeprecated = "http://www.w3.org/2002/07/owl#deprecated"

	// TermReplacedBy points a deprecated node at its successor (IAO:0100001).
	TermReplacedBy = OBOBase + "IAO_0100001"

	// HasOBONamespace carries the node's GO namespace
	// (biological_process, molecular_function, cellular_component).
	HasOBONamespace = "http://www.geneontology.org/formats/oboInOwl#hasOBONamespace"

	// HasOBOFormatVersion appears in graph-level meta blocks.
	HasOBOFormatVersion = "http://www.geneontology.org/formats/oboInOwl#hasOBOFormatVersion"
)

// Edge predicates with first-class treatment in the graph.
const (
	// PredicateIsA is the subclass predicate used for ancestor and
	// descendant traversal. All other predicates are stored but only
	// consulted by specific rules.
	PredicateIsA = "is_a"

	// PredicatePartOf appears in edges and annotation extensions.
	PredicatePartOf = "part_of"
)

// GO namespace values as they appear in hasOBONamespace property values.
const (
	NamespaceBiologicalProcess = "biological_process"
	NamespaceMolecularFunction = "molecular_function"
	NamespaceCellularComponent = "cellular_component"
)

// Well-known GO terms referenced by individual rules.
const (
	// TermProteinBinding is GO:0005515; NOT-qualified annotations to it are
	// flagged by gorule-0000002.
	TermProteinBinding = GOBase + "0005515"

	// Root terms of the three GO aspects. ND evidence is restricted to
	// these by gorule-0000011.
	TermMolecularFunctionRoot = GOBase + "0003674"
	TermCellularComponentRoot = GOBase + "0005575"
	TermBiologicalProcessRoot = GOBase + "0008150"

	// EvidenceND is ECO:0000307, "no biological data available".
	EvidenceND = ECOBase + "0000307"
)
