package ontology

import (
	"errors"
	"testing"

	gaferrors "github.com/obokit/gafcheck/errors"
	"github.com/obokit/gafcheck/vocabulary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	termA = "http://purl.obolibrary.org/obo/GO_0000001"
	termB = "http://purl.obolibrary.org/obo/GO_0000002"
	termC = "http://purl.obolibrary.org/obo/GO_0000003"
	termD = "http://purl.obolibrary.org/obo/GO_0000004"
)

func classNode(id string, meta *NodeMeta) NodeDoc {
	return NodeDoc{ID: id, Type: "CLASS", Meta: meta}
}

func isA(sub, obj string) EdgeDoc {
	return EdgeDoc{Subject: sub, Predicate: vocabulary.PredicateIsA, Object: obj}
}

// chainDoc builds A -> B -> C under is_a with C in biological_process.
func chainDoc() *GraphDocument {
	return &GraphDocument{
		Nodes: []NodeDoc{
			classNode(termA, nil),
			classNode(termB, nil),
			classNode(termC, &NodeMeta{
				BasicPropertyValues: []PropertyValueDoc{
					{Pred: vocabulary.HasOBONamespace, Val: vocabulary.NamespaceBiologicalProcess},
				},
			}),
		},
		Edges: []EdgeDoc{isA(termA, termB), isA(termB, termC)},
	}
}

func mustBuild(t *testing.T, doc *GraphDocument, opts ...Option) *Graph {
	t.Helper()
	g, err := Build(doc, opts...)
	require.NoError(t, err)
	return g
}

func TestBuildAndLookup(t *testing.T) {
	g := mustBuild(t, chainDoc())

	assert.Equal(t, 3, g.NodeCount())
	assert.Equal(t, 2, g.EdgeCount())

	node, err := g.Lookup(termC)
	require.NoError(t, err)
	assert.Equal(t, vocabulary.NamespaceBiologicalProcess, node.Namespace)
	assert.Equal(t, KindClass, node.Kind)

	_, err = g.Lookup("http://purl.obolibrary.org/obo/GO_9999999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrUnknownTerm))
}

func TestHasAndChildren(t *testing.T) {
	g := mustBuild(t, chainDoc())

	assert.True(t, g.Has(termA))
	assert.False(t, g.Has(termD))

	assert.ElementsMatch(t, []string{termB}, g.Children(termC))
	assert.Empty(t, g.Children(termA))
}

func TestBuildStrictDanglingEdge(t *testing.T) {
	doc := chainDoc()
	doc.Edges = append(doc.Edges, isA(termA, termD))

	_, err := Build(doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrDanglingEdge))
	assert.True(t, gaferrors.IsFatal(err))
}

func TestBuildTolerantDanglingEdge(t *testing.T) {
	doc := chainDoc()
	doc.Edges = append(doc.Edges, isA(termA, termD))

	g := mustBuild(t, doc, WithTolerantEdges())
	require.Len(t, g.Warnings(), 1)
	assert.Equal(t, termD, g.Warnings()[0].Edge.Object)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestDeprecatedMetaFlag(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{classNode(termA, &NodeMeta{Deprecated: true})},
	}
	g := mustBuild(t, doc)

	node, err := g.Lookup(termA)
	require.NoError(t, err)
	assert.True(t, node.Deprecated)
}

func TestDeprecatedPropertyValue(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{
			classNode(termA, &NodeMeta{
				BasicPropertyValues: []PropertyValueDoc{
					{Pred: vocabulary.OWLDeprecated, Val: "true"},
					{Pred: vocabulary.TermReplacedBy, Val: termB},
				},
			}),
			classNode(termB, nil),
		},
	}
	g := mustBuild(t, doc)

	node, err := g.Lookup(termA)
	require.NoError(t, err)
	assert.True(t, node.Deprecated, "owl#deprecated property must normalize to Deprecated")
	assert.Equal(t, termB, node.ReplacedBy)
}

func TestResolveCurrentIdempotent(t *testing.T) {
	g := mustBuild(t, chainDoc())

	resolved, err := g.ResolveCurrent(termA)
	require.NoError(t, err)
	assert.Equal(t, termA, resolved)

	again, err := g.ResolveCurrent(resolved)
	require.NoError(t, err)
	assert.Equal(t, resolved, again)
}

func TestResolveCurrentChain(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{
			classNode(termA, &NodeMeta{
				Deprecated: true,
				BasicPropertyValues: []PropertyValueDoc{
					{Pred: vocabulary.TermReplacedBy, Val: termB},
				},
			}),
			classNode(termB, &NodeMeta{
				Deprecated: true,
				BasicPropertyValues: []PropertyValueDoc{
					{Pred: vocabulary.TermReplacedBy, Val: termC},
				},
			}),
			classNode(termC, nil),
		},
	}
	g := mustBuild(t, doc)

	resolved, err := g.ResolveCurrent(termA)
	require.NoError(t, err)
	assert.Equal(t, termC, resolved)
}

func TestResolveCurrentCycle(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{
			classNode(termA, &NodeMeta{
				Deprecated: true,
				BasicPropertyValues: []PropertyValueDoc{
					{Pred: vocabulary.TermReplacedBy, Val: termB},
				},
			}),
			classNode(termB, &NodeMeta{
				Deprecated: true,
				BasicPropertyValues: []PropertyValueDoc{
					{Pred: vocabulary.TermReplacedBy, Val: termA},
				},
			}),
		},
	}
	g := mustBuild(t, doc)

	_, err := g.ResolveCurrent(termA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrUnresolvableDeprecation))
}

func TestResolveCurrentNoReplacement(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{classNode(termA, &NodeMeta{Deprecated: true})},
	}
	g := mustBuild(t, doc)

	_, err := g.ResolveCurrent(termA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrUnresolvableDeprecation))
}

func TestResolveCurrentMissingReplacement(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{
			classNode(termA, &NodeMeta{
				Deprecated: true,
				BasicPropertyValues: []PropertyValueDoc{
					{Pred: vocabulary.TermReplacedBy, Val: termD},
				},
			}),
		},
	}
	g := mustBuild(t, doc)

	_, err := g.ResolveCurrent(termA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrUnresolvableDeprecation))
}

func TestResolveCurrentDepthBound(t *testing.T) {
	// A chain of deprecated nodes longer than the configured depth bound.
	nodes := []NodeDoc{}
	ids := []string{termA, termB, termC, termD}
	for i, id := range ids {
		meta := &NodeMeta{Deprecated: true}
		if i+1 < len(ids) {
			meta.BasicPropertyValues = []PropertyValueDoc{
				{Pred: vocabulary.TermReplacedBy, Val: ids[i+1]},
			}
		}
		nodes = append(nodes, classNode(id, meta))
	}
	g := mustBuild(t, &GraphDocument{Nodes: nodes}, WithReplacementDepth(2))

	_, err := g.ResolveCurrent(termA)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrUnresolvableDeprecation))
}

func TestIsAncestor(t *testing.T) {
	g := mustBuild(t, chainDoc())

	assert.True(t, g.IsAncestor(termC, termA))
	assert.True(t, g.IsAncestor(termB, termA))
	assert.False(t, g.IsAncestor(termA, termC))
	assert.False(t, g.IsAncestor(termA, termA), "a node is not its own ancestor")

	// Cached second query returns the same answer.
	assert.True(t, g.IsAncestor(termC, termA))
}

func TestIsAncestorCyclicInput(t *testing.T) {
	// Malformed is_a cycle must terminate.
	doc := &GraphDocument{
		Nodes: []NodeDoc{classNode(termA, nil), classNode(termB, nil)},
		Edges: []EdgeDoc{isA(termA, termB), isA(termB, termA)},
	}
	g := mustBuild(t, doc)

	assert.True(t, g.IsAncestor(termB, termA))
	assert.True(t, g.IsAncestor(termA, termB))
	assert.False(t, g.IsAncestor(termA, termA))
}

func TestInSubset(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{
			classNode(termA, &NodeMeta{Subsets: []string{"goslim_generic"}}),
			classNode(termB, nil),
		},
	}
	g := mustBuild(t, doc)

	assert.True(t, g.InSubset(termA, "goslim_generic"))
	assert.False(t, g.InSubset(termA, "goslim_plant"))
	assert.False(t, g.InSubset(termB, "goslim_generic"))
	assert.False(t, g.InSubset(termD, "goslim_generic"))
}

func TestNonIsAEdgesRetained(t *testing.T) {
	doc := &GraphDocument{
		Nodes: []NodeDoc{classNode(termA, nil), classNode(termB, nil)},
		Edges: []EdgeDoc{
			{Subject: termA, Predicate: vocabulary.PredicatePartOf, Object: termB},
		},
	}
	g := mustBuild(t, doc)

	edges := g.EdgesFrom(termA)
	require.Len(t, edges, 1)
	assert.Equal(t, vocabulary.PredicatePartOf, edges[0].Predicate)
	assert.Empty(t, g.Parents(termA), "part_of must not feed is_a adjacency")
}

func TestParseDocument(t *testing.T) {
	data := []byte(`{
		"graphs": [{
			"nodes": [
				{"id": "` + termA + `", "lbl": "test term", "type": "CLASS",
				 "meta": {"deprecated": false, "subsets": ["goslim_generic"],
				          "synonyms": [{"pred": "hasExactSynonym", "val": "alias"}],
				          "xrefs": [{"val": "EC:1.1.1.1"}]}}
			],
			"edges": []
		}]
	}`)

	doc, err := ParseDocument(data)
	require.NoError(t, err)
	require.Len(t, doc.Graphs, 1)

	g := mustBuild(t, &doc.Graphs[0])
	node, err := g.Lookup(termA)
	require.NoError(t, err)
	assert.Equal(t, "test term", node.Label)
	require.Len(t, node.Synonyms, 1)
	assert.Equal(t, "alias", node.Synonyms[0].Text)
	assert.Contains(t, node.Xrefs, "EC:1.1.1.1")
}

func TestParseDocumentEmpty(t *testing.T) {
	_, err := ParseDocument([]byte(`{"graphs": []}`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, gaferrors.ErrOntologyLoad))

	_, err = ParseDocument([]byte(`not json`))
	require.Error(t, err)
	assert.True(t, gaferrors.IsFatal(err))
}
