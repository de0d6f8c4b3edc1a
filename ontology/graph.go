package ontology

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/obokit/gafcheck/errors"
	"github.com/obokit/gafcheck/vocabulary"
)

const (
	// DefaultReplacementDepth bounds replaced_by chain traversal. Chains
	// longer than this (including cycles) fail with
	// ErrUnresolvableDeprecation.
	DefaultReplacementDepth = 10

	// DefaultAncestorCacheSize is the number of ancestor closures kept by
	// the LRU cache backing IsAncestor.
	DefaultAncestorCacheSize = 4096
)

// Edge is one assertional fact retained in the graph.
type Edge struct {
	Subject   string
	Predicate string
	Object    string
}

// LoadWarning records a non-fatal inconsistency found while building in
// tolerant mode.
type LoadWarning struct {
	Edge    Edge
	Message string
}

// String implements fmt.Stringer.
func (w LoadWarning) String() string {
	return fmt.Sprintf("%s: %s -[%s]-> %s", w.Message, w.Edge.Subject, w.Edge.Predicate, w.Edge.Object)
}

// Graph owns the node and edge sets. Built once, immutable after
// construction, and safe for concurrent readers.
type Graph struct {
	nodes map[string]*Node

	// is_a adjacency, child -> parents and parent -> children
	parents  map[string][]string
	children map[string][]string

	// all non-is_a edges, indexed by subject for rule lookups
	edgesBySubject map[string][]Edge
	edgeCount      int

	warnings []LoadWarning

	maxReplacementDepth int
	ancestorCache       *lru.Cache[string, map[string]struct{}]
}

// Option configures graph construction.
type Option func(*buildConfig)

type buildConfig struct {
	tolerant            bool
	maxReplacementDepth int
	ancestorCacheSize   int
}

// WithTolerantEdges drops edges referencing unknown nodes and records a
// load warning instead of failing construction. The default is strict:
// any dangling edge is fatal.
func WithTolerantEdges() Option {
	return func(c *buildConfig) { c.tolerant = true }
}

// WithReplacementDepth overrides the replaced_by chain depth bound.
func WithReplacementDepth(depth int) Option {
	return func(c *buildConfig) {
		if depth > 0 {
			c.maxReplacementDepth = depth
		}
	}
}

// WithAncestorCacheSize overrides the ancestor closure cache size.
func WithAncestorCacheSize(size int) Option {
	return func(c *buildConfig) {
		if size > 0 {
			c.ancestorCacheSize = size
		}
	}
}

// Build constructs a Graph from a decoded graph document. In strict mode
// (the default) an edge whose subject or object is not a declared node
// fails construction with ErrOntologyLoad.
func Build(doc *GraphDocument, opts ...Option) (*Graph, error) {
	cfg := buildConfig{
		maxReplacementDepth: DefaultReplacementDepth,
		ancestorCacheSize:   DefaultAncestorCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := &Graph{
		nodes:               make(map[string]*Node, len(doc.Nodes)),
		parents:             make(map[string][]string),
		children:            make(map[string][]string),
		edgesBySubject:      make(map[string][]Edge),
		maxReplacementDepth: cfg.maxReplacementDepth,
	}

	for _, nodeDoc := range doc.Nodes {
		if nodeDoc.ID == "" {
			continue
		}
		node := normalizeNode(nodeDoc)
		g.nodes[node.ID] = &node
	}

	for _, edgeDoc := range doc.Edges {
		edge := Edge{Subject: edgeDoc.Subject, Predicate: edgeDoc.Predicate, Object: edgeDoc.Object}

		_, subOK := g.nodes[edge.Subject]
		_, objOK := g.nodes[edge.Object]
		if !subOK || !objOK {
			if !cfg.tolerant {
				return nil, errors.WrapFatal(
					fmt.Errorf("edge %s -%s-> %s: %w",
						edge.Subject, edge.Predicate, edge.Object, errors.ErrDanglingEdge),
					"ontology", "Build", "index edges")
			}
			g.warnings = append(g.warnings, LoadWarning{
				Edge:    edge,
				Message: "dangling edge dropped",
			})
			continue
		}

		g.edgeCount++
		if edge.Predicate == vocabulary.PredicateIsA {
			g.parents[edge.Subject] = append(g.parents[edge.Subject], edge.Object)
			g.children[edge.Object] = append(g.children[edge.Object], edge.Subject)
		} else {
			g.edgesBySubject[edge.Subject] = append(g.edgesBySubject[edge.Subject], edge)
		}
	}

	cache, err := lru.New[string, map[string]struct{}](cfg.ancestorCacheSize)
	if err != nil {
		return nil, errors.WrapFatal(err, "ontology", "Build", "create ancestor cache")
	}
	g.ancestorCache = cache

	return g, nil
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of retained edges.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Warnings returns load warnings recorded in tolerant mode.
func (g *Graph) Warnings() []LoadWarning { return g.warnings }

// Has reports whether a node with the given identifier exists.
func (g *Graph) Has(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Lookup returns the node for an identifier or ErrUnknownTerm.
func (g *Graph) Lookup(id string) (*Node, error) {
	node, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("lookup %q: %w", id, errors.ErrUnknownTerm)
	}
	return node, nil
}

// NamespaceOf returns the declared namespace of a node, or the empty
// string when the node is absent or carries none.
func (g *Graph) NamespaceOf(id string) string {
	if node, ok := g.nodes[id]; ok {
		return node.Namespace
	}
	return ""
}

// Parents returns the direct is_a parents of a node.
func (g *Graph) Parents(id string) []string { return g.parents[id] }

// Children returns the direct is_a children of a node.
func (g *Graph) Children(id string) []string { return g.children[id] }

// EdgesFrom returns the non-is_a edges whose subject is the given node.
func (g *Graph) EdgesFrom(id string) []Edge { return g.edgesBySubject[id] }

// InSubset reports whether a node declares membership in a named subset.
func (g *Graph) InSubset(id, subset string) bool {
	node, ok := g.nodes[id]
	if !ok || node.Subsets == nil {
		return false
	}
	_, member := node.Subsets[subset]
	return member
}

// ResolveCurrent follows replaced_by chains from a deprecated node to the
// first non-deprecated node. Resolving an already-current identifier
// returns it unchanged. The walk visits each node at most once and is
// bounded by the configured depth, so malformed replacement cycles fail
// with ErrUnresolvableDeprecation instead of looping.
func (g *Graph) ResolveCurrent(id string) (string, error) {
	node, ok := g.nodes[id]
	if !ok {
		return "", fmt.Errorf("resolve %q: %w", id, errors.ErrUnknownTerm)
	}
	if !node.Deprecated {
		return id, nil
	}

	seen := map[string]struct{}{id: {}}
	current := node
	for step := 0; step < g.maxReplacementDepth; step++ {
		next := current.ReplacedBy
		if next == "" {
			return "", fmt.Errorf("resolve %q: node %q has no replacement: %w",
				id, current.ID, errors.ErrUnresolvableDeprecation)
		}
		if _, looped := seen[next]; looped {
			return "", fmt.Errorf("resolve %q: replacement cycle at %q: %w",
				id, next, errors.ErrUnresolvableDeprecation)
		}
		seen[next] = struct{}{}

		replacement, present := g.nodes[next]
		if !present {
			return "", fmt.Errorf("resolve %q: replacement %q not in graph: %w",
				id, next, errors.ErrUnresolvableDeprecation)
		}
		if !replacement.Deprecated {
			return next, nil
		}
		current = replacement
	}

	return "", fmt.Errorf("resolve %q: replacement chain exceeds depth %d: %w",
		id, g.maxReplacementDepth, errors.ErrUnresolvableDeprecation)
}

// IsAncestor reports whether ancestor is reachable from descendant by
// walking is_a edges upward. The walk keeps a visited set, so malformed
// cyclic input terminates. A node is not its own ancestor.
func (g *Graph) IsAncestor(ancestor, descendant string) bool {
	if ancestor == descendant {
		return false
	}
	closure := g.ancestors(descendant)
	_, ok := closure[ancestor]
	return ok
}

// ancestors returns the full is_a closure of a node, cached per node.
func (g *Graph) ancestors(id string) map[string]struct{} {
	if closure, ok := g.ancestorCache.Get(id); ok {
		return closure
	}

	closure := make(map[string]struct{})
	stack := append([]string(nil), g.parents[id]...)
	for len(stack) > 0 {
		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, visited := closure[current]; visited {
			continue
		}
		closure[current] = struct{}{}
		stack = append(stack, g.parents[current]...)
	}

	g.ancestorCache.Add(id, closure)
	return closure
}
