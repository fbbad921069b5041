package rdf

// Graph is a named, insertion-ordered, deduplicating triple container.
// All entities of one source file are emitted into one Graph.
type Graph struct {
	Name    IRI
	triples []Triple
	seen    map[string]struct{}
}

// NewGraph returns an empty graph with the given name.
func NewGraph(name IRI) *Graph {
	return &Graph{Name: name, seen: make(map[string]struct{})}
}

// Add appends a triple unless an identical one is already present.
// Nil terms are dropped so builders can emit optional fields unconditionally.
func (g *Graph) Add(s Term, p IRI, o Term) {
	if s == nil || o == nil || p == "" {
		return
	}
	t := Triple{Subject: s, Predicate: p, Object: o}
	key := s.String() + " " + string(p) + " " + o.String()
	if _, ok := g.seen[key]; ok {
		return
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, t)
}

// Triples returns the accumulated triples in insertion order.
func (g *Graph) Triples() []Triple { return g.triples }

// Len returns the number of distinct triples.
func (g *Graph) Len() int { return len(g.triples) }

// Dataset is one output unit: default-graph metadata quads plus one named
// graph holding the converted records.
type Dataset struct {
	Default *Graph
	Graph   *Graph
}

// NewDataset returns a dataset whose named graph has the given identifier.
func NewDataset(graphName IRI) *Dataset {
	return &Dataset{
		Default: NewGraph(""),
		Graph:   NewGraph(graphName),
	}
}
