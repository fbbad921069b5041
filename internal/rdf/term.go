// Package rdf provides the minimal RDF model the conversion emits into:
// terms, triples, deduplicating named graphs, and TriG/N-Quads writers.
package rdf

import (
	"strings"
)

// Term is an RDF term: IRI, BlankNode, or Literal.
type Term interface {
	// String renders the term in N-Triples syntax.
	String() string
}

// IRI identifies a resource.
type IRI string

func (i IRI) String() string { return "<" + string(i) + ">" }

// BlankNode is a graph-scoped anonymous node.
type BlankNode string

func (b BlankNode) String() string { return "_:" + string(b) }

// Literal is a string value with an optional language tag or datatype IRI.
type Literal struct {
	Value    string
	Lang     string
	Datatype IRI
}

func (l Literal) String() string {
	s := `"` + escape(l.Value) + `"`
	switch {
	case l.Lang != "":
		return s + "@" + l.Lang
	case l.Datatype != "":
		return s + "^^" + l.Datatype.String()
	default:
		return s
	}
}

// NewLiteral returns a plain literal.
func NewLiteral(v string) Literal { return Literal{Value: v} }

// LangLiteral returns a language-tagged literal.
func LangLiteral(v, lang string) Literal { return Literal{Value: v, Lang: lang} }

// TypedLiteral returns a datatyped literal. The value is carried opaquely;
// no lexical validation happens here.
func TypedLiteral(v string, dt IRI) Literal { return Literal{Value: v, Datatype: dt} }

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	s = strings.ReplaceAll(s, "\r", `\r`)
	s = strings.ReplaceAll(s, "\t", `\t`)
	return s
}

// Triple is one directed labeled edge.
type Triple struct {
	Subject   Term
	Predicate IRI
	Object    Term
}
