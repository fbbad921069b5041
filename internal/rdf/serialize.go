package rdf

import (
	"io"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
)

// Format selects the output serialization.
type Format string

const (
	// FormatTriG produces TriG (.trig) output, the default.
	FormatTriG Format = "trig"

	// FormatNQuads produces N-Quads (.nq) output.
	FormatNQuads Format = "nquads"
)

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatNQuads {
		return "nq"
	}
	return "trig"
}

// Serialize writes the dataset to w in the given format, binding the given
// prefixes for TriG output.
func Serialize(w io.Writer, ds *Dataset, format Format, prefixes map[string]string) error {
	var sb strings.Builder
	switch format {
	case FormatTriG:
		writeTriG(&sb, ds, prefixes)
	case FormatNQuads:
		writeNQuads(&sb, ds)
	default:
		return eris.Errorf("rdf: unsupported format %q", format)
	}
	if _, err := io.WriteString(w, sb.String()); err != nil {
		return eris.Wrap(err, "rdf: write output")
	}
	return nil
}

// compactor shortens IRIs under bound namespaces to prefixed names. The
// bindings are matched longest namespace first so nested namespaces win.
type compactor struct {
	bindings []binding
}

type binding struct {
	label string
	ns    string
}

func newCompactor(prefixes map[string]string) *compactor {
	bs := make([]binding, 0, len(prefixes))
	for label, ns := range prefixes {
		bs = append(bs, binding{label: label, ns: ns})
	}
	sort.Slice(bs, func(i, j int) bool {
		if len(bs[i].ns) != len(bs[j].ns) {
			return len(bs[i].ns) > len(bs[j].ns)
		}
		return bs[i].ns < bs[j].ns
	})
	return &compactor{bindings: bs}
}

// iri renders i as a prefixed name when a bound namespace matches and the
// remainder is a plain local name, otherwise as a full bracketed IRI.
func (c *compactor) iri(i IRI) string {
	s := string(i)
	for _, b := range c.bindings {
		if strings.HasPrefix(s, b.ns) {
			if local := s[len(b.ns):]; isLocalName(local) {
				return b.label + ":" + local
			}
		}
	}
	return i.String()
}

func (c *compactor) term(t Term) string {
	switch v := t.(type) {
	case IRI:
		return c.iri(v)
	case Literal:
		if v.Datatype != "" {
			return `"` + escape(v.Value) + `"^^` + c.iri(v.Datatype)
		}
		return v.String()
	default:
		return t.String()
	}
}

// isLocalName reports whether s is safe as the local part of a prefixed
// name without escaping. Anything else keeps the full IRI form.
func isLocalName(s string) bool {
	if s == "" || strings.HasSuffix(s, ".") {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '_' || r == '-' || r == '.':
		default:
			return false
		}
	}
	return true
}

func writeTriG(sb *strings.Builder, ds *Dataset, prefixes map[string]string) {
	keys := make([]string, 0, len(prefixes))
	for k := range prefixes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString("@prefix " + k + ": <" + prefixes[k] + "> .\n")
	}
	sb.WriteString("\n")

	c := newCompactor(prefixes)

	for _, t := range ds.Default.Triples() {
		writeTriple(sb, t, "", c)
	}
	if ds.Default.Len() > 0 {
		sb.WriteString("\n")
	}

	sb.WriteString(c.iri(ds.Graph.Name) + " {\n")
	for _, t := range ds.Graph.Triples() {
		writeTriple(sb, t, "    ", c)
	}
	sb.WriteString("}\n")
}

func writeTriple(sb *strings.Builder, t Triple, indent string, c *compactor) {
	sb.WriteString(indent)
	sb.WriteString(c.term(t.Subject))
	sb.WriteString(" ")
	sb.WriteString(c.iri(t.Predicate))
	sb.WriteString(" ")
	sb.WriteString(c.term(t.Object))
	sb.WriteString(" .\n")
}

func writeNQuads(sb *strings.Builder, ds *Dataset) {
	for _, t := range ds.Default.Triples() {
		sb.WriteString(t.Subject.String())
		sb.WriteString(" ")
		sb.WriteString(t.Predicate.String())
		sb.WriteString(" ")
		sb.WriteString(t.Object.String())
		sb.WriteString(" .\n")
	}
	for _, t := range ds.Graph.Triples() {
		sb.WriteString(t.Subject.String())
		sb.WriteString(" ")
		sb.WriteString(t.Predicate.String())
		sb.WriteString(" ")
		sb.WriteString(t.Object.String())
		sb.WriteString(" ")
		sb.WriteString(ds.Graph.Name.String())
		sb.WriteString(" .\n")
	}
}
