// Package vocab holds the RDF namespace constants used by the conversion.
package vocab

// Well-known ontology namespaces.
const (
	RDF     = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFS    = "http://www.w3.org/2000/01/rdf-schema#"
	XSD     = "http://www.w3.org/2001/XMLSchema#"
	DCTerms = "http://purl.org/dc/terms/"
	SKOS    = "http://www.w3.org/2004/02/skos/core#"
	Schema  = "http://schema.org/"
	PNV     = "https://w3id.org/pnv#"
	ROAR    = "https://w3id.org/roar#"
	Bio     = "http://purl.org/vocab/bio/0.1/"
	Sem     = "http://semanticweb.cs.vu.nl/2009/11/sem/"
	Prov    = "http://www.w3.org/ns/prov#"
	Void    = "https://www.w3.org/TR/void/"
)

// Commonly used term IRIs.
const (
	RDFType  = RDF + "type"
	RDFValue = RDF + "value"

	RDFSLabel = RDFS + "label"

	XSDDate     = XSD + "date"
	XSDDateTime = XSD + "datetime"

	DCTitle       = DCTerms + "title"
	DCModified    = DCTerms + "modified"
	DCDescription = DCTerms + "description"

	ProvWasDerivedFrom = Prov + "wasDerivedFrom"

	VoidDataset   = Void + "Dataset"
	VoidSubset    = Void + "subset"
	VoidInDataset = Void + "inDataset"
)

// Prefixes maps prefix labels to namespaces for serialization, mirroring
// the bindings of the source datasets.
func Prefixes(base, recordNS, observationNS string) map[string]string {
	return map[string]string{
		"br":          base,
		"bri":         recordNS,
		"observation": observationNS,
		"rdf":         RDF,
		"rdfs":        RDFS,
		"xsd":         XSD,
		"dcterms":     DCTerms,
		"skos":        SKOS,
		"schema":      Schema,
		"pnv":         PNV,
		"roar":        ROAR,
		"bio":         Bio,
		"sem":         Sem,
		"prov":        Prov,
		"void":        Void,
	}
}
