// Package entity implements the record-to-graph mapping rules. One builder
// per source file turns normalized records into typed entities and emits
// them as triples into the file-scoped graph.
package entity

import (
	"github.com/uvacreate/registers-rdf/internal/rdf"
	"github.com/uvacreate/registers-rdf/internal/vocab"
)

// Scheme holds the identifier namespaces for one collection. It is passed
// in explicitly at builder construction; there is no process-wide state.
type Scheme struct {
	// Base is the project URI root all entity namespaces hang under. It
	// doubles as the project ontology namespace for the mention predicates.
	Base string

	// DatasetURI identifies the dataset-of-datasets record the per-file
	// graphs link into via void:subset.
	DatasetURI string

	// DatasetTitle is the title literal of the dataset-of-datasets record.
	DatasetTitle string

	// CodeSetURI identifies the fixed classification scheme node shared by
	// all occupation category codes.
	CodeSetURI string

	// CodeSetName is the human-readable name of the classification scheme.
	CodeSetName string

	// Index is the collection name, one per source directory. It scopes
	// location, address and occupation namespaces and names the graph.
	Index string
}

// GraphName returns the identifier of the file-scoped named graph.
func (s Scheme) GraphName() rdf.IRI { return rdf.IRI(s.Base + s.Index) }

// RecordIRI returns the document identifier for a source record id.
func (s Scheme) RecordIRI(id string) rdf.IRI { return rdf.IRI(s.Base + "Index/" + id) }

// ObservationIRI returns the person observation identifier for a record id.
func (s Scheme) ObservationIRI(id string) rdf.IRI {
	return rdf.IRI(s.Base + "PersonObservation/" + id)
}

// PersonNameIRI returns the person name identifier for a stable name id.
func (s Scheme) PersonNameIRI(id string) rdf.IRI { return rdf.IRI(s.Base + "PersonName/" + id) }

// LocationIRI returns the location identifier for a derived id.
func (s Scheme) LocationIRI(id string) rdf.IRI {
	return rdf.IRI(s.Base + "Location/" + s.Index + "/" + id)
}

// AddressIRI returns the postal address identifier for a derived id. An
// address shares its derived id with its owning location.
func (s Scheme) AddressIRI(id string) rdf.IRI {
	return rdf.IRI(s.Base + "Address/" + s.Index + "/" + id)
}

// OccupationIRI returns the occupation identifier for a derived id.
func (s Scheme) OccupationIRI(id string) rdf.IRI {
	return rdf.IRI(s.Base + "Occupation/" + s.Index + "/" + id)
}

// RoleTypeIRI returns the role type identifier for a derived id.
func (s Scheme) RoleTypeIRI(id string) rdf.IRI { return rdf.IRI(s.Base + "Role/" + id) }

func (s Scheme) prop(local string) rdf.IRI { return rdf.IRI(s.Base + local) }

// Window is the per-file validity interval attached to residency and
// home-location relations. A nil *Window means the source filename matched
// no known date range and no interval triples are emitted.
type Window struct {
	EarliestBegin string
	LatestBegin   string
	EarliestEnd   string
	LatestEnd     string
}

// emitter is implemented by every entity kind.
type emitter interface {
	emit(g *rdf.Graph, sc Scheme)
}

// Document is the source record entity, one per input record.
type Document struct {
	ID rdf.IRI

	Identifier          string
	InventoryNumber     string
	Address             string
	Street              string
	OriginalStreet      string
	NeighbourhoodCode   string
	NeighbourhoodNumber string
	Description         string
	ScanURLs            []string

	Mentions  []*PersonObservation
	InDataset rdf.IRI
}

func (d *Document) emit(g *rdf.Graph, sc Scheme) {
	g.Add(d.ID, vocab.RDFType, rdf.IRI(vocab.ROAR+"Document"))
	addLiteral(g, d.ID, vocab.Schema+"identifier", d.Identifier)
	addLiteral(g, d.ID, sc.prop("inventoryNumber"), d.InventoryNumber)
	addLiteral(g, d.ID, sc.prop("mentionsAddress"), d.Address)
	addLiteral(g, d.ID, sc.prop("mentionsStreet"), d.Street)
	addLiteral(g, d.ID, sc.prop("mentionsOriginalStreet"), d.OriginalStreet)
	addLiteral(g, d.ID, sc.prop("mentionsNeighbourhoodCode"), d.NeighbourhoodCode)
	addLiteral(g, d.ID, sc.prop("mentionsNeighbourhoodNumber"), d.NeighbourhoodNumber)
	if d.Description != "" {
		g.Add(d.ID, sc.prop("description"), rdf.LangLiteral(d.Description, "nl"))
	}
	for _, u := range d.ScanURLs {
		g.Add(d.ID, vocab.ROAR+"onScan", rdf.IRI(u))
	}
	for _, p := range d.Mentions {
		g.Add(d.ID, sc.prop("mentionsRegistered"), p.ID)
	}
	g.Add(d.ID, vocab.VoidInDataset, d.InDataset)
}

// PersonName is the pnv name entity. Subject is an IRI when the record
// carries a stable name id, otherwise a file-scoped blank node.
type PersonName struct {
	Subject rdf.Term

	GivenName     string
	SurnamePrefix string
	BaseSurname   string
	LiteralName   string
	Label         string
}

func (n *PersonName) emit(g *rdf.Graph, _ Scheme) {
	g.Add(n.Subject, vocab.RDFType, rdf.IRI(vocab.PNV+"PersonName"))
	addLiteral(g, n.Subject, vocab.PNV+"givenName", n.GivenName)
	addLiteral(g, n.Subject, vocab.PNV+"surnamePrefix", n.SurnamePrefix)
	addLiteral(g, n.Subject, vocab.PNV+"baseSurname", n.BaseSurname)
	g.Add(n.Subject, vocab.PNV+"literalName", rdf.NewLiteral(n.LiteralName))
	addLiteral(g, n.Subject, vocab.RDFSLabel, n.Label)
}

// PersonObservation is one register mention of a person. It is not a
// reconciled real-world person.
type PersonObservation struct {
	ID rdf.IRI

	Name       *PersonName
	Birth      *Birth
	Locations  []*StructuredValue
	HomeLoc    *LocationObservation
	Occupation *OccupationObservation

	DocumentedIn rdf.IRI
	InDataset    rdf.IRI
}

func (p *PersonObservation) emit(g *rdf.Graph, _ Scheme) {
	g.Add(p.ID, vocab.RDFType, rdf.IRI(vocab.ROAR+"PersonObservation"))
	g.Add(p.ID, vocab.PNV+"hasName", p.Name.Subject)
	addLiteral(g, p.ID, vocab.RDFSLabel, p.Name.Label)
	g.Add(p.ID, vocab.Bio+"birth", p.Birth.Subject)
	if p.Birth.TimeStamp != "" {
		g.Add(p.ID, vocab.Schema+"birthDate", rdf.TypedLiteral(p.Birth.TimeStamp, vocab.XSDDateTime))
	}
	if p.Birth.Place != nil {
		g.Add(p.ID, vocab.Schema+"birthPlace", p.Birth.Place.ID)
	}
	if p.HomeLoc != nil {
		g.Add(p.ID, vocab.Schema+"homeLocation", p.HomeLoc.ID)
	}
	for _, sv := range p.Locations {
		g.Add(p.ID, vocab.ROAR+"hasLocation", sv.Subject)
	}
	if p.Occupation != nil {
		g.Add(p.ID, vocab.Schema+"hasOccupation", p.Occupation.ID)
	}
	g.Add(p.ID, vocab.ROAR+"documentedIn", p.DocumentedIn)
	g.Add(p.ID, vocab.VoidInDataset, p.InDataset)
}

// Birth is the auxiliary birth event, always constructed, anonymous.
type Birth struct {
	Subject rdf.BlankNode

	Place     *LocationObservation
	TimeStamp string
	Label     string

	Principal *PersonObservation
	Actor     *Role
}

func (b *Birth) emit(g *rdf.Graph, _ Scheme) {
	g.Add(b.Subject, vocab.RDFType, rdf.IRI(vocab.Bio+"Birth"))
	g.Add(b.Subject, vocab.RDFType, rdf.IRI(vocab.Sem+"Event"))
	if b.Place != nil {
		g.Add(b.Subject, vocab.Bio+"place", b.Place.ID)
	}
	if b.TimeStamp != "" {
		g.Add(b.Subject, vocab.Sem+"hasTimeStamp", rdf.TypedLiteral(b.TimeStamp, vocab.XSDDateTime))
	}
	g.Add(b.Subject, vocab.RDFSLabel, rdf.LangLiteral(b.Label, "nl"))
	g.Add(b.Subject, vocab.Bio+"principal", b.Principal.ID)
	g.Add(b.Subject, vocab.Sem+"hasActor", b.Actor.Subject)
}

// LocationObservation is a location mention, keyed by content hash so
// textually identical addresses collapse to one node within a file.
type LocationObservation struct {
	ID rdf.IRI

	Label     string
	Address   *PostalAddress
	Residents []*StructuredValue
	GeoWithin rdf.IRI

	DocumentedIn rdf.IRI
	InDataset    rdf.IRI
}

func (l *LocationObservation) emit(g *rdf.Graph, _ Scheme) {
	g.Add(l.ID, vocab.RDFType, rdf.IRI(vocab.ROAR+"LocationObservation"))
	addLiteral(g, l.ID, vocab.RDFSLabel, l.Label)
	if l.Address != nil {
		g.Add(l.ID, vocab.Schema+"address", l.Address.ID)
	}
	for _, sv := range l.Residents {
		g.Add(l.ID, vocab.ROAR+"hasPerson", sv.Subject)
	}
	if l.GeoWithin != "" {
		g.Add(l.ID, vocab.Schema+"geoWithin", l.GeoWithin)
	}
	g.Add(l.ID, vocab.ROAR+"documentedIn", l.DocumentedIn)
	g.Add(l.ID, vocab.VoidInDataset, l.InDataset)
}

// PostalAddress is the nested address of a home location.
type PostalAddress struct {
	ID rdf.IRI

	StreetAddress string
	Region        string
	PostalCode    string
	Suffix        string
	Label         string
}

func (a *PostalAddress) emit(g *rdf.Graph, _ Scheme) {
	g.Add(a.ID, vocab.RDFType, rdf.IRI(vocab.Schema+"PostalAddress"))
	addLiteral(g, a.ID, vocab.Schema+"streetAddress", a.StreetAddress)
	addLiteral(g, a.ID, vocab.Schema+"addressRegion", a.Region)
	addLiteral(g, a.ID, vocab.Schema+"postalCode", a.PostalCode)
	addLiteral(g, a.ID, vocab.Schema+"disambiguatingDescription", a.Suffix)
	addLiteral(g, a.ID, vocab.RDFSLabel, a.Label)
}

// StructuredValue wraps a person/location relation with a role tag and a
// validity interval.
type StructuredValue struct {
	Subject rdf.BlankNode

	Value  rdf.Term
	Role   string
	Label  string
	Window *Window

	// TimeStamp is set on birthplace relations instead of a window.
	TimeStamp string
}

func (s *StructuredValue) emit(g *rdf.Graph, _ Scheme) {
	g.Add(s.Subject, vocab.RDFValue, s.Value)
	g.Add(s.Subject, vocab.ROAR+"role", rdf.NewLiteral(s.Role))
	if s.Window != nil {
		g.Add(s.Subject, vocab.Sem+"hasEarliestBeginTimeStamp", rdf.TypedLiteral(s.Window.EarliestBegin, vocab.XSDDateTime))
		g.Add(s.Subject, vocab.Sem+"hasLatestBeginTimeStamp", rdf.TypedLiteral(s.Window.LatestBegin, vocab.XSDDateTime))
		g.Add(s.Subject, vocab.Sem+"hasEarliestEndTimeStamp", rdf.TypedLiteral(s.Window.EarliestEnd, vocab.XSDDateTime))
		g.Add(s.Subject, vocab.Sem+"hasLatestEndTimeStamp", rdf.TypedLiteral(s.Window.LatestEnd, vocab.XSDDateTime))
	}
	if s.TimeStamp != "" {
		g.Add(s.Subject, vocab.Sem+"hasTimeStamp", rdf.TypedLiteral(s.TimeStamp, vocab.XSDDateTime))
	}
	addLiteral(g, s.Subject, vocab.RDFSLabel, s.Label)
}

// OccupationObservation is an occupation mention, keyed by content hash of
// the normalized occupation string.
type OccupationObservation struct {
	ID rdf.IRI

	Name       string
	Categories []*CategoryCode

	DocumentedIn rdf.IRI
	InDataset    rdf.IRI
}

func (o *OccupationObservation) emit(g *rdf.Graph, _ Scheme) {
	g.Add(o.ID, vocab.RDFType, rdf.IRI(vocab.ROAR+"OccupationObservation"))
	g.Add(o.ID, vocab.Schema+"name", rdf.LangLiteral(o.Name, "nl"))
	g.Add(o.ID, vocab.RDFSLabel, rdf.LangLiteral(o.Name, "nl"))
	for _, c := range o.Categories {
		g.Add(o.ID, vocab.Schema+"occupationalCategory", c.ID)
	}
	g.Add(o.ID, vocab.ROAR+"documentedIn", o.DocumentedIn)
	g.Add(o.ID, vocab.VoidInDataset, o.InDataset)
}

// CategoryCode is one classification code from the external lookup.
type CategoryCode struct {
	ID rdf.IRI

	CodeValue string
	Name      string
	InCodeSet *CategoryCodeSet
}

func (c *CategoryCode) emit(g *rdf.Graph, _ Scheme) {
	g.Add(c.ID, vocab.RDFType, rdf.IRI(vocab.Schema+"CategoryCode"))
	addLiteral(g, c.ID, vocab.Schema+"codeValue", c.CodeValue)
	addLiteral(g, c.ID, vocab.Schema+"name", c.Name)
	addLiteral(g, c.ID, vocab.RDFSLabel, c.Name)
	g.Add(c.ID, vocab.Schema+"inCodeSet", c.InCodeSet.ID)
}

// CategoryCodeSet is the fixed classification scheme node, shared by every
// category code in a file.
type CategoryCodeSet struct {
	ID   rdf.IRI
	Name string
}

func (c *CategoryCodeSet) emit(g *rdf.Graph, _ Scheme) {
	g.Add(c.ID, vocab.RDFType, rdf.IRI(vocab.Schema+"CategoryCodeSet"))
	addLiteral(g, c.ID, vocab.Schema+"name", c.Name)
	addLiteral(g, c.ID, vocab.RDFSLabel, c.Name)
}

// Role links the birth event to the person with a role type.
type Role struct {
	Subject rdf.BlankNode

	Value    *PersonObservation
	Label    string
	RoleType *RoleType
}

func (r *Role) emit(g *rdf.Graph, _ Scheme) {
	g.Add(r.Subject, vocab.RDFType, rdf.IRI(vocab.Sem+"Role"))
	g.Add(r.Subject, vocab.RDFValue, r.Value.ID)
	addLiteral(g, r.Subject, vocab.RDFSLabel, r.Label)
	g.Add(r.Subject, vocab.Sem+"roleType", r.RoleType.ID)
}

// RoleType is the reusable role type node, one per role name per file.
type RoleType struct {
	ID    rdf.IRI
	Label string
}

func (r *RoleType) emit(g *rdf.Graph, _ Scheme) {
	g.Add(r.ID, vocab.RDFType, rdf.IRI(vocab.Sem+"RoleType"))
	addLiteral(g, r.ID, vocab.RDFSLabel, r.Label)
}

func addLiteral(g *rdf.Graph, s rdf.Term, p rdf.IRI, v string) {
	if v == "" {
		return
	}
	g.Add(s, p, rdf.NewLiteral(v))
}
