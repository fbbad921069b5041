package entity

import (
	"fmt"

	"github.com/rotisserie/eris"

	"github.com/uvacreate/registers-rdf/internal/ident"
	"github.com/uvacreate/registers-rdf/internal/lookup"
	"github.com/uvacreate/registers-rdf/internal/rdf"
	"github.com/uvacreate/registers-rdf/internal/record"
)

// Builder constructs the entity subgraph for the records of one source
// file. It is not safe for concurrent use; the pipeline runs one builder
// per file. Entities are registered in construction order and emitted once
// by Flush, so a location or occupation reused across records contributes
// a single node with accumulated relations.
type Builder struct {
	scheme Scheme
	window *Window
	occs   *lookup.Occupations
	hoods  *lookup.Neighbourhoods

	entities    []emitter
	locations   map[rdf.IRI]*LocationObservation
	occupations map[rdf.IRI]*OccupationObservation
	bornRole    *RoleType
	codeSet     *CategoryCodeSet
	catCodes    map[rdf.IRI]*CategoryCode
	blankSeq    int
	records     int
}

// NewBuilder returns a builder for one file of the given collection.
// window may be nil when the filename matched no known date range.
func NewBuilder(scheme Scheme, window *Window, occs *lookup.Occupations, hoods *lookup.Neighbourhoods) *Builder {
	return &Builder{
		scheme:      scheme,
		window:      window,
		occs:        occs,
		hoods:       hoods,
		locations:   make(map[rdf.IRI]*LocationObservation),
		occupations: make(map[rdf.IRI]*OccupationObservation),
		catCodes:    make(map[rdf.IRI]*CategoryCode),
	}
}

// Records returns the number of records built so far.
func (b *Builder) Records() int { return b.records }

// Build maps one normalized record onto the entity graph. The only fatal
// shape error is a record without its native id; everything else defaults.
func (b *Builder) Build(rec record.Normalized) error {
	if rec.ID == "" {
		return eris.New("entity: record has no id")
	}

	inDataset := b.scheme.GraphName()

	doc := &Document{
		ID:                  b.scheme.RecordIRI(rec.ID),
		Identifier:          rec.ID,
		InventoryNumber:     rec.InventoryNumber,
		Address:             rec.Address,
		Street:              rec.Street,
		OriginalStreet:      rec.OriginalStreet,
		NeighbourhoodCode:   rec.NeighbourhoodCode,
		NeighbourhoodNumber: rec.NeighbourhoodNumber,
		Description:         rec.Remarks,
		ScanURLs:            rec.ScanURLs,
		InDataset:           inDataset,
	}
	b.register(doc)

	name := b.buildName(rec)

	var place *LocationObservation
	if rec.BirthPlace != "" {
		place = b.reuseLocation(
			b.scheme.LocationIRI(ident.New(ident.BirthPlace, rec.BirthPlace)),
			rec.BirthPlace, doc.ID, inDataset)
	}

	birth := &Birth{
		Subject:   b.newBlank(),
		Place:     place,
		TimeStamp: rec.BirthDate,
		Label:     "Geboorte van " + name.LiteralName,
	}
	b.register(birth)

	person := &PersonObservation{
		ID:           b.scheme.ObservationIRI(rec.ID),
		Name:         name,
		Birth:        birth,
		DocumentedIn: doc.ID,
		InDataset:    inDataset,
	}
	b.register(person)

	var homeLocation *StructuredValue
	if rec.ResolvedAddress != "" {
		id := ident.New(ident.HomeLocation, rec.ResolvedAddress)

		loc := b.reuseLocation(b.scheme.LocationIRI(id), rec.ResolvedAddress, doc.ID, inDataset)
		if loc.Address == nil {
			loc.Address = &PostalAddress{ID: b.scheme.AddressIRI(id)}
			b.register(loc.Address)
		}
		loc.Address.StreetAddress = rec.ResolvedAddress
		loc.Address.Region = rec.NeighbourhoodCode
		loc.Address.PostalCode = rec.NeighbourhoodNumber
		loc.Address.Suffix = rec.HouseNumberSuffix
		loc.Address.Label = rec.ResolvedAddress

		person.HomeLoc = loc

		resident := &StructuredValue{
			Subject: b.newBlank(),
			Value:   person.ID,
			Role:    "resident",
			Label:   name.Label,
			Window:  b.window,
		}
		b.register(resident)
		loc.Residents = append(loc.Residents, resident)

		homeLocation = &StructuredValue{
			Subject: b.newBlank(),
			Value:   loc.ID,
			Role:    "home location",
			Label:   loc.Label,
			Window:  b.window,
		}
		b.register(homeLocation)

		if rec.NeighbourhoodCode != "" {
			if uri, ok := b.hoods.CanonicalURI(rec.NeighbourhoodCode); ok {
				loc.GeoWithin = rdf.IRI(uri)
			}
		}
	}

	var birthPlace *StructuredValue
	if place != nil {
		birthPlace = &StructuredValue{
			Subject:   b.newBlank(),
			Value:     place.ID,
			Role:      "birthplace",
			Label:     place.Label,
			TimeStamp: birth.TimeStamp,
		}
		b.register(birthPlace)
	}

	// Birthplace first, then home location; the list is omitted entirely
	// when neither exists.
	if birthPlace != nil {
		person.Locations = append(person.Locations, birthPlace)
	}
	if homeLocation != nil {
		person.Locations = append(person.Locations, homeLocation)
	}

	if rec.Occupation != "" {
		person.Occupation = b.buildOccupation(rec.Occupation, doc.ID, inDataset)
	}

	birth.Principal = person
	birth.Actor = &Role{
		Subject:  b.newBlank(),
		Value:    person,
		Label:    name.Label,
		RoleType: b.bornRoleType(),
	}
	b.register(birth.Actor)

	doc.Mentions = append(doc.Mentions, person)

	b.records++
	return nil
}

// Flush emits every registered entity into g, in registration order.
func (b *Builder) Flush(g *rdf.Graph) {
	for _, e := range b.entities {
		e.emit(g, b.scheme)
	}
}

func (b *Builder) buildName(rec record.Normalized) *PersonName {
	var subject rdf.Term
	if rec.Name.NameID != "" {
		subject = b.scheme.PersonNameIRI(rec.Name.NameID)
	} else {
		subject = b.newBlank()
	}

	name := &PersonName{
		Subject:       subject,
		GivenName:     rec.Name.GivenName,
		SurnamePrefix: rec.Name.SurnamePrefix,
		BaseSurname:   rec.Name.BaseSurname,
		LiteralName:   rec.Name.LiteralName,
		Label:         rec.Name.Label,
	}
	b.register(name)
	return name
}

// reuseLocation returns the existing location for id or registers a new
// one. On reuse the single-valued fields take the later record's values.
func (b *Builder) reuseLocation(id rdf.IRI, label string, doc, inDataset rdf.IRI) *LocationObservation {
	if loc, ok := b.locations[id]; ok {
		loc.Label = label
		loc.DocumentedIn = doc
		return loc
	}
	loc := &LocationObservation{
		ID:           id,
		Label:        label,
		DocumentedIn: doc,
		InDataset:    inDataset,
	}
	b.locations[id] = loc
	b.register(loc)
	return loc
}

func (b *Builder) buildOccupation(occupation string, doc, inDataset rdf.IRI) *OccupationObservation {
	normalized := lookup.NormalizeTerm(occupation)
	id := b.scheme.OccupationIRI(ident.New(ident.Occupation, normalized))

	if occ, ok := b.occupations[id]; ok {
		occ.DocumentedIn = doc
		return occ
	}

	occ := &OccupationObservation{
		ID:           id,
		Name:         normalized,
		DocumentedIn: doc,
		InDataset:    inDataset,
	}

	for _, c := range b.occs.Lookup(occupation) {
		code := rdf.IRI(c.CategoryURI)
		cat, ok := b.catCodes[code]
		if !ok {
			cat = &CategoryCode{
				ID:        code,
				CodeValue: c.Code,
				Name:      c.CategoryName,
				InCodeSet: b.codeSetNode(),
			}
			b.catCodes[code] = cat
			b.register(cat)
		}
		occ.Categories = append(occ.Categories, cat)
	}

	b.occupations[id] = occ
	b.register(occ)
	return occ
}

// bornRoleType lazily creates the single "Born" role type node of the file.
func (b *Builder) bornRoleType() *RoleType {
	if b.bornRole == nil {
		b.bornRole = &RoleType{
			ID:    b.scheme.RoleTypeIRI(ident.New(ident.RoleType, "born")),
			Label: "Born",
		}
		b.register(b.bornRole)
	}
	return b.bornRole
}

// codeSetNode lazily creates the shared classification scheme node.
func (b *Builder) codeSetNode() *CategoryCodeSet {
	if b.codeSet == nil {
		b.codeSet = &CategoryCodeSet{
			ID:   rdf.IRI(b.scheme.CodeSetURI),
			Name: b.scheme.CodeSetName,
		}
		b.register(b.codeSet)
	}
	return b.codeSet
}

func (b *Builder) register(e emitter) {
	b.entities = append(b.entities, e)
}

func (b *Builder) newBlank() rdf.BlankNode {
	b.blankSeq++
	return rdf.BlankNode(fmt.Sprintf("b%d", b.blankSeq))
}
