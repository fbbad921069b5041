// Package record normalizes raw index records into an explicit field set.
// All defaulting and fallback policy lives here; downstream builders branch
// on field emptiness, never on sentinel strings.
package record

import "strings"

// Raw mirrors one <indexRecord> element of a source file. Absent tags
// decode to empty strings; a missing <naam> decodes to a nil pointer.
type Raw struct {
	ID                   string   `xml:"id,attr"`
	InventoryNumber      string   `xml:"inventarisnummer"`
	SourceReference      string   `xml:"bron"`
	Address              string   `xml:"adres"`
	Street               string   `xml:"straatnaam"`
	OriginalStreet       string   `xml:"straatnaamInBron"`
	NeighbourhoodCode    string   `xml:"buurtcode"`
	NeighbourhoodNumber  string   `xml:"buurtnummer"`
	StreetWithSubNumber  string   `xml:"straatMetKleinnummer"`
	HouseNumberSuffix    string   `xml:"huisnummertoevoeging"`
	Occupation           string   `xml:"beroep"`
	Remarks              string   `xml:"overigeGegevens"`
	BirthPlace           string   `xml:"geboorteplaats"`
	BirthDate            string   `xml:"geboortedatum"`
	ScanURLs             []string `xml:"urlScan"`
	Name                 *RawName `xml:"naam"`
}

// RawName is the nested name structure of a record.
type RawName struct {
	GivenName     string `xml:"voornaam"`
	SurnamePrefix string `xml:"tussenvoegsel"`
	BaseSurname   string `xml:"achternaam"`
	NameID        string `xml:"uuidNaam"`
}

// UnknownName is the placeholder literal name when all name parts are empty.
const UnknownName = "Unknown"

// Normalized is the explicit field set the entity builders consume.
// Every string field is trimmed; empty means absent.
type Normalized struct {
	ID                  string
	InventoryNumber     string
	Address             string
	Street              string
	OriginalStreet      string
	NeighbourhoodCode   string
	NeighbourhoodNumber string
	StreetWithSubNumber string
	HouseNumberSuffix   string
	Occupation          string
	Remarks             string
	BirthPlace          string
	BirthDate           string
	ScanURLs            []string

	// ResolvedAddress is the result of the address fallback chain; empty
	// when no variant of the address is present in the record.
	ResolvedAddress string

	Name Name
}

// Name carries the normalized name parts plus the derived literal name.
type Name struct {
	GivenName     string
	SurnamePrefix string
	BaseSurname   string
	NameID        string

	// LiteralName is the space-joined non-empty name parts, or
	// UnknownName when all parts are empty.
	LiteralName string

	// Label equals LiteralName when any part was present, else empty.
	Label string
}

// Normalize trims and defaults a raw record.
func Normalize(r Raw) Normalized {
	n := Normalized{
		ID:                  strings.TrimSpace(r.ID),
		InventoryNumber:     strings.TrimSpace(r.InventoryNumber),
		Address:             strings.TrimSpace(r.Address),
		Street:              strings.TrimSpace(r.Street),
		OriginalStreet:      strings.TrimSpace(r.OriginalStreet),
		NeighbourhoodCode:   strings.TrimSpace(r.NeighbourhoodCode),
		NeighbourhoodNumber: strings.TrimSpace(r.NeighbourhoodNumber),
		StreetWithSubNumber: strings.TrimSpace(r.StreetWithSubNumber),
		HouseNumberSuffix:   strings.TrimSpace(r.HouseNumberSuffix),
		Occupation:          strings.TrimSpace(r.Occupation),
		Remarks:             strings.TrimSpace(r.Remarks),
		BirthPlace:          strings.TrimSpace(r.BirthPlace),
		BirthDate:           strings.TrimSpace(r.BirthDate),
	}

	for _, u := range r.ScanURLs {
		if u = strings.TrimSpace(u); u != "" {
			n.ScanURLs = append(n.ScanURLs, u)
		}
	}

	n.ResolvedAddress = resolveAddress(n)
	n.Name = normalizeName(r.Name)

	return n
}

// resolveAddress applies the fallback chain, most reliable representation
// first: street-with-sub-number, address plus house-number suffix, plain
// address, street as written in the source, neighbourhood number.
func resolveAddress(n Normalized) string {
	if n.StreetWithSubNumber != "" {
		return n.StreetWithSubNumber
	}
	if n.Address != "" && n.HouseNumberSuffix != "" {
		return n.Address + " " + n.HouseNumberSuffix
	}
	if n.Address != "" {
		return n.Address
	}
	if n.OriginalStreet != "" {
		return n.OriginalStreet
	}
	return n.NeighbourhoodNumber
}

func normalizeName(r *RawName) Name {
	if r == nil {
		return Name{LiteralName: UnknownName}
	}

	n := Name{
		GivenName:     strings.TrimSpace(r.GivenName),
		SurnamePrefix: strings.TrimSpace(r.SurnamePrefix),
		BaseSurname:   strings.TrimSpace(r.BaseSurname),
		NameID:        strings.TrimSpace(r.NameID),
	}

	var parts []string
	for _, p := range []string{n.GivenName, n.SurnamePrefix, n.BaseSurname} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	if len(parts) == 0 {
		n.LiteralName = UnknownName
		return n
	}

	n.LiteralName = strings.Join(parts, " ")
	n.Label = n.LiteralName
	return n
}
