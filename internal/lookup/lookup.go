// Package lookup loads the external reference tables: occupation strings to
// HISCO classification entries, and neighbourhood codes to canonical
// location URIs. Both are exact-match only; an absent key degrades to an
// empty result, never an error.
package lookup

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
)

// Classification is one occupation classification entry.
type Classification struct {
	Code         string
	CategoryName string
	CategoryURI  string
}

// sparqlBinding mirrors the SPARQL-result shape of the occupations feed:
// every field is wrapped in a {"value": ...} object.
type sparqlBinding struct {
	HiscoCode         sparqlValue `json:"hiscoCode"`
	HiscoCategoryName sparqlValue `json:"hiscoCategoryName"`
	HiscoCategory     sparqlValue `json:"hiscoCategory"`
}

type sparqlValue struct {
	Value string `json:"value"`
}

// Occupations maps normalized occupation strings to classification entries.
type Occupations struct {
	entries map[string][]Classification
}

// NewOccupations builds a table from an in-memory mapping. Keys are
// normalized on insertion.
func NewOccupations(entries map[string][]Classification) *Occupations {
	normalized := make(map[string][]Classification, len(entries))
	for term, cs := range entries {
		normalized[NormalizeTerm(term)] = cs
	}
	return &Occupations{entries: normalized}
}

// LoadOccupations reads the occupation feed from path. An empty path yields
// an empty table, so conversion runs without a classification feed.
func LoadOccupations(path string) (*Occupations, error) {
	if path == "" {
		return &Occupations{entries: map[string][]Classification{}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "lookup: read occupations table")
	}

	var raw map[string][]sparqlBinding
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, eris.Wrap(err, "lookup: parse occupations table")
	}

	entries := make(map[string][]Classification, len(raw))
	for term, bindings := range raw {
		cs := make([]Classification, 0, len(bindings))
		for _, b := range bindings {
			cs = append(cs, Classification{
				Code:         b.HiscoCode.Value,
				CategoryName: b.HiscoCategoryName.Value,
				CategoryURI:  b.HiscoCategory.Value,
			})
		}
		entries[NormalizeTerm(term)] = cs
	}

	return &Occupations{entries: entries}, nil
}

// NormalizeTerm lower-cases a term and strips square brackets, the only
// normalization applied before matching.
func NormalizeTerm(term string) string {
	term = strings.ReplaceAll(term, "[", "")
	term = strings.ReplaceAll(term, "]", "")
	return strings.ToLower(term)
}

// Lookup returns the classification entries for term after normalization.
// Unknown terms return an empty slice.
func (o *Occupations) Lookup(term string) []Classification {
	return o.entries[NormalizeTerm(term)]
}

// Neighbourhoods maps neighbourhood codes to canonical location URIs.
type Neighbourhoods struct {
	uris map[string]string
}

// NewNeighbourhoods builds a table from an in-memory mapping.
func NewNeighbourhoods(uris map[string]string) *Neighbourhoods {
	return &Neighbourhoods{uris: uris}
}

// LoadNeighbourhoods reads the neighbourhood feed from path. An empty path
// yields an empty table.
func LoadNeighbourhoods(path string) (*Neighbourhoods, error) {
	if path == "" {
		return &Neighbourhoods{uris: map[string]string{}}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "lookup: read neighbourhoods table")
	}

	var uris map[string]string
	if err := json.Unmarshal(data, &uris); err != nil {
		return nil, eris.Wrap(err, "lookup: parse neighbourhoods table")
	}

	return &Neighbourhoods{uris: uris}, nil
}

// CanonicalURI returns the canonical location URI for a neighbourhood code.
func (n *Neighbourhoods) CanonicalURI(code string) (string, bool) {
	uri, ok := n.uris[code]
	return uri, ok
}
