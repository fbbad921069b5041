package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_AddressFallbackPrefersStreetWithSubNumber(t *testing.T) {
	n := Normalize(Raw{
		ID:                  "R1",
		StreetWithSubNumber: "Kalverstraat 1a",
		Address:             "Kalverstraat 1",
		OriginalStreet:      "Calverstraet",
		NeighbourhoodNumber: "12",
	})

	assert.Equal(t, "Kalverstraat 1a", n.ResolvedAddress)
}

func TestNormalize_AddressFallbackCombinesSuffix(t *testing.T) {
	n := Normalize(Raw{
		ID:                "R1",
		Address:           "Kalverstraat 1",
		HouseNumberSuffix: "II",
	})

	assert.Equal(t, "Kalverstraat 1 II", n.ResolvedAddress)
}

func TestNormalize_AddressFallbackSuffixAloneIsIgnored(t *testing.T) {
	n := Normalize(Raw{
		ID:                "R1",
		HouseNumberSuffix: "II",
		OriginalStreet:    "Calverstraet",
	})

	assert.Equal(t, "Calverstraet", n.ResolvedAddress)
}

func TestNormalize_AddressFallbackNeighbourhoodNumberLast(t *testing.T) {
	n := Normalize(Raw{ID: "R1", NeighbourhoodNumber: "12"})
	assert.Equal(t, "12", n.ResolvedAddress)
}

func TestNormalize_AddressAbsent(t *testing.T) {
	n := Normalize(Raw{ID: "R1"})
	assert.Empty(t, n.ResolvedAddress)
}

func TestNormalize_NameJoinsNonEmptyParts(t *testing.T) {
	n := Normalize(Raw{
		ID:   "R1",
		Name: &RawName{GivenName: "Jan", BaseSurname: "Jansen"},
	})

	assert.Equal(t, "Jan Jansen", n.Name.LiteralName)
	assert.Equal(t, "Jan Jansen", n.Name.Label)
}

func TestNormalize_NameWithPrefix(t *testing.T) {
	n := Normalize(Raw{
		ID:   "R1",
		Name: &RawName{GivenName: "Jan", SurnamePrefix: "van der", BaseSurname: "Berg"},
	})

	assert.Equal(t, "Jan van der Berg", n.Name.LiteralName)
}

func TestNormalize_EmptyNamePartsYieldUnknownWithoutLabel(t *testing.T) {
	n := Normalize(Raw{ID: "R1", Name: &RawName{}})

	assert.Equal(t, UnknownName, n.Name.LiteralName)
	assert.Empty(t, n.Name.Label)
}

func TestNormalize_MissingNameYieldsUnknown(t *testing.T) {
	n := Normalize(Raw{ID: "R1"})

	assert.Equal(t, UnknownName, n.Name.LiteralName)
	assert.Empty(t, n.Name.Label)
}

func TestNormalize_ScanURLsPreserveOrder(t *testing.T) {
	n := Normalize(Raw{
		ID:       "R1",
		ScanURLs: []string{"http://x/1.jpg", "http://x/2.jpg"},
	})

	assert.Equal(t, []string{"http://x/1.jpg", "http://x/2.jpg"}, n.ScanURLs)
}

func TestNormalize_SingleScanURL(t *testing.T) {
	n := Normalize(Raw{ID: "R1", ScanURLs: []string{"http://x/1.jpg"}})
	assert.Len(t, n.ScanURLs, 1)
}

func TestNormalize_BlankScanURLsDropped(t *testing.T) {
	n := Normalize(Raw{ID: "R1", ScanURLs: []string{" ", "http://x/1.jpg"}})
	assert.Equal(t, []string{"http://x/1.jpg"}, n.ScanURLs)
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	n := Normalize(Raw{
		ID:         " R1 ",
		Occupation: " Bakker ",
		BirthPlace: " Amsterdam ",
	})

	assert.Equal(t, "R1", n.ID)
	assert.Equal(t, "Bakker", n.Occupation)
	assert.Equal(t, "Amsterdam", n.BirthPlace)
}

func TestNormalize_WhitespaceOnlyFieldIsAbsent(t *testing.T) {
	n := Normalize(Raw{ID: "R1", Address: "   "})
	assert.Empty(t, n.Address)
	assert.Empty(t, n.ResolvedAddress)
}
