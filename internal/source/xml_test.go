package source

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uvacreate/registers-rdf/internal/record"
)

func collect(t *testing.T, doc string) ([]record.Raw, error) {
	t.Helper()

	records, errs := Stream(context.Background(), strings.NewReader(doc))
	var out []record.Raw
	for r := range records {
		out = append(out, r)
	}
	return out, <-errs
}

func TestStream_DecodesRecordFields(t *testing.T) {
	doc := `<?xml version="1.0"?>
<indexRecords>
  <indexRecord id="saaId123">
    <inventarisnummer>441</inventarisnummer>
    <adres>Kalverstraat 1</adres>
    <beroep>Bakker</beroep>
    <geboorteplaats>Amsterdam</geboorteplaats>
    <geboortedatum>1830-05-01</geboortedatum>
    <naam>
      <voornaam>Jan</voornaam>
      <achternaam>Jansen</achternaam>
    </naam>
    <urlScan>http://x/1.jpg</urlScan>
  </indexRecord>
</indexRecords>`

	out, err := collect(t, doc)
	require.NoError(t, err)
	require.Len(t, out, 1)

	r := out[0]
	assert.Equal(t, "saaId123", r.ID)
	assert.Equal(t, "441", r.InventoryNumber)
	assert.Equal(t, "Kalverstraat 1", r.Address)
	assert.Equal(t, "Bakker", r.Occupation)
	assert.Equal(t, "Amsterdam", r.BirthPlace)
	assert.Equal(t, "1830-05-01", r.BirthDate)
	require.NotNil(t, r.Name)
	assert.Equal(t, "Jan", r.Name.GivenName)
	assert.Equal(t, "Jansen", r.Name.BaseSurname)
	assert.Equal(t, []string{"http://x/1.jpg"}, r.ScanURLs)
}

func TestStream_RepeatedScanURLs(t *testing.T) {
	doc := `<indexRecords>
  <indexRecord id="R1">
    <urlScan>http://x/1.jpg</urlScan>
    <urlScan>http://x/2.jpg</urlScan>
  </indexRecord>
</indexRecords>`

	out, err := collect(t, doc)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, []string{"http://x/1.jpg", "http://x/2.jpg"}, out[0].ScanURLs)
}

func TestStream_MissingNameIsNil(t *testing.T) {
	doc := `<indexRecords><indexRecord id="R1"/></indexRecords>`

	out, err := collect(t, doc)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].Name)
}

func TestStream_MultipleRecords(t *testing.T) {
	doc := `<indexRecords>
  <indexRecord id="R1"/>
  <indexRecord id="R2"/>
  <indexRecord id="R3"/>
</indexRecords>`

	out, err := collect(t, doc)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "R2", out[1].ID)
}

func TestStream_MalformedXMLReportsError(t *testing.T) {
	doc := `<indexRecords><indexRecord id="R1"><adres>unclosed</indexRecord>`

	_, err := collect(t, doc)
	assert.Error(t, err)
}

func TestStream_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records, errs := Stream(ctx, strings.NewReader("<indexRecords/>"))
	for range records {
	}
	assert.Error(t, <-errs)
}
