package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/uvacreate/registers-rdf/internal/entity"
	"github.com/uvacreate/registers-rdf/internal/lookup"
	"github.com/uvacreate/registers-rdf/internal/rdf"
	"github.com/uvacreate/registers-rdf/internal/vocab"
)

func testConverter() *Converter {
	c := NewConverter(entity.Scheme{
		Base:         "https://example.org/registers/",
		DatasetURI:   "https://example.org/registers",
		DatasetTitle: "Registers",
		CodeSetURI:   "https://iisg.amsterdam/resource/hisco/HISCO",
		CodeSetName:  "HISCO",
	}, rdf.FormatTriG, lookup.NewOccupations(nil), lookup.NewNeighbourhoods(nil))
	c.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return c
}

func hasTriple(g *rdf.Graph, s rdf.Term, p rdf.IRI, o rdf.Term) bool {
	for _, t := range g.Triples() {
		if t.Subject == s && t.Predicate == p && t.Object == o {
			return true
		}
	}
	return false
}

func TestWindowFor_KnownRanges(t *testing.T) {
	cases := map[string]string{
		"register_1851-1853":           "1851-01-01",
		"overgenomen_delen_1853-1863":  "1853-01-01",
		"bevolkingsregister_1874-1893": "1874-01-01",
	}
	for collection, earliest := range cases {
		w := WindowFor(collection)
		require.NotNil(t, w, collection)
		assert.Equal(t, earliest, w.EarliestBegin, collection)
	}
}

func TestWindowFor_UnknownCollection(t *testing.T) {
	assert.Nil(t, WindowFor("register_1900-1910"))
	assert.Nil(t, WindowFor(""))
}

func TestConvert_EmitsFileMetadata(t *testing.T) {
	doc := `<indexRecords><indexRecord id="R1"/></indexRecords>`

	ds, err := testConverter().Convert(context.Background(),
		strings.NewReader(doc), "register_1851-1853", "book_441.xml")
	require.NoError(t, err)

	graphNode := rdf.IRI("https://example.org/registers/register_1851-1853")
	assert.Equal(t, graphNode, ds.Graph.Name)

	md := ds.Default
	assert.True(t, hasTriple(md, graphNode, vocab.RDFType, rdf.IRI(vocab.VoidDataset)))
	assert.True(t, hasTriple(md, graphNode, vocab.DCTitle, rdf.NewLiteral("register_1851-1853")))
	assert.True(t, hasTriple(md, graphNode, vocab.DCModified, rdf.TypedLiteral("2024-03-01", vocab.XSDDate)))
	assert.True(t, hasTriple(md, graphNode, vocab.ProvWasDerivedFrom, rdf.NewLiteral("book_441.xml")))

	parent := rdf.IRI("https://example.org/registers")
	assert.True(t, hasTriple(md, parent, vocab.VoidSubset, graphNode))
	assert.True(t, hasTriple(md, parent, vocab.DCTitle, rdf.NewLiteral("Registers")))
}

func TestConvert_RecordsLandInNamedGraph(t *testing.T) {
	doc := `<indexRecords>
  <indexRecord id="R1">
    <adres>Kalverstraat 1</adres>
    <naam><voornaam>Jan</voornaam><achternaam>Jansen</achternaam></naam>
  </indexRecord>
</indexRecords>`

	ds, err := testConverter().Convert(context.Background(),
		strings.NewReader(doc), "register_1851-1853", "book_441.xml")
	require.NoError(t, err)

	person := rdf.IRI("https://example.org/registers/PersonObservation/R1")
	assert.True(t, hasTriple(ds.Graph, person, vocab.RDFType, rdf.IRI(vocab.ROAR+"PersonObservation")))
	assert.True(t, hasTriple(ds.Graph, person, vocab.RDFSLabel, rdf.NewLiteral("Jan Jansen")))

	// Residency relations of a known collection carry the validity window.
	found := false
	for _, tr := range ds.Graph.Triples() {
		if tr.Predicate == rdf.IRI(vocab.Sem+"hasEarliestBeginTimeStamp") {
			assert.Equal(t, rdf.Term(rdf.TypedLiteral("1851-01-01", vocab.XSDDateTime)), tr.Object)
			found = true
		}
	}
	assert.True(t, found)
}

func TestConvert_BadRecordAbortsByDefault(t *testing.T) {
	doc := `<indexRecords>
  <indexRecord id="R1"/>
  <indexRecord/>
</indexRecords>`

	_, err := testConverter().Convert(context.Background(),
		strings.NewReader(doc), "register_1851-1853", "book_441.xml")
	assert.Error(t, err)
}

func TestConvert_SkipBadRecordsContinues(t *testing.T) {
	doc := `<indexRecords>
  <indexRecord/>
  <indexRecord id="R2"/>
</indexRecords>`

	c := testConverter()
	c.SkipBadRecords = true

	ds, err := c.Convert(context.Background(),
		strings.NewReader(doc), "register_1851-1853", "book_441.xml")
	require.NoError(t, err)

	person := rdf.IRI("https://example.org/registers/PersonObservation/R2")
	assert.True(t, hasTriple(ds.Graph, person, vocab.RDFType, rdf.IRI(vocab.ROAR+"PersonObservation")))
}

func TestConvert_AbortedFileReleasesDecoder(t *testing.T) {
	// A bad record early in a long file aborts the conversion while the
	// decoder goroutine is still blocked sending past its channel buffer.
	var doc strings.Builder
	doc.WriteString("<indexRecords><indexRecord/>")
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&doc, `<indexRecord id="R%d"/>`, i)
	}
	doc.WriteString("</indexRecords>")

	before := runtime.NumGoroutine()
	_, err := testConverter().Convert(context.Background(),
		strings.NewReader(doc.String()), "register_1851-1853", "book_441.xml")
	require.Error(t, err)

	// Poll from the test goroutine itself: assert.Eventually runs its
	// condition in a spawned goroutine, which inflates NumGoroutine past
	// the baseline and makes the comparison unsatisfiable.
	deadline := time.Now().Add(time.Second)
	for runtime.NumGoroutine() > before {
		if time.Now().After(deadline) {
			t.Fatalf("goroutines never returned to baseline: before=%d, now=%d",
				before, runtime.NumGoroutine())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestConvert_SkipLogsFilePosition(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := zap.L()
	zap.ReplaceGlobals(zap.New(core))
	defer zap.ReplaceGlobals(prev)

	doc := `<indexRecords>
  <indexRecord/>
  <indexRecord id="R2"/>
  <indexRecord/>
</indexRecords>`

	c := testConverter()
	c.SkipBadRecords = true
	_, err := c.Convert(context.Background(),
		strings.NewReader(doc), "register_1851-1853", "book_441.xml")
	require.NoError(t, err)

	entries := logs.FilterMessage("skipping malformed record").All()
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].ContextMap()["index"])
	assert.Equal(t, int64(3), entries[1].ContextMap()["index"])
}

func TestConvert_MalformedSourceFails(t *testing.T) {
	doc := `<indexRecords><indexRecord id="R1">`

	_, err := testConverter().Convert(context.Background(),
		strings.NewReader(doc), "register_1851-1853", "book_441.xml")
	assert.Error(t, err)
}

func TestDiscover_MirrorsCollectionTree(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	require.NoError(t, os.MkdirAll(filepath.Join(src, "register_1851-1853"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "register_1851-1853", "book_441.xml"), []byte("<indexRecords/>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "register_1851-1853", "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "stray.xml"), []byte("<indexRecords/>"), 0o644))

	files, err := Discover(src, dest, rdf.FormatTriG)
	require.NoError(t, err)
	require.Len(t, files, 1)

	f := files[0]
	assert.Equal(t, filepath.Join(src, "register_1851-1853", "book_441.xml"), f.Path)
	assert.Equal(t, "register_1851-1853", f.Collection)
	assert.Equal(t, filepath.Join(dest, "register_1851-1853", "book_441.trig"), f.Dest)
}

func TestDiscover_FormatSetsExtension(t *testing.T) {
	src := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "c"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "c", "a.xml"), []byte("<indexRecords/>"), 0o644))

	files, err := Discover(src, t.TempDir(), rdf.FormatNQuads)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.True(t, strings.HasSuffix(files[0].Dest, "a.nq"))
}

func TestConvertFile_WritesSerializedOutput(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	path := filepath.Join(src, "book_441.xml")
	doc := `<indexRecords>
  <indexRecord id="R1">
    <naam><voornaam>Jan</voornaam><achternaam>Jansen</achternaam></naam>
  </indexRecord>
</indexRecords>`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	f := File{
		Path:       path,
		Collection: "register_1851-1853",
		Dest:       filepath.Join(dest, "register_1851-1853", "book_441.trig"),
	}
	require.NoError(t, testConverter().ConvertFile(context.Background(), f))

	out, err := os.ReadFile(f.Dest)
	require.NoError(t, err)
	s := string(out)
	assert.Contains(t, s, "@prefix roar: <https://w3id.org/roar#> .")
	assert.Contains(t, s, "br:register_1851-1853 {")
	assert.Contains(t, s, `"Jan Jansen"`)
}

func TestRun_FailedFileDoesNotAbortSiblings(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()

	good := filepath.Join(src, "good.xml")
	require.NoError(t, os.WriteFile(good, []byte(`<indexRecords><indexRecord id="R1"/></indexRecords>`), 0o644))

	files := []File{
		{Path: filepath.Join(src, "missing.xml"), Collection: "c", Dest: filepath.Join(dest, "c", "missing.trig")},
		{Path: good, Collection: "c", Dest: filepath.Join(dest, "c", "good.trig")},
	}

	require.NoError(t, testConverter().Run(context.Background(), files, 2))

	_, err := os.Stat(filepath.Join(dest, "c", "good.trig"))
	assert.NoError(t, err)
}
