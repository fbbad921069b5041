// Package pipeline drives the conversion: it discovers source files, runs
// one file-scoped conversion per worker, and writes one output file per
// input file into a mirrored directory tree.
package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/uvacreate/registers-rdf/internal/entity"
	"github.com/uvacreate/registers-rdf/internal/lookup"
	"github.com/uvacreate/registers-rdf/internal/rdf"
	"github.com/uvacreate/registers-rdf/internal/record"
	"github.com/uvacreate/registers-rdf/internal/source"
	"github.com/uvacreate/registers-rdf/internal/vocab"
)

// progressEvery is the record interval for per-file progress logging.
const progressEvery = 5000

// File is one unit of work: a source file within a collection.
type File struct {
	// Path is the absolute or root-relative path of the source file.
	Path string

	// Collection is the name of the index directory the file belongs to.
	Collection string

	// Dest is the output path the serialized graph is written to.
	Dest string
}

// Discover lists the XML source files under sourceRoot and derives their
// collection names and mirrored destination paths under destRoot.
func Discover(sourceRoot, destRoot string, format rdf.Format) ([]File, error) {
	matches, err := doublestar.Glob(os.DirFS(sourceRoot), "**/*.xml")
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: glob source files")
	}

	files := make([]File, 0, len(matches))
	for _, m := range matches {
		collection := filepath.Base(filepath.Dir(m))
		if collection == "." {
			// Files directly under the root belong to no collection.
			continue
		}
		name := strings.TrimSuffix(filepath.Base(m), ".xml") + "." + format.Ext()
		files = append(files, File{
			Path:       filepath.Join(sourceRoot, m),
			Collection: collection,
			Dest:       filepath.Join(destRoot, collection, name),
		})
	}
	return files, nil
}

// Converter converts source files to RDF datasets. It carries only
// read-only state and is safe to share across workers.
type Converter struct {
	scheme entity.Scheme
	format rdf.Format
	occs   *lookup.Occupations
	hoods  *lookup.Neighbourhoods

	// SkipBadRecords continues a file after a record fails to build,
	// logging the failure, instead of aborting the whole file.
	SkipBadRecords bool

	now func() time.Time
}

// NewConverter returns a converter with the given identifier scheme and
// preloaded lookup tables. scheme.Index is set per file from the
// collection name.
func NewConverter(scheme entity.Scheme, format rdf.Format, occs *lookup.Occupations, hoods *lookup.Neighbourhoods) *Converter {
	return &Converter{
		scheme: scheme,
		format: format,
		occs:   occs,
		hoods:  hoods,
		now:    time.Now,
	}
}

// Run converts all files across a bounded worker pool. A failed file is
// logged and does not abort its siblings.
func (c *Converter) Run(ctx context.Context, files []File, workers int) error {
	if workers < 1 {
		workers = 1
	}

	zap.L().Info("converting files",
		zap.Int("files", len(files)),
		zap.Int("workers", workers),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, f := range files {
		f := f
		g.Go(func() error {
			log := zap.L().With(zap.String("file", f.Path))

			if err := c.ConvertFile(gctx, f); err != nil {
				log.Error("conversion failed", zap.Error(err))
				return nil // don't abort the pool on a single file
			}

			log.Info("conversion complete", zap.String("dest", f.Dest))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "pipeline: run")
	}
	return nil
}

// ConvertFile converts one source file into one serialized dataset.
func (c *Converter) ConvertFile(ctx context.Context, f File) error {
	in, err := os.Open(f.Path)
	if err != nil {
		return eris.Wrap(err, "pipeline: open source file")
	}
	defer in.Close()

	ds, err := c.Convert(ctx, in, f.Collection, filepath.Base(f.Path))
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(f.Dest), 0o755); err != nil {
		return eris.Wrap(err, "pipeline: create destination dir")
	}

	out, err := os.Create(f.Dest)
	if err != nil {
		return eris.Wrap(err, "pipeline: create destination file")
	}

	scheme := c.schemeFor(f.Collection)
	prefixes := vocab.Prefixes(scheme.Base, scheme.Base+"Index/", scheme.Base+"PersonObservation/")
	if err := rdf.Serialize(out, ds, c.format, prefixes); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return eris.Wrap(err, "pipeline: close destination file")
	}
	return nil
}

// Convert streams the records of one source file into a dataset holding
// the file-level metadata and the named graph of converted entities.
func (c *Converter) Convert(ctx context.Context, r io.Reader, collection, filename string) (*rdf.Dataset, error) {
	// The decoder goroutine blocks sending on the record channel; cancel on
	// every return path so an aborted file does not strand it.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	scheme := c.schemeFor(collection)
	window := WindowFor(collection)
	log := zap.L().With(zap.String("collection", collection), zap.String("file", filename))

	if window == nil {
		log.Warn("collection matches no known date range, residency relations carry no validity window")
	}

	ds := rdf.NewDataset(scheme.GraphName())
	c.addMetadata(ds.Default, scheme, filename)

	builder := entity.NewBuilder(scheme, window, c.occs, c.hoods)

	records, errs := source.Stream(ctx, r)
	index := 0 // position in file, counting skipped records too
	for raw := range records {
		index++
		rec := record.Normalize(raw)
		if err := builder.Build(rec); err != nil {
			if c.SkipBadRecords {
				log.Warn("skipping malformed record",
					zap.Int("index", index),
					zap.Error(err),
				)
				continue
			}
			return nil, eris.Wrapf(err, "pipeline: record %d", index)
		}

		if n := builder.Records(); n%progressEvery == 0 {
			log.Info("progress", zap.Int("records", n))
		}
	}
	if err := <-errs; err != nil {
		return nil, eris.Wrap(err, "pipeline: read records")
	}

	builder.Flush(ds.Graph)

	log.Debug("file built",
		zap.Int("records", builder.Records()),
		zap.Int("triples", ds.Graph.Len()),
	)
	return ds, nil
}

func (c *Converter) schemeFor(collection string) entity.Scheme {
	scheme := c.scheme
	scheme.Index = collection
	return scheme
}

// addMetadata emits the file-level dataset description into the default
// graph: the graph node as a void:Dataset with title, modification date,
// description and source-file provenance, linked into the parent dataset.
func (c *Converter) addMetadata(g *rdf.Graph, scheme entity.Scheme, filename string) {
	graphNode := scheme.GraphName()
	today := c.now().Format("2006-01-02")

	g.Add(graphNode, vocab.RDFType, rdf.IRI(vocab.VoidDataset))
	g.Add(graphNode, vocab.DCTitle, rdf.NewLiteral(scheme.Index))
	g.Add(graphNode, vocab.DCModified, rdf.TypedLiteral(today, vocab.XSDDate))
	g.Add(graphNode, vocab.DCDescription, rdf.NewLiteral("RDF conversion of "+scheme.Index))
	g.Add(graphNode, vocab.ProvWasDerivedFrom, rdf.NewLiteral(filename))

	if scheme.DatasetURI == "" {
		return
	}
	parent := rdf.IRI(scheme.DatasetURI)
	g.Add(parent, vocab.RDFType, rdf.IRI(vocab.VoidDataset))
	g.Add(parent, vocab.DCTitle, rdf.NewLiteral(scheme.DatasetTitle))
	g.Add(parent, vocab.DCModified, rdf.TypedLiteral(today, vocab.XSDDate))
	g.Add(parent, vocab.VoidSubset, graphNode)
}
