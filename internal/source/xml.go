// Package source decodes index records from the XML source files.
package source

import (
	"context"
	"encoding/xml"
	"io"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/htmlindex"

	"github.com/uvacreate/registers-rdf/internal/record"
)

// recordElement is the local name of one record in a source file.
const recordElement = "indexRecord"

// Stream decodes indexRecord elements from r and sends them to a channel.
// Both channels are closed when processing completes. A decode failure
// aborts the stream; there is no per-element recovery once the decoder has
// lost its position.
func Stream(ctx context.Context, r io.Reader) (<-chan record.Raw, <-chan error) {
	outCh := make(chan record.Raw, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(outCh)
		defer close(errCh)

		decoder := xml.NewDecoder(r)
		decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
			enc, err := htmlindex.Get(charset)
			if err != nil {
				return nil, eris.Wrapf(err, "source: unsupported charset %q", charset)
			}
			return enc.NewDecoder().Reader(input), nil
		}

		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "source: context cancelled")
				return
			}

			tok, err := decoder.Token()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "source: read token")
				return
			}

			se, ok := tok.(xml.StartElement)
			if !ok {
				continue
			}

			if se.Name.Local != recordElement {
				continue
			}

			var raw record.Raw
			if err := decoder.DecodeElement(&raw, &se); err != nil {
				errCh <- eris.Wrap(err, "source: decode record")
				return
			}

			select {
			case outCh <- raw:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "source: context cancelled")
				return
			}
		}
	}()

	return outCh, errCh
}
