package pipeline

import (
	"strings"

	"github.com/uvacreate/registers-rdf/internal/entity"
)

// knownWindows maps the date-range tag embedded in a collection name to the
// validity interval applied to every residency relation in its files.
var knownWindows = map[string]entity.Window{
	"1851-1853": {
		EarliestBegin: "1851-01-01",
		LatestBegin:   "1853-12-31",
		EarliestEnd:   "1851-01-01",
		LatestEnd:     "1853-12-31",
	},
	"1853-1863": {
		EarliestBegin: "1853-01-01",
		LatestBegin:   "1863-12-31",
		EarliestEnd:   "1853-01-01",
		LatestEnd:     "1863-12-31",
	},
	"1874-1893": {
		EarliestBegin: "1874-01-01",
		LatestBegin:   "1893-12-31",
		EarliestEnd:   "1874-01-01",
		LatestEnd:     "1893-12-31",
	},
}

// WindowFor returns the validity window for a collection name, matched on
// the date-range substrings of the known registers. A collection matching
// none of them gets a nil window: the conversion proceeds and the residency
// relations simply carry no interval.
func WindowFor(collection string) *entity.Window {
	for tag, w := range knownWindows {
		if strings.Contains(collection, tag) {
			win := w
			return &win
		}
	}
	return nil
}
