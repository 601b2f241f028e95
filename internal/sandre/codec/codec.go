// Package codec reads and writes complete SANDRE Hydrometrie bulletins.
//
// Decode selects the wire generation from Scenario/VersionScenario, walks the
// document with the version's tag dictionary and returns the domain
// document. Encode writes a domain document in the requested generation.
// Both calls are synchronous, keep their state local, and fail as a whole:
// no partial document is ever returned.
//
// Element order on write:
//
//	hydrometrie
//	  Scenario
//	  RefHyd
//	    Intervenants
//	    SitesHydro        (1.1 nests threshold groups in each site)
//	    SeuilsHydro       (2 only)
//	    ModelesPrevision
//	  Donnees
//	    Evenements
//	    Series
//	    Simulations / Simuls
//
// Empty sections are omitted.
package codec

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/beevik/etree"
	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
	"github.com/couchcryptid/sandre-etl/internal/sandre/threshold"
)

// DefaultIndent is the number of spaces per level in encoded documents.
const DefaultIndent = 2

// Codec converts between wire bulletins and domain documents. It holds only
// configuration and is safe for concurrent use.
type Codec struct {
	clock  clockwork.Clock
	logger *slog.Logger
	indent int
}

// Option configures a Codec.
type Option func(*Codec)

// WithClock sets the time source used when a 1.1 archived event has no
// update date to close it with.
func WithClock(c clockwork.Clock) Option {
	return func(cd *Codec) {
		if c != nil {
			cd.clock = c
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(cd *Codec) {
		if l != nil {
			cd.logger = l
		}
	}
}

// WithIndent sets the indentation of encoded documents. Zero writes a
// compact document.
func WithIndent(n int) Option {
	return func(cd *Codec) {
		if n >= 0 {
			cd.indent = n
		}
	}
}

// New returns a Codec using the real clock and the default logger.
func New(opts ...Option) *Codec {
	c := &Codec{
		clock:  clockwork.NewRealClock(),
		logger: slog.Default(),
		indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Decode parses a bulletin.
func (c *Codec) Decode(data []byte) (*domain.Document, error) {
	xml := etree.NewDocument()
	if err := xml.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", sandre.ErrMalformedDocument, err)
	}
	root := xml.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", sandre.ErrMalformedDocument)
	}
	if err := checkNamespaces(root); err != nil {
		return nil, err
	}
	if want := tags.For(sandre.V2).Tag(tags.Root); root.Tag != want {
		return nil, fmt.Errorf("%w: root is <%s>, expected <%s>", sandre.ErrMalformedDocument, root.Tag, want)
	}

	v, err := sandre.ParseVersion(versionOf(root))
	if err != nil {
		return nil, err
	}
	r := &reader{
		dict:       tags.For(v),
		now:        func() time.Time { return c.clock.Now().UTC().Truncate(time.Second) },
		thresholds: threshold.NewSet(),
	}
	doc, err := r.document(root)
	if err != nil {
		return nil, fmt.Errorf("decode %s bulletin: %w", v, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("decode %s bulletin: %w", v, err)
	}

	c.logger.Debug("bulletin decoded",
		"version", v.String(),
		"emitter", doc.Scenario.Emitter.IntervenantCode,
		"sites", len(doc.Sites),
		"thresholds", len(doc.Thresholds),
		"simulations", len(doc.Simulations),
	)
	return doc, nil
}

// Encode writes doc in generation v. The scenario version of doc is ignored.
func (c *Codec) Encode(doc *domain.Document, v sandre.Version) ([]byte, error) {
	if !v.Valid() {
		return nil, &sandre.UnknownVersionError{Version: v.String()}
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("encode %s bulletin: %w", v, err)
	}

	w := &writer{dict: tags.For(v)}
	root, err := w.document(doc)
	if err != nil {
		return nil, fmt.Errorf("encode %s bulletin: %w", v, err)
	}

	xml := etree.NewDocument()
	xml.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	xml.SetRoot(root)
	if c.indent > 0 {
		xml.Indent(c.indent)
	}
	out, err := xml.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("encode %s bulletin: %w", v, err)
	}

	c.logger.Debug("bulletin encoded",
		"version", v.String(),
		"emitter", doc.Scenario.Emitter.IntervenantCode,
		"bytes", len(out),
	)
	return out, nil
}

// Convert decodes data and encodes the result in generation v. The decoded
// document is returned alongside the output.
func (c *Codec) Convert(data []byte, v sandre.Version) ([]byte, *domain.Document, error) {
	doc, err := c.Decode(data)
	if err != nil {
		return nil, nil, err
	}
	out, err := c.Encode(doc, v)
	if err != nil {
		return nil, nil, err
	}
	return out, doc, nil
}

func versionOf(root *etree.Element) string {
	d := tags.For(sandre.V2)
	return extract.Text(extract.Child(root, d.Tag(tags.Scenario)), d.Tag(tags.ScenarioVersion))
}

// reader holds the state of one decode call.
type reader struct {
	dict       *tags.Dictionary
	now        func() time.Time
	thresholds *threshold.Set
}

func (r *reader) tag(k tags.Key) string { return r.dict.Tag(k) }

func (r *reader) document(root *etree.Element) (*domain.Document, error) {
	doc := &domain.Document{}
	var err error

	if doc.Scenario, err = r.scenario(extract.Child(root, r.tag(tags.Scenario))); err != nil {
		return nil, err
	}

	ref := extract.Child(root, r.tag(tags.RefSection))
	if doc.Intervenants, err = r.intervenants(ref); err != nil {
		return nil, err
	}
	if doc.Sites, err = r.sites(ref); err != nil {
		return nil, err
	}
	if !r.dict.ThresholdsUnderSite() {
		for _, el := range extract.Path(ref, r.tag(tags.ThresholdGroups), r.tag(tags.ThresholdGroup)) {
			if err := r.thresholdGroup(el, ""); err != nil {
				return nil, err
			}
		}
	}
	doc.Thresholds = r.thresholds.Thresholds()
	if doc.Models, err = r.models(ref); err != nil {
		return nil, err
	}

	data := extract.Child(root, r.tag(tags.DataSection))
	if doc.Events, err = r.events(data); err != nil {
		return nil, err
	}
	if doc.Series, err = r.series(data); err != nil {
		return nil, err
	}
	if doc.Simulations, err = r.simulations(data); err != nil {
		return nil, err
	}
	return doc, nil
}

// writer holds the dictionary of one encode call.
type writer struct {
	dict *tags.Dictionary
}

func (w *writer) tag(k tags.Key) string { return w.dict.Tag(k) }

func (w *writer) document(doc *domain.Document) (*etree.Element, error) {
	scenario := w.scenario(doc.Scenario)

	sites, err := w.sites(doc)
	if err != nil {
		return nil, err
	}
	ref := story.Story{w.intervenants(doc.Intervenants), sites}
	if !w.dict.ThresholdsUnderSite() {
		groups, err := w.thresholdGroups(doc.Thresholds, true)
		if err != nil {
			return nil, err
		}
		ref = append(ref, story.Container(w.tag(tags.ThresholdGroups), groups...))
	}
	ref = append(ref, w.models(doc.Models))

	simulations, err := w.simulations(doc.Simulations)
	if err != nil {
		return nil, err
	}
	data := story.Story{w.events(doc.Events), w.series(doc.Series), simulations}

	return story.Assemble(w.tag(tags.Root), story.Story{
		scenario,
		story.Container(w.tag(tags.RefSection), ref...),
		story.Container(w.tag(tags.DataSection), data...),
	})
}
