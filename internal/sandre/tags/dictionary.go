// Package tags maps semantic field keys to the element names used by each
// SANDRE Hydrometrie generation.
//
// Mapping code never spells an element name or tests a version literal; it
// asks the document's Dictionary:
//
//	d := tags.For(sandre.V2)
//	d.Tag(tags.SiteCode)       // "CdSiteHydro"
//	d.ThresholdsUnderSite()    // false: V2 lists thresholds beside the sites
//
// Both dictionaries are built when the package is initialised and never
// change afterwards, so they are safe for concurrent use.
package tags

import (
	"fmt"
	"maps"

	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

// Dictionary resolves keys for one wire generation.
type Dictionary struct {
	version                sandre.Version
	names                  map[Key]string
	thresholdsUnderSite    bool
	maxSiteThresholdValues int
	genericEntityCode      bool
}

var (
	v11 = &Dictionary{
		version:                sandre.V1_1,
		names:                  withNames(common, v11Names),
		thresholdsUnderSite:    true,
		maxSiteThresholdValues: 1,
		genericEntityCode:      true,
	}
	v2 = &Dictionary{
		version:                sandre.V2,
		names:                  withNames(common, v2Names),
		thresholdsUnderSite:    false,
		maxSiteThresholdValues: 0,
		genericEntityCode:      false,
	}
)

// For returns the dictionary of v. It panics on an invalid version.
func For(v sandre.Version) *Dictionary {
	switch v {
	case sandre.V1_1:
		return v11
	case sandre.V2:
		return v2
	default:
		panic(fmt.Sprintf("tags: no dictionary for version %d", v))
	}
}

// Version returns the generation this dictionary describes.
func (d *Dictionary) Version() sandre.Version { return d.version }

// Tag returns the element name of k. Asking for a key the generation does
// not declare is a mapping bug and panics.
func (d *Dictionary) Tag(k Key) string {
	name, ok := d.names[k]
	if !ok {
		panic(fmt.Sprintf("tags: key %q is not declared for version %s", k, d.version))
	}
	return name
}

// Has reports whether the generation declares k.
func (d *Dictionary) Has(k Key) bool {
	_, ok := d.names[k]
	return ok
}

// Keys returns a copy of the declared key set.
func (d *Dictionary) Keys() []Key {
	keys := make([]Key, 0, len(d.names))
	for k := range d.names {
		keys = append(keys, k)
	}
	return keys
}

// ThresholdsUnderSite reports whether threshold groups are written inside
// their site element (V1.1) rather than beside the sites (V2).
func (d *Dictionary) ThresholdsUnderSite() bool { return d.thresholdsUnderSite }

// MaxSiteThresholdValues is the number of site-level values one threshold
// group may carry; 0 means unbounded.
func (d *Dictionary) MaxSiteThresholdValues() int { return d.maxSiteThresholdValues }

// GenericEntityCode reports whether sites, stations and sensors are
// referenced through a single untyped code element.
func (d *Dictionary) GenericEntityCode() bool { return d.genericEntityCode }

func withNames(base, extra map[Key]string) map[Key]string {
	out := make(map[Key]string, len(base)+len(extra))
	maps.Copy(out, base)
	maps.Copy(out, extra)
	return out
}
