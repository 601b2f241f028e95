// Package sandre holds the primitives shared by every layer of the SANDRE
// Hydrometrie codec: the wire versions, the wire value formats, and the error
// taxonomy.
//
// # Wire versions
//
// The schema exists in two generations that disagree on element names and on
// a few structural choices. A document names its generation in
// Scenario/VersionScenario:
//
//	"1.1" → [V1_1]
//	"2"   → [V2]
//
// Any other literal is rejected with [UnknownVersionError]. The version is
// read once per document and never changes while that document is decoded or
// encoded.
//
// # Wire values
//
//	dates:    YYYY-MM-DDTHH:MM:SS, no zone, no fraction (UTC by convention)
//	booleans: written "true"/"false"; read "true", "vrai", "1" (any case) as true
//	numbers:  plain decimal text
package sandre

// Version identifies a SANDRE Hydrometrie schema generation.
type Version uint8

const (
	// V1_1 is the legacy generation ("1.1").
	V1_1 Version = iota + 1 //nolint:revive // mirrors the wire literal
	// V2 is the current generation ("2").
	V2
)

// Versions lists the supported generations, oldest first.
var Versions = []Version{V1_1, V2}

// String returns the wire literal written in VersionScenario.
func (v Version) String() string {
	switch v {
	case V1_1:
		return "1.1"
	case V2:
		return "2"
	default:
		return "unknown"
	}
}

// MarshalText writes the wire literal.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Valid reports whether v is one of the supported generations.
func (v Version) Valid() bool {
	return v == V1_1 || v == V2
}

// ParseVersion maps a VersionScenario literal to a Version.
func ParseVersion(s string) (Version, error) {
	switch s {
	case "1.1":
		return V1_1, nil
	case "2":
		return V2, nil
	default:
		return 0, &UnknownVersionError{Version: s}
	}
}
