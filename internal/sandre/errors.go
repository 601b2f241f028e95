package sandre

import (
	"errors"
	"fmt"
)

// Sentinels for errors.Is. Each typed error below unwraps to one of them.
var (
	ErrMalformedElement      = errors.New("malformed wire element")
	ErrInconsistentThreshold = errors.New("inconsistent threshold")
	ErrUnsplittableThreshold = errors.New("unsplittable threshold")
	ErrNamespaceNotSupported = errors.New("xml namespaces are not supported")
	ErrUnknownVersion        = errors.New("unknown scenario version")
	ErrMalformedStory        = errors.New("malformed story")
	ErrMalformedDocument     = errors.New("malformed document")
)

// MalformedElementError reports element text that cannot be cast to the
// type its field declares.
type MalformedElementError struct {
	Tag  string
	Text string
	Type string
	Err  error
}

func (e *MalformedElementError) Error() string {
	msg := fmt.Sprintf("%s: <%s> %q is not a valid %s", ErrMalformedElement, e.Tag, e.Text, e.Type)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedElementError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrMalformedElement}
	}
	return []error{ErrMalformedElement, e.Err}
}

// InconsistentThresholdError reports two wire groups sharing a threshold key
// but disagreeing on a metadata field.
type InconsistentThresholdError struct {
	SiteCode string
	Code     string
	Field    string
}

func (e *InconsistentThresholdError) Error() string {
	return fmt.Sprintf("%s: site %s threshold %s: occurrences disagree on %s",
		ErrInconsistentThreshold, e.SiteCode, e.Code, e.Field)
}

func (e *InconsistentThresholdError) Unwrap() error { return ErrInconsistentThreshold }

// UnsplittableThresholdError reports a threshold that still carries more
// site-level values than the target version allows after splitting.
type UnsplittableThresholdError struct {
	SiteCode   string
	Code       string
	SiteValues int
	Limit      int
}

func (e *UnsplittableThresholdError) Error() string {
	return fmt.Sprintf("%s: site %s threshold %s holds %d site values (limit %d)",
		ErrUnsplittableThreshold, e.SiteCode, e.Code, e.SiteValues, e.Limit)
}

func (e *UnsplittableThresholdError) Unwrap() error { return ErrUnsplittableThreshold }

// NamespaceError reports a namespace declaration or a prefixed name.
type NamespaceError struct {
	Element string
	Prefix  string
	URI     string
}

func (e *NamespaceError) Error() string {
	switch {
	case e.URI != "" && e.Prefix != "":
		return fmt.Sprintf("%s: <%s> declares xmlns:%s=%q", ErrNamespaceNotSupported, e.Element, e.Prefix, e.URI)
	case e.URI != "":
		return fmt.Sprintf("%s: <%s> declares xmlns=%q", ErrNamespaceNotSupported, e.Element, e.URI)
	default:
		return fmt.Sprintf("%s: <%s> uses prefix %q", ErrNamespaceNotSupported, e.Element, e.Prefix)
	}
}

func (e *NamespaceError) Unwrap() error { return ErrNamespaceNotSupported }

// UnknownVersionError reports a VersionScenario literal other than "1.1" or "2".
type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownVersion, e.Version)
}

func (e *UnknownVersionError) Unwrap() error { return ErrUnknownVersion }

// Kind classifies an error for metric labels and log fields.
func Kind(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrMalformedElement):
		return "malformed_element"
	case errors.Is(err, ErrInconsistentThreshold):
		return "inconsistent_threshold"
	case errors.Is(err, ErrUnsplittableThreshold):
		return "unsplittable_threshold"
	case errors.Is(err, ErrNamespaceNotSupported):
		return "namespace"
	case errors.Is(err, ErrUnknownVersion):
		return "unknown_version"
	case errors.Is(err, ErrMalformedStory):
		return "malformed_story"
	case errors.Is(err, ErrMalformedDocument):
		return "malformed_document"
	default:
		var k interface{ Kind() string }
		if errors.As(err, &k) {
			return k.Kind()
		}
		return "other"
	}
}
