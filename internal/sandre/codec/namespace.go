package codec

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

// SANDRE publishes its schemas under this prefix; StripNamespace removes
// default namespaces below it.
const sandreNamespacePrefix = "http://xml.sandre.eaufrance.fr/"

const xsiNamespace = "http://www.w3.org/2001/XMLSchema-instance"

// checkNamespaces rejects any namespace declaration or prefixed name. The
// reserved xml prefix (xml:lang, xml:space) is not a namespace and passes.
func checkNamespaces(el *etree.Element) error {
	if el.Space != "" {
		return &sandre.NamespaceError{Element: el.FullTag(), Prefix: el.Space}
	}
	for _, a := range el.Attr {
		switch {
		case a.Space == "" && a.Key == "xmlns":
			return &sandre.NamespaceError{Element: el.Tag, URI: a.Value}
		case a.Space == "xmlns":
			return &sandre.NamespaceError{Element: el.Tag, Prefix: a.Key, URI: a.Value}
		case a.Space == "xml":
		case a.Space != "":
			return &sandre.NamespaceError{Element: el.Tag, Prefix: a.Space}
		}
	}
	for _, child := range el.ChildElements() {
		if err := checkNamespaces(child); err != nil {
			return err
		}
	}
	return nil
}

// StripNamespace removes the SANDRE default namespace and the XML Schema
// instance declarations (xmlns:xsi, xsi:schemaLocation) from a bulletin so
// that it can be decoded. Any other namespace is left in place and still
// fails the decode.
func StripNamespace(data []byte) ([]byte, error) {
	xml := etree.NewDocument()
	if err := xml.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %w", sandre.ErrMalformedDocument, err)
	}
	root := xml.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: no root element", sandre.ErrMalformedDocument)
	}
	stripElement(root)
	return xml.WriteToBytes()
}

func stripElement(el *etree.Element) {
	kept := el.Attr[:0]
	for _, a := range el.Attr {
		switch {
		case a.Space == "" && a.Key == "xmlns" && strings.HasPrefix(a.Value, sandreNamespacePrefix):
		case a.Space == "xmlns" && a.Value == xsiNamespace:
		case a.Space == "xsi":
		default:
			kept = append(kept, a)
		}
	}
	el.Attr = kept
	for _, child := range el.ChildElements() {
		stripElement(child)
	}
}
