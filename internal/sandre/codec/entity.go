package codec

import (
	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
)

var entityCodeKeys = []struct {
	kind domain.EntityKind
	key  tags.Key
}{
	{domain.EntitySite, tags.SiteCode},
	{domain.EntityStation, tags.StationCode},
	{domain.EntitySensor, tags.SensorCode},
}

// entity reads the hydro entity an element refers to. 1.1 uses one untyped
// code whose length gives the kind; 2 names the kind in the element.
func (r *reader) entity(el *etree.Element, owner string) (domain.EntityRef, error) {
	if r.dict.GenericEntityCode() {
		code := extract.Text(el, r.tag(tags.GenericEntityCode))
		if code == "" {
			return domain.EntityRef{}, &domain.ValidationError{Entity: owner, Field: "entity", Reason: "required"}
		}
		return domain.InferEntityKind(code)
	}
	for _, ek := range entityCodeKeys {
		if code := extract.Text(el, r.tag(ek.key)); code != "" {
			return domain.EntityRef{Kind: ek.kind, Code: code}, nil
		}
	}
	return domain.EntityRef{}, &domain.ValidationError{Entity: owner, Field: "entity", Reason: "required"}
}

func (w *writer) entity(ref domain.EntityRef) story.Node {
	if w.dict.GenericEntityCode() {
		return story.Text(w.tag(tags.GenericEntityCode), ref.Code)
	}
	for _, ek := range entityCodeKeys {
		if ek.kind == ref.Kind {
			return story.Text(w.tag(ek.key), ref.Code)
		}
	}
	return story.Text(w.tag(tags.SiteCode), ref.Code)
}
