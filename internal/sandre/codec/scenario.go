package codec

import (
	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
)

func (r *reader) scenario(el *etree.Element) (domain.Scenario, error) {
	created, err := extract.Time(el, r.tag(tags.ScenarioCreated))
	if err != nil {
		return domain.Scenario{}, err
	}
	return domain.Scenario{
		Code:      extract.Text(el, r.tag(tags.ScenarioCode)),
		Version:   r.dict.Version(),
		Name:      extract.Text(el, r.tag(tags.ScenarioName)),
		CreatedAt: created,
		Emitter:   r.party(extract.Child(el, r.tag(tags.Emitter))),
		Recipient: r.party(extract.Child(el, r.tag(tags.Recipient))),
	}, nil
}

func (r *reader) party(el *etree.Element) domain.Party {
	if el == nil {
		return domain.Party{}
	}
	code, scheme := r.intervenantCode(el)
	return domain.Party{
		IntervenantCode:   code,
		IntervenantScheme: scheme,
		ContactCode:       extract.Text(el, r.tag(tags.ContactCode)),
	}
}

// intervenantCode reads CdIntervenant and its scheme attribute, which
// defaults to SANDRE.
func (r *reader) intervenantCode(parent *etree.Element) (code, scheme string) {
	el := extract.Child(parent, r.tag(tags.IntervenantCode))
	code = extract.Text(parent, r.tag(tags.IntervenantCode))
	if code == "" {
		return "", ""
	}
	scheme = el.SelectAttrValue(r.tag(tags.SchemeAttr), domain.SchemeSANDRE)
	return code, scheme
}

func (w *writer) scenario(s domain.Scenario) story.Node {
	code := s.Code
	if code == "" {
		code = domain.ScenarioCode
	}
	return story.Container(w.tag(tags.Scenario),
		story.Text(w.tag(tags.ScenarioCode), code),
		story.Text(w.tag(tags.ScenarioVersion), w.dict.Version().String()),
		story.Text(w.tag(tags.ScenarioName), s.Name),
		story.Time(w.tag(tags.ScenarioCreated), s.CreatedAt),
		w.party(tags.Emitter, s.Emitter),
		w.party(tags.Recipient, s.Recipient),
	)
}

func (w *writer) party(k tags.Key, p domain.Party) story.Node {
	return story.Container(w.tag(k),
		w.intervenantCode(p.IntervenantCode, p.IntervenantScheme),
		story.Text(w.tag(tags.ContactCode), p.ContactCode),
	)
}

func (w *writer) intervenantCode(code, scheme string) story.Node {
	if scheme == "" {
		scheme = domain.SchemeSANDRE
	}
	return story.Text(w.tag(tags.IntervenantCode), code).WithAttr(w.tag(tags.SchemeAttr), scheme)
}

func (r *reader) intervenants(ref *etree.Element) ([]domain.Intervenant, error) {
	var out []domain.Intervenant
	for _, el := range extract.Path(ref, r.tag(tags.Intervenants), r.tag(tags.Intervenant)) {
		code, scheme := r.intervenantCode(el)
		in := domain.Intervenant{
			Code:   code,
			Scheme: scheme,
			Name:   extract.Text(el, r.tag(tags.IntervenantName)),
			Mnemo:  extract.Text(el, r.tag(tags.IntervenantMnemo)),
		}
		for _, c := range extract.Path(el, r.tag(tags.Contacts), r.tag(tags.Contact)) {
			civility, err := extract.OptInt(c, r.tag(tags.ContactCivility))
			if err != nil {
				return nil, err
			}
			in.Contacts = append(in.Contacts, domain.Contact{
				Code:      extract.Text(c, r.tag(tags.ContactCode)),
				Name:      extract.Text(c, r.tag(tags.ContactName)),
				FirstName: extract.Text(c, r.tag(tags.ContactFirstName)),
				Civility:  civility,
				Email:     extract.Text(c, r.tag(tags.ContactEmail)),
			})
		}
		out = append(out, in)
	}
	return out, nil
}

func (w *writer) intervenants(list []domain.Intervenant) story.Node {
	items := make(story.Story, 0, len(list))
	for _, in := range list {
		contacts := make(story.Story, 0, len(in.Contacts))
		for _, c := range in.Contacts {
			contacts = append(contacts, story.Container(w.tag(tags.Contact),
				story.Text(w.tag(tags.ContactCode), c.Code),
				story.Text(w.tag(tags.ContactName), c.Name),
				story.Text(w.tag(tags.ContactFirstName), c.FirstName),
				story.OptInt(w.tag(tags.ContactCivility), c.Civility),
				story.Text(w.tag(tags.ContactEmail), c.Email),
			))
		}
		items = append(items, story.Container(w.tag(tags.Intervenant),
			w.intervenantCode(in.Code, in.Scheme),
			story.Text(w.tag(tags.IntervenantName), in.Name),
			story.Text(w.tag(tags.IntervenantMnemo), in.Mnemo),
			story.Container(w.tag(tags.Contacts), contacts...),
		))
	}
	return story.Container(w.tag(tags.Intervenants), items...)
}
