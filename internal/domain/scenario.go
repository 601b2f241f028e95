package domain

import (
	"time"

	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

// Intervenant code schemes.
const (
	SchemeSANDRE = "SANDRE"
	SchemeSIRET  = "SIRET"
)

// ScenarioCode is the only scenario code a Hydrometrie bulletin carries.
const ScenarioCode = "hydrometrie"

// Party identifies one end of an exchange: an intervenant and optionally one
// of its contacts.
type Party struct {
	IntervenantCode   string
	IntervenantScheme string
	ContactCode       string
}

// IsZero reports whether no intervenant is set.
func (p Party) IsZero() bool { return p.IntervenantCode == "" }

// Scenario is the bulletin header.
type Scenario struct {
	Code string
	// Version is the wire generation the document was read from. Encoding
	// writes the requested target instead.
	Version   sandre.Version
	Name      string
	CreatedAt time.Time
	Emitter   Party
	Recipient Party
}

// Validate checks the fields every bulletin header must carry.
func (s Scenario) Validate() error {
	if err := required("scenario", "", "emitter", s.Emitter.IntervenantCode); err != nil {
		return err
	}
	if s.CreatedAt.IsZero() {
		return invalid("scenario", "", "created_at", "required")
	}
	return nil
}

// Contact is a person working for an intervenant.
type Contact struct {
	Code      string
	Name      string
	FirstName string
	Civility  *int
	Email     string
}

// Intervenant is an organization taking part in hydrometric exchanges.
type Intervenant struct {
	Code     string
	Scheme   string
	Name     string
	Mnemo    string
	Contacts []Contact
}

// Validate checks codes on the intervenant and its contacts.
func (i Intervenant) Validate() error {
	if err := required("intervenant", "", "code", i.Code); err != nil {
		return err
	}
	for _, c := range i.Contacts {
		if err := required("contact", i.Code, "code", c.Code); err != nil {
			return err
		}
	}
	return nil
}
