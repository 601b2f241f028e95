package domain

import "time"

// Event publication codes.
const (
	// PublicationRestricted marks an event visible to the producer's
	// partners only.
	PublicationRestricted = 20
	// PublicationArchived only exists in 1.1 bulletins. It reads as
	// PublicationRestricted with an end date.
	PublicationArchived = 25
)

// Event is a free-text event logged on a hydro entity.
type Event struct {
	Entity      EntityRef
	ContactCode string
	Date        time.Time
	Description string
	Publication *int
	UpdatedAt   time.Time
	EndedAt     time.Time
}

// Validate checks the target and the date.
func (e Event) Validate() error {
	id := e.Entity.Code
	if err := required("event", id, "entity", e.Entity.Code); err != nil {
		return err
	}
	if e.Date.IsZero() {
		return invalid("event", id, "date", "required")
	}
	return nil
}
