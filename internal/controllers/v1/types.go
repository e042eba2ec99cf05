package v1

import (
	"time"

	google_uuid "github.com/google/uuid"
)

// Now returns the current wall-clock time. It is a variable so tests
// can pin the clock; nothing below the controllers reads system time.
var Now = time.Now

// UUID wraps google/uuid with URI parameter binding.
type UUID struct {
	google_uuid.UUID
}

// UnmarshalParam parses a URI parameter into a UUID.
func (u *UUID) UnmarshalParam(p string) error {
	parsed, err := google_uuid.Parse(p)
	if err != nil {
		return err
	}

	*u = UUID{parsed}
	return nil
}

// URIID is the URI binding for routes addressing a single resource.
type URIID struct {
	ID UUID `uri:"id" binding:"required" format:"UUID"` // ID of the resource
}
