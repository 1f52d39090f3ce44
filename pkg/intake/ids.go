package intake

import (
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// Identifiers carry a UTC second timestamp plus a short random suffix, so
// they sort by creation time and still survive two submissions landing in
// the same second.

// NewSubmissionID mints a submission identifier, e.g.
// SUB-20250114093042-9f3a1c.
func NewSubmissionID(now time.Time) string {
	return mintID("SUB", now)
}

// NewPOAID mints a power of attorney identifier, e.g.
// POA-20250114093042-4b8e02.
func NewPOAID(now time.Time) string {
	return mintID("POA", now)
}

func mintID(prefix string, now time.Time) string {
	u := uuid.New()
	return prefix + "-" + now.UTC().Format("20060102150405") + "-" + hex.EncodeToString(u[:3])
}

// GenerationTimestamp renders the human-readable stamp printed on generated
// documents, pinned to Eastern time regardless of where the service runs.
func GenerationTimestamp(now time.Time) string {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("EST", -5*3600)
	}
	t := now.In(loc)
	return t.Format("Generated 01/02/2006 at 3:04 PM") + " EST"
}
