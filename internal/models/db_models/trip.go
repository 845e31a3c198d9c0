package db_models

import (
	"github.com/google/uuid"
)

type Trip struct {
	BaseModel
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	Title       string
	Destination string
	StartDate   int64
	DayCount    int
	State       string // orchestrator terminal state
	Iterations  int

	Revisions []TripRevision
	Deltas    []DeltaRecord
}

// TripRevision snapshots one itinerary version produced during a run. The
// itinerary itself is stored as a JSON document.
type TripRevision struct {
	BaseModel
	TripID    uuid.UUID `gorm:"type:uuid;index"`
	Version   int
	Itinerary string `gorm:"type:jsonb"`
}

// DeltaRecord is one reviewer correction surfaced during a run, kept in the
// textual "<Activity>: <problem> → <fix>" form alongside its outcome.
type DeltaRecord struct {
	BaseModel
	TripID  uuid.UUID `gorm:"type:uuid;index"`
	Version int       // itinerary version the delta was generated against
	Line    string
	Problem string
	Status  string // applied | deferred | unresolvable
}
