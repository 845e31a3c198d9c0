package response_models

import (
	"tripsmith/internal/models/plan_models"
)

type TripResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Destination string `json:"destination"`
	StartDate   string `json:"start_date"`
	Days        int    `json:"days"`
	State       string `json:"state"`
}

type RevisionResponse struct {
	Version   int                   `json:"version"`
	Itinerary plan_models.Itinerary `json:"itinerary"`
}

type DeltaLineResponse struct {
	Version int    `json:"version"`
	Line    string `json:"line"`
	Status  string `json:"status"`
}

type TripDetailResponse struct {
	TripResponse
	Iterations int                 `json:"iterations"`
	Revisions  []RevisionResponse  `json:"revisions"`
	Deltas     []DeltaLineResponse `json:"deltas"`
}

// PlanRunResponse is the immediate result of POST /trips/plan.
type PlanRunResponse struct {
	TripID      string                `json:"trip_id"`
	State       string                `json:"state"`
	Iterations  int                   `json:"iterations"`
	Itinerary   plan_models.Itinerary `json:"itinerary"`
	DeltaLines  []string              `json:"delta_lines"`
	Outstanding []string              `json:"outstanding"`
}
