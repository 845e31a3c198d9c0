package plan_models

import (
	"sort"
	"strings"

	"tripsmith/pkg/utils"
)

type TravelerRole string

const (
	RolePrimary   TravelerRole = "primary"
	RoleCompanion TravelerRole = "companion"
)

type TravelerProfile struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Role      TravelerRole `json:"role"`
	Interests []string     `json:"interests"`
}

// Group is the full travel party for one trip. Input-only and immutable for
// the lifetime of a planning session.
type Group []TravelerProfile

// DistinctInterests returns the deduplicated union of the group's interests,
// lowercased, in order of first appearance.
func (g Group) DistinctInterests() []string {
	seen := make(map[string]bool)
	var out []string
	for _, traveler := range g {
		for _, interest := range traveler.Interests {
			key := strings.ToLower(strings.TrimSpace(interest))
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, key)
		}
	}
	return out
}

type VerificationStatus string

const (
	StatusUnchecked    VerificationStatus = ""
	StatusVerified     VerificationStatus = "verified"
	StatusUnverifiable VerificationStatus = "unverifiable"
	StatusCorrected    VerificationStatus = "corrected"
)

type Activity struct {
	StartTime     string             `json:"start_time"`
	EndTime       string             `json:"end_time"`
	Location      string             `json:"location"`
	Description   string             `json:"description"`
	Categories    []string           `json:"categories,omitempty"`
	EstimatedCost float64            `json:"estimated_cost,omitempty"`
	Verification  VerificationStatus `json:"verification,omitempty"`
}

// StartMinutes parses the activity clock, defaulting to start-of-day on bad input.
func (a Activity) StartMinutes() int { return utils.ParseClockOr(a.StartTime, 0) }
func (a Activity) EndMinutes() int   { return utils.ParseClockOr(a.EndTime, a.StartMinutes()) }

// OverlapsWith reports whether two activities share any minute of the day.
func (a Activity) OverlapsWith(other Activity) bool {
	return a.StartMinutes() < other.EndMinutes() && other.StartMinutes() < a.EndMinutes()
}

// MatchesCategory reports whether any of the activity's categories equals the
// given interest, case-insensitive.
func (a Activity) MatchesCategory(interest string) bool {
	interest = strings.ToLower(strings.TrimSpace(interest))
	for _, c := range a.Categories {
		if strings.ToLower(strings.TrimSpace(c)) == interest {
			return true
		}
	}
	return false
}

type DayPlan struct {
	Day        int        `json:"day"`
	Date       string     `json:"date,omitempty"`
	Activities []Activity `json:"activities"`
}

// SortActivities orders the day by start time (stable, so equal starts keep
// their relative order).
func (d *DayPlan) SortActivities() {
	sort.SliceStable(d.Activities, func(i, j int) bool {
		return d.Activities[i].StartMinutes() < d.Activities[j].StartMinutes()
	})
}

// HasOverlap reports whether any two activities in the day overlap. Assumes
// nothing about ordering.
func (d DayPlan) HasOverlap() bool {
	for i := 0; i < len(d.Activities); i++ {
		for j := i + 1; j < len(d.Activities); j++ {
			if d.Activities[i].OverlapsWith(d.Activities[j]) {
				return true
			}
		}
	}
	return false
}

// CoveredInterests returns which of the given interests have at least one
// matching activity in the day.
func (d DayPlan) CoveredInterests(interests []string) map[string]bool {
	covered := make(map[string]bool)
	for _, interest := range interests {
		for _, act := range d.Activities {
			if act.MatchesCategory(interest) {
				covered[interest] = true
				break
			}
		}
	}
	return covered
}

type Itinerary struct {
	Destination string    `json:"destination"`
	StartDate   string    `json:"start_date,omitempty"`
	Version     int       `json:"version"`
	Days        []DayPlan `json:"days"`
}

// Clone deep-copies the itinerary so the delta applier can rewrite a new
// version without mutating what the reviewer saw.
func (it Itinerary) Clone() Itinerary {
	out := it
	out.Days = make([]DayPlan, len(it.Days))
	for i, day := range it.Days {
		copied := day
		copied.Activities = make([]Activity, len(day.Activities))
		copy(copied.Activities, day.Activities)
		out.Days[i] = copied
	}
	return out
}

// DayByNumber returns the day with the given 1-based number, or nil.
func (it *Itinerary) DayByNumber(day int) *DayPlan {
	for i := range it.Days {
		if it.Days[i].Day == day {
			return &it.Days[i]
		}
	}
	return nil
}

// Valid reports whether every day satisfies the ordering and non-overlap
// invariants.
func (it Itinerary) Valid() bool {
	for _, day := range it.Days {
		for i := 1; i < len(day.Activities); i++ {
			if day.Activities[i].StartMinutes() < day.Activities[i-1].EndMinutes() {
				return false
			}
		}
		if day.HasOverlap() {
			return false
		}
	}
	return true
}
