package services

import (
	"tripsmith/internal/models/plan_models"
)

type DeltaApplierInterface interface {
	// Apply merges a delta list into a new itinerary version. Unresolvable
	// items and fixes that would break the non-overlap invariant are reported,
	// never applied and never silently dropped. An empty list returns the
	// itinerary untouched.
	Apply(itinerary plan_models.Itinerary, deltas plan_models.DeltaList) (plan_models.Itinerary, plan_models.ApplyReport)
}

type DeltaService struct{}

func NewDeltaService() DeltaApplierInterface {
	return &DeltaService{}
}

type target struct {
	day, idx int
}

func (d *DeltaService) Apply(itinerary plan_models.Itinerary, deltas plan_models.DeltaList) (plan_models.Itinerary, plan_models.ApplyReport) {
	var report plan_models.ApplyReport
	if deltas.Empty() {
		return itinerary, report
	}

	out := itinerary.Clone()
	out.Version = itinerary.Version + 1

	// Resolve every item against the itinerary the reviewer saw, then apply
	// sequentially. Removals are tombstoned so positions stay stable until
	// the final compaction.
	removed := make(map[target]bool)

	for _, item := range deltas.Items {
		dayIdx, actIdx, ok := item.Resolve(&itinerary)
		if !ok || removed[target{dayIdx, actIdx}] {
			report.Unresolvable = append(report.Unresolvable, item)
			continue
		}

		if item.Remove {
			removed[target{dayIdx, actIdx}] = true
			report.Applied = append(report.Applied, item)
			continue
		}
		if item.Fix == nil {
			report.Unresolvable = append(report.Unresolvable, item)
			continue
		}

		fix := *item.Fix
		fix.Verification = plan_models.StatusCorrected
		if d.wouldOverlap(out.Days[dayIdx], actIdx, fix, dayIdx, removed) {
			report.Deferred = append(report.Deferred, item)
			continue
		}

		out.Days[dayIdx].Activities[actIdx] = fix
		report.Applied = append(report.Applied, item)
	}

	d.compact(&out, removed)
	return out, report
}

// wouldOverlap checks a candidate fix against every other live activity of
// its day.
func (d *DeltaService) wouldOverlap(day plan_models.DayPlan, actIdx int, fix plan_models.Activity, dayIdx int, removed map[target]bool) bool {
	for j := range day.Activities {
		if j == actIdx || removed[target{dayIdx, j}] {
			continue
		}
		if fix.OverlapsWith(day.Activities[j]) {
			return true
		}
	}
	return false
}

// compact drops tombstoned activities and restores start-time order per day.
func (d *DeltaService) compact(it *plan_models.Itinerary, removed map[target]bool) {
	for i := range it.Days {
		day := &it.Days[i]
		kept := day.Activities[:0]
		for j := range day.Activities {
			if removed[target{i, j}] {
				continue
			}
			kept = append(kept, day.Activities[j])
		}
		day.Activities = kept
		day.SortActivities()
	}
}
