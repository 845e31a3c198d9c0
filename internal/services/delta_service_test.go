package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripsmith/internal/models/plan_models"
)

func parisItinerary() plan_models.Itinerary {
	return plan_models.Itinerary{
		Destination: "Paris",
		Version:     1,
		Days: []plan_models.DayPlan{
			{
				Day: 1,
				Activities: []plan_models.Activity{
					{StartTime: "10:00", EndTime: "12:00", Location: "Notre-Dame", Description: "Walk around Notre-Dame"},
					{StartTime: "20:00", EndTime: "22:00", Location: "Louvre", Description: "Visit the Louvre"},
				},
			},
		},
	}
}

func TestApplyEmptyDeltaListIsIdentity(t *testing.T) {
	applier := NewDeltaService()
	it := parisItinerary()

	out, report := applier.Apply(it, plan_models.DeltaList{})

	assert.Equal(t, it, out)
	assert.Empty(t, report.Applied)
	assert.Empty(t, report.Deferred)
	assert.Empty(t, report.Unresolvable)
}

func TestApplyFixBumpsVersionAndReorders(t *testing.T) {
	applier := NewDeltaService()
	it := parisItinerary()

	// The Louvre closes at 18:00, so the reviewer moved the visit to 14:00.
	deltas := plan_models.DeltaList{Items: []plan_models.DeltaItem{{
		Day:      1,
		Position: 2,
		Problem:  "closes at 6 PM",
		Fix: &plan_models.Activity{
			StartTime:   "14:00",
			EndTime:     "16:00",
			Location:    "Louvre",
			Description: "Visit the Louvre",
		},
	}}}

	out, report := applier.Apply(it, deltas)

	require.Len(t, report.Applied, 1)
	assert.Equal(t, 2, out.Version)
	assert.True(t, out.Valid())

	louvre := out.Days[0].Activities[1]
	assert.Equal(t, "14:00", louvre.StartTime)
	assert.Equal(t, "16:00", louvre.EndTime)
	assert.Equal(t, plan_models.StatusCorrected, louvre.Verification)

	// Original itinerary untouched.
	assert.Equal(t, "20:00", it.Days[0].Activities[1].StartTime)
}

func TestApplyRemoval(t *testing.T) {
	applier := NewDeltaService()
	it := parisItinerary()

	deltas := plan_models.DeltaList{Items: []plan_models.DeltaItem{{
		Match:   "notre-dame",
		Problem: "closed for restoration",
		Remove:  true,
	}}}

	out, report := applier.Apply(it, deltas)

	require.Len(t, report.Applied, 1)
	require.Len(t, out.Days[0].Activities, 1)
	assert.Equal(t, "Louvre", out.Days[0].Activities[0].Location)
}

func TestApplyDefersOverlappingFix(t *testing.T) {
	applier := NewDeltaService()
	it := parisItinerary()

	// Moving the Louvre onto the Notre-Dame slot must not corrupt the day.
	deltas := plan_models.DeltaList{Items: []plan_models.DeltaItem{{
		Day:      1,
		Position: 2,
		Problem:  "closes at 6 PM",
		Fix: &plan_models.Activity{
			StartTime:   "11:00",
			EndTime:     "13:00",
			Location:    "Louvre",
			Description: "Visit the Louvre",
		},
	}}}

	out, report := applier.Apply(it, deltas)

	require.Len(t, report.Deferred, 1)
	assert.Empty(t, report.Applied)
	assert.True(t, out.Valid())
	assert.Equal(t, "20:00", out.Days[0].Activities[1].StartTime)
}

func TestApplyReportsUnresolvable(t *testing.T) {
	applier := NewDeltaService()
	it := parisItinerary()

	deltas := plan_models.DeltaList{Items: []plan_models.DeltaItem{
		{Match: "eiffel tower", Problem: "no such activity", Remove: true},
		{Day: 1, Position: 1, Problem: "conflicting fix"}, // no fix, no removal
	}}

	out, report := applier.Apply(it, deltas)

	assert.Len(t, report.Unresolvable, 2)
	assert.Len(t, out.Days[0].Activities, 2)
}

func TestApplySecondFixDeferredWhenFirstTakesSlot(t *testing.T) {
	applier := NewDeltaService()
	it := plan_models.Itinerary{
		Version: 1,
		Days: []plan_models.DayPlan{{
			Day: 1,
			Activities: []plan_models.Activity{
				{StartTime: "09:00", EndTime: "10:00", Location: "A", Description: "A"},
				{StartTime: "18:00", EndTime: "19:00", Location: "B", Description: "B"},
			},
		}},
	}

	deltas := plan_models.DeltaList{Items: []plan_models.DeltaItem{
		{Day: 1, Position: 1, Problem: "opens later", Fix: &plan_models.Activity{StartTime: "14:00", EndTime: "15:00", Location: "A", Description: "A"}},
		{Day: 1, Position: 2, Problem: "closes earlier", Fix: &plan_models.Activity{StartTime: "14:30", EndTime: "15:30", Location: "B", Description: "B"}},
	}}

	out, report := applier.Apply(it, deltas)

	require.Len(t, report.Applied, 1)
	require.Len(t, report.Deferred, 1)
	assert.Equal(t, "B", report.Deferred[0].Fix.Location)
	assert.True(t, out.Valid())
}
