package plan_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItinerary() Itinerary {
	return Itinerary{
		Destination: "Paris",
		Version:     1,
		Days: []DayPlan{
			{
				Day: 1,
				Activities: []Activity{
					{StartTime: "09:00", EndTime: "11:00", Location: "Louvre", Description: "Visit the Louvre"},
					{StartTime: "14:00", EndTime: "16:00", Location: "Le Marais", Description: "Food tour"},
				},
			},
			{
				Day: 2,
				Activities: []Activity{
					{StartTime: "10:00", EndTime: "12:00", Location: "Musée d'Orsay", Description: "Visit the museum"},
				},
			},
		},
	}
}

func TestDeltaItemResolveByPosition(t *testing.T) {
	it := testItinerary()

	dayIdx, actIdx, ok := DeltaItem{Day: 1, Position: 2}.Resolve(&it)

	require.True(t, ok)
	assert.Equal(t, 0, dayIdx)
	assert.Equal(t, 1, actIdx)
}

func TestDeltaItemResolveByPositionOutOfRange(t *testing.T) {
	it := testItinerary()

	_, _, ok := DeltaItem{Day: 1, Position: 5}.Resolve(&it)
	assert.False(t, ok)

	_, _, ok = DeltaItem{Day: 9, Position: 1}.Resolve(&it)
	assert.False(t, ok)
}

func TestDeltaItemResolveByMatch(t *testing.T) {
	it := testItinerary()

	dayIdx, actIdx, ok := DeltaItem{Match: "louvre"}.Resolve(&it)

	require.True(t, ok)
	assert.Equal(t, 0, dayIdx)
	assert.Equal(t, 0, actIdx)
}

func TestDeltaItemResolveAmbiguousMatch(t *testing.T) {
	it := testItinerary()

	// "visit" appears in two activity descriptions.
	_, _, ok := DeltaItem{Match: "visit"}.Resolve(&it)
	assert.False(t, ok)
}

func TestDeltaItemResolveNoMatch(t *testing.T) {
	it := testItinerary()

	_, _, ok := DeltaItem{Match: "eiffel"}.Resolve(&it)
	assert.False(t, ok)

	_, _, ok = DeltaItem{}.Resolve(&it)
	assert.False(t, ok)
}

func TestDeltaItemResolvePositionMismatchedMatch(t *testing.T) {
	it := testItinerary()

	// Position points at the food tour but the match names the Louvre.
	_, _, ok := DeltaItem{Day: 1, Position: 2, Match: "louvre"}.Resolve(&it)
	assert.False(t, ok)
}

func TestDeltaItemRender(t *testing.T) {
	it := testItinerary()

	item := DeltaItem{
		Day:      1,
		Position: 1,
		Problem:  "closes at 6 PM",
		Fix:      &Activity{StartTime: "14:00", EndTime: "16:00"},
	}

	assert.Equal(t, "Visit the Louvre: closes at 6 PM → move to 14:00–16:00", item.Render(&it))
}

func TestDeltaItemRenderRemoval(t *testing.T) {
	it := testItinerary()

	item := DeltaItem{Day: 2, Position: 1, Problem: "permanently closed", Remove: true}

	assert.Equal(t, "Visit the museum: permanently closed → remove from itinerary", item.Render(&it))
}

func TestApplyReportOutstanding(t *testing.T) {
	report := ApplyReport{
		Applied:      []DeltaItem{{Problem: "a"}},
		Deferred:     []DeltaItem{{Problem: "b"}},
		Unresolvable: []DeltaItem{{Problem: "c"}},
	}

	outstanding := report.Outstanding()

	require.Len(t, outstanding, 2)
	assert.Equal(t, "b", outstanding[0].Problem)
	assert.Equal(t, "c", outstanding[1].Problem)
}
