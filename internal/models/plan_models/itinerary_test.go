package plan_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupDistinctInterests(t *testing.T) {
	group := Group{
		{Name: "Ana", Role: RolePrimary, Interests: []string{"History", "food"}},
		{Name: "Ben", Role: RoleCompanion, Interests: []string{"Art", "history", "  "}},
	}

	assert.Equal(t, []string{"history", "food", "art"}, group.DistinctInterests())
}

func TestActivityOverlapsWith(t *testing.T) {
	tests := []struct {
		name string
		a, b Activity
		want bool
	}{
		{
			name: "disjoint",
			a:    Activity{StartTime: "09:00", EndTime: "11:00"},
			b:    Activity{StartTime: "11:00", EndTime: "12:00"},
			want: false,
		},
		{
			name: "partial overlap",
			a:    Activity{StartTime: "09:00", EndTime: "11:00"},
			b:    Activity{StartTime: "10:30", EndTime: "12:00"},
			want: true,
		},
		{
			name: "contained",
			a:    Activity{StartTime: "09:00", EndTime: "18:00"},
			b:    Activity{StartTime: "10:00", EndTime: "11:00"},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.OverlapsWith(tt.b))
			assert.Equal(t, tt.want, tt.b.OverlapsWith(tt.a))
		})
	}
}

func TestDayPlanSortActivities(t *testing.T) {
	day := DayPlan{
		Day: 1,
		Activities: []Activity{
			{StartTime: "14:00", EndTime: "16:00", Description: "afternoon"},
			{StartTime: "09:00", EndTime: "11:00", Description: "morning"},
			{StartTime: "20:00", EndTime: "22:00", Description: "evening"},
		},
	}

	day.SortActivities()

	require.Len(t, day.Activities, 3)
	assert.Equal(t, "morning", day.Activities[0].Description)
	assert.Equal(t, "afternoon", day.Activities[1].Description)
	assert.Equal(t, "evening", day.Activities[2].Description)
}

func TestDayPlanCoveredInterests(t *testing.T) {
	day := DayPlan{
		Activities: []Activity{
			{Description: "Louvre", Categories: []string{"art", "history"}},
			{Description: "Bistro", Categories: []string{"Food"}},
		},
	}

	covered := day.CoveredInterests([]string{"history", "food", "nightlife"})

	assert.True(t, covered["history"])
	assert.True(t, covered["food"])
	assert.False(t, covered["nightlife"])
}

func TestItineraryValid(t *testing.T) {
	good := Itinerary{Days: []DayPlan{{
		Day: 1,
		Activities: []Activity{
			{StartTime: "09:00", EndTime: "11:00"},
			{StartTime: "11:30", EndTime: "13:00"},
		},
	}}}
	assert.True(t, good.Valid())

	overlapping := Itinerary{Days: []DayPlan{{
		Day: 1,
		Activities: []Activity{
			{StartTime: "09:00", EndTime: "11:00"},
			{StartTime: "10:00", EndTime: "12:00"},
		},
	}}}
	assert.False(t, overlapping.Valid())
}

func TestItineraryCloneIsIndependent(t *testing.T) {
	original := Itinerary{
		Destination: "Paris",
		Version:     1,
		Days: []DayPlan{{
			Day:        1,
			Activities: []Activity{{StartTime: "09:00", EndTime: "11:00", Description: "Louvre"}},
		}},
	}

	clone := original.Clone()
	clone.Days[0].Activities[0].Description = "changed"

	assert.Equal(t, "Louvre", original.Days[0].Activities[0].Description)
}

func TestDayByNumber(t *testing.T) {
	it := Itinerary{Days: []DayPlan{{Day: 1}, {Day: 2}}}

	require.NotNil(t, it.DayByNumber(2))
	assert.Equal(t, 2, it.DayByNumber(2).Day)
	assert.Nil(t, it.DayByNumber(5))
}
