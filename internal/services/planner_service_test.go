package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"tripsmith/internal/models/db_models"
	"tripsmith/internal/models/plan_models"
)

func testGroup() plan_models.Group {
	return plan_models.Group{
		{ID: "u1", Name: "Ana", Role: plan_models.RolePrimary, Interests: []string{"history", "food"}},
		{ID: "u2", Name: "Ben", Role: plan_models.RoleCompanion, Interests: []string{"art", "nightlife"}},
	}
}

func testCandidates() []db_models.POI {
	return []db_models.POI{
		{Name: "City Museum", Category: "history", AvgCost: 15},
		{Name: "Old Market", Category: "food", AvgCost: 20},
		{Name: "Modern Gallery", Category: "art", AvgCost: 12},
		{Name: "Jazz Cellar", Category: "nightlife", AvgCost: 30},
		{Name: "Castle Hill", Category: "history", AvgCost: 0},
		{Name: "Street Food Lane", Category: "food", AvgCost: 10},
		{Name: "Sculpture Park", Category: "art", AvgCost: 0},
		{Name: "Rooftop Bar", Category: "nightlife", AvgCost: 25},
	}
}

func TestBuildItineraryRejectsBadInput(t *testing.T) {
	planner := NewPlannerService(&fakeAIClient{}, &fakePOIRepo{})

	_, err := planner.BuildItinerary(context.Background(), testGroup(), TripContext{Destination: "", Days: 3})
	assert.Error(t, err)

	_, err = planner.BuildItinerary(context.Background(), plan_models.Group{}, TripContext{Destination: "Paris", Days: 3})
	assert.Error(t, err)
}

func TestBuildItineraryFromModelOutput(t *testing.T) {
	ai := &fakeAIClient{
		generateFn: func(ctx context.Context, instructions, prompt string) (string, error) {
			return `{"days":[
				{"day":1,"activities":[
					{"start_time":"09:00","end_time":"11:00","location":"City Museum","description":"Museum tour","categories":["history"],"estimated_cost":15},
					{"start_time":"12:00","end_time":"13:30","location":"Old Market","description":"Lunch","categories":["food"],"estimated_cost":20},
					{"start_time":"15:00","end_time":"17:00","location":"Modern Gallery","description":"Gallery visit","categories":["art"],"estimated_cost":12},
					{"start_time":"21:00","end_time":"23:00","location":"Jazz Cellar","description":"Live jazz","categories":["nightlife"],"estimated_cost":30}
				]}
			]}`, nil
		},
	}
	planner := NewPlannerService(ai, &fakePOIRepo{pois: testCandidates()})

	it, err := planner.BuildItinerary(context.Background(), testGroup(), TripContext{Destination: "Paris", Days: 1})

	require.NoError(t, err)
	assert.Equal(t, 1, it.Version)
	require.Len(t, it.Days, 1)
	assert.True(t, it.Valid())
	assert.Len(t, it.Days[0].Activities, 4)
}

func TestBuildItineraryFallsBackWhenModelFails(t *testing.T) {
	ai := &fakeAIClient{
		generateFn: func(ctx context.Context, instructions, prompt string) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	planner := NewPlannerService(ai, &fakePOIRepo{pois: testCandidates()})

	it, err := planner.BuildItinerary(context.Background(), testGroup(), TripContext{Destination: "Paris", Days: 3})

	require.NoError(t, err)
	assert.Len(t, it.Days, 3)
	assert.True(t, it.Valid())
	for _, day := range it.Days {
		assert.NotEmpty(t, day.Activities)
	}
}

func TestBuildItineraryBalancesGroupInterests(t *testing.T) {
	// Model only plans for Ana; the balancing pass must work Ben's
	// interests into every day.
	ai := &fakeAIClient{
		generateFn: func(ctx context.Context, instructions, prompt string) (string, error) {
			return `{"days":[
				{"day":1,"activities":[
					{"start_time":"09:00","end_time":"11:00","location":"City Museum","description":"Museum tour","categories":["history"]},
					{"start_time":"12:00","end_time":"13:30","location":"Old Market","description":"Lunch","categories":["food"]}
				]},
				{"day":2,"activities":[
					{"start_time":"09:00","end_time":"11:00","location":"Castle Hill","description":"Castle walk","categories":["history"]},
					{"start_time":"12:00","end_time":"13:30","location":"Street Food Lane","description":"Street food","categories":["food"]}
				]}
			]}`, nil
		},
	}
	planner := NewPlannerService(ai, &fakePOIRepo{pois: testCandidates()})

	group := testGroup()
	it, err := planner.BuildItinerary(context.Background(), group, TripContext{Destination: "Paris", Days: 2})

	require.NoError(t, err)
	assert.True(t, it.Valid())

	interests := group.DistinctInterests()
	for _, day := range it.Days {
		covered := day.CoveredInterests(interests)
		for _, interest := range interests {
			assert.Truef(t, covered[interest], "day %d misses %q", day.Day, interest)
		}
	}
}

func TestBuildItineraryBestEffortWithoutCandidates(t *testing.T) {
	ai := &fakeAIClient{
		generateFn: func(ctx context.Context, instructions, prompt string) (string, error) {
			return "", errors.New("model unavailable")
		},
		embedFn: nil,
	}
	repo := &fakePOIRepo{err: errors.New("db down")}
	planner := NewPlannerService(ai, repo)

	it, err := planner.BuildItinerary(context.Background(), testGroup(), TripContext{Destination: "Paris", Days: 2, Pace: "relaxed"})

	require.NoError(t, err)
	assert.Len(t, it.Days, 2)
	assert.True(t, it.Valid())
	// relaxed pace caps the fallback at three slots per day
	for _, day := range it.Days {
		assert.LessOrEqual(t, len(day.Activities), 5)
		assert.NotEmpty(t, day.Activities)
	}
}

func TestNormalizeRepairsOverlapsAndDayCount(t *testing.T) {
	ai := &fakeAIClient{
		generateFn: func(ctx context.Context, instructions, prompt string) (string, error) {
			// Overlapping times, a missing day, times out of order.
			return `{"days":[
				{"day":1,"activities":[
					{"start_time":"10:00","end_time":"12:00","location":"B","description":"Second","categories":["history"]},
					{"start_time":"09:00","end_time":"11:00","location":"A","description":"First","categories":["food"]}
				]}
			]}`, nil
		},
	}
	planner := NewPlannerService(ai, &fakePOIRepo{})

	it, err := planner.BuildItinerary(context.Background(), testGroup()[:1], TripContext{Destination: "Paris", Days: 2})

	require.NoError(t, err)
	assert.Len(t, it.Days, 2)
	assert.True(t, it.Valid())

	day := it.Days[0]
	require.Len(t, day.Activities, 2)
	assert.Equal(t, "First", day.Activities[0].Description)
	// Second activity shifted behind the first, duration preserved.
	assert.Equal(t, "11:00", day.Activities[1].StartTime)
	assert.Equal(t, "13:00", day.Activities[1].EndTime)
}
