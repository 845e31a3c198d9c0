package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"tripsmith/internal/models/db_models"
	"tripsmith/internal/models/plan_models"
	"tripsmith/internal/repositories"
	"tripsmith/pkg/utils"
)

// TripContext carries the request-level facts the planner needs beyond the
// group itself.
type TripContext struct {
	Destination string
	StartDate   time.Time
	Days        int
	Budget      float64
	Pace        string // relaxed | moderate | fast
}

type PlannerServiceInterface interface {
	BuildItinerary(ctx context.Context, group plan_models.Group, trip TripContext) (plan_models.Itinerary, error)
}

type PlannerService struct {
	aiClient utils.AIClientInterface
	poiRepo  repositories.POIRepository
}

func NewPlannerService(aiClient utils.AIClientInterface, poiRepo repositories.POIRepository) PlannerServiceInterface {
	return &PlannerService{
		aiClient: aiClient,
		poiRepo:  poiRepo,
	}
}

const plannerInstructions = `You are a travel planner. You turn a group's travel
request into a detailed day-by-day itinerary using only your own knowledge and
the provided candidate places. You have no internet access. Balance every
traveler's interests: with several travelers, each day should contain at least
one activity per distinct interest in the group. Activities must not overlap
and must use realistic HH:MM times between 08:00 and 22:00. Respect the budget
and pacing. Return JSON only.`

// plannerDayJSON mirrors the schema the model is instructed to emit.
type plannerDayJSON struct {
	Day        int `json:"day"`
	Activities []struct {
		StartTime     string   `json:"start_time"`
		EndTime       string   `json:"end_time"`
		Location      string   `json:"location"`
		Description   string   `json:"description"`
		Categories    []string `json:"categories"`
		EstimatedCost float64  `json:"estimated_cost"`
	} `json:"activities"`
}

type plannerPlanJSON struct {
	Days []plannerDayJSON `json:"days"`
}

func (p *PlannerService) BuildItinerary(ctx context.Context, group plan_models.Group, trip TripContext) (plan_models.Itinerary, error) {
	if trip.Destination == "" || trip.Days < 1 || len(group) == 0 {
		return plan_models.Itinerary{}, utils.ErrInvalidInput
	}

	startTime := time.Now()
	candidates := p.collectCandidates(ctx, group, trip)
	log.Printf("planner: %d candidate POIs for %s after %s", len(candidates), trip.Destination, time.Since(startTime))

	itinerary, err := p.generateWithRetry(ctx, group, trip, candidates)
	if err != nil {
		log.Printf("planner: AI generation failed (%v), using fallback builder", err)
		itinerary = p.fallbackItinerary(group, trip, candidates)
	}

	p.normalize(&itinerary, group, trip)
	p.balance(&itinerary, group, candidates)
	itinerary.Version = 1

	log.Printf("planner: itinerary for %s built in %s", trip.Destination, time.Since(startTime))
	return itinerary, nil
}

// collectCandidates pulls knowledge-base places for the destination, one
// vector lookup per distinct interest plus a plain destination listing.
// Lookup failures degrade to whatever was gathered so far: the planner must
// always emit an itinerary.
func (p *PlannerService) collectCandidates(ctx context.Context, group plan_models.Group, trip TripContext) []db_models.POI {
	seen := make(map[string]bool)
	var out []db_models.POI

	add := func(pois []db_models.POI) {
		for _, poi := range pois {
			key := strings.ToLower(poi.Name)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, poi)
		}
	}

	for _, interest := range group.DistinctInterests() {
		vec, err := p.aiClient.GetEmbedding(ctx, fmt.Sprintf("%s in %s", interest, trip.Destination))
		if err != nil {
			log.Printf("planner: embedding for %q failed: %v", interest, err)
			continue
		}
		pois, err := p.poiRepo.ListByVector(ctx, trip.Destination, vec, 10)
		if err != nil {
			log.Printf("planner: vector lookup for %q failed: %v", interest, err)
			continue
		}
		add(pois)
	}

	pois, err := p.poiRepo.ListByDestination(ctx, trip.Destination, 30)
	if err != nil {
		log.Printf("planner: destination listing failed: %v", err)
	} else {
		add(pois)
	}

	return out
}

func (p *PlannerService) generateWithRetry(ctx context.Context, group plan_models.Group, trip TripContext, candidates []db_models.POI) (plan_models.Itinerary, error) {
	prompt := p.buildPrompt(group, trip, candidates)

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := p.aiClient.GenerateJSON(ctx, plannerInstructions, prompt)
		if err != nil {
			lastErr = err
			continue
		}

		var parsed plannerPlanJSON
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			lastErr = fmt.Errorf("parse plan: %w", err)
			continue
		}
		if len(parsed.Days) == 0 {
			lastErr = fmt.Errorf("plan has no days")
			continue
		}
		return p.fromPlanJSON(parsed, trip), nil
	}
	return plan_models.Itinerary{}, lastErr
}

func (p *PlannerService) buildPrompt(group plan_models.Group, trip TripContext, candidates []db_models.POI) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Create a %d-day itinerary for %s.\n\n", trip.Days, trip.Destination)

	b.WriteString("Travelers:\n")
	for _, traveler := range group {
		fmt.Fprintf(&b, "- %s (%s): interests %s\n", traveler.Name, traveler.Role, strings.Join(traveler.Interests, ", "))
	}

	if len(candidates) > 0 {
		b.WriteString("\nCandidate places (prefer these):\n")
		for _, poi := range candidates {
			fmt.Fprintf(&b, "- Name: %s | Category: %s | Hours: %s | Cost: %.0f | %s\n",
				poi.Name, poi.Category, poi.OpeningHours, poi.AvgCost, poi.Description)
		}
	}

	if trip.Budget > 0 {
		fmt.Fprintf(&b, "\nTotal budget: %.0f.\n", trip.Budget)
	}
	if trip.Pace != "" {
		fmt.Fprintf(&b, "Pacing: %s.\n", trip.Pace)
	}

	fmt.Fprintf(&b, `
Return JSON matching exactly:
{
  "days": [
    {
      "day": 1,
      "activities": [
        {"start_time":"09:00","end_time":"11:00","location":"...","description":"...","categories":["history"],"estimated_cost":20}
      ]
    }
  ]
}

Hard constraints:
- Exactly %d entries in "days", day numbered 1..%d with no gaps.
- start_time < end_time, HH:MM format, within 08:00-22:00.
- No overlapping activities within a day.
- Every activity's categories must include at least one traveler interest.
- With multiple travelers, every day covers each distinct interest at least once.
Return JSON only. No comments, no markdown.
`, trip.Days, trip.Days)

	return b.String()
}

func (p *PlannerService) fromPlanJSON(parsed plannerPlanJSON, trip TripContext) plan_models.Itinerary {
	it := plan_models.Itinerary{
		Destination: trip.Destination,
		StartDate:   utils.FormatDate(trip.StartDate),
	}
	for _, day := range parsed.Days {
		dp := plan_models.DayPlan{Day: day.Day}
		for _, act := range day.Activities {
			dp.Activities = append(dp.Activities, plan_models.Activity{
				StartTime:     act.StartTime,
				EndTime:       act.EndTime,
				Location:      act.Location,
				Description:   act.Description,
				Categories:    act.Categories,
				EstimatedCost: act.EstimatedCost,
			})
		}
		it.Days = append(it.Days, dp)
	}
	return it
}

// Day slot template used when the model is unavailable and for balancing
// insertions. Start/end minutes since midnight.
var daySlots = [][2]int{
	{9 * 60, 11 * 60},
	{11*60 + 30, 13 * 60},
	{14 * 60, 16*60 + 30},
	{17 * 60, 19 * 60},
	{20 * 60, 22 * 60},
}

func slotsForPace(pace string) int {
	switch strings.ToLower(pace) {
	case "relaxed":
		return 3
	case "fast":
		return 5
	default:
		return 4
	}
}

// fallbackItinerary builds a deterministic plan: rotate through the group's
// interests slot by slot, taking the first unused candidate per interest.
func (p *PlannerService) fallbackItinerary(group plan_models.Group, trip TripContext, candidates []db_models.POI) plan_models.Itinerary {
	interests := group.DistinctInterests()
	if len(interests) == 0 {
		interests = []string{"sightseeing"}
	}
	slotCount := slotsForPace(trip.Pace)
	used := make(map[string]bool)

	it := plan_models.Itinerary{
		Destination: trip.Destination,
		StartDate:   utils.FormatDate(trip.StartDate),
	}

	rotation := 0
	for day := 1; day <= trip.Days; day++ {
		dp := plan_models.DayPlan{Day: day}
		for slot := 0; slot < slotCount && slot < len(daySlots); slot++ {
			interest := interests[rotation%len(interests)]
			rotation++

			act := p.activityForInterest(interest, trip.Destination, candidates, used, daySlots[slot])
			dp.Activities = append(dp.Activities, act)
		}
		it.Days = append(it.Days, dp)
	}
	return it
}

func (p *PlannerService) activityForInterest(interest string, destination string, candidates []db_models.POI, used map[string]bool, slot [2]int) plan_models.Activity {
	for _, poi := range candidates {
		if used[poi.Name] {
			continue
		}
		if !strings.EqualFold(poi.Category, interest) && !containsFold(poi.Tags, interest) {
			continue
		}
		used[poi.Name] = true
		return plan_models.Activity{
			StartTime:     utils.FormatClock(slot[0]),
			EndTime:       utils.FormatClock(slot[1]),
			Location:      poi.Name,
			Description:   fmt.Sprintf("Visit %s", poi.Name),
			Categories:    []string{strings.ToLower(interest)},
			EstimatedCost: poi.AvgCost,
		}
	}

	return plan_models.Activity{
		StartTime:   utils.FormatClock(slot[0]),
		EndTime:     utils.FormatClock(slot[1]),
		Location:    destination,
		Description: fmt.Sprintf("Explore %s (%s)", destination, interest),
		Categories:  []string{strings.ToLower(interest)},
	}
}

func containsFold(list []string, want string) bool {
	for _, s := range list {
		if strings.EqualFold(s, want) {
			return true
		}
	}
	return false
}

// normalize repairs whatever came out of generation so the itinerary
// invariants hold: day numbering and dates, clock parsing, start-time order,
// and non-overlap (later activities are shifted behind the previous one,
// dropped when the day runs out).
func (p *PlannerService) normalize(it *plan_models.Itinerary, group plan_models.Group, trip TripContext) {
	interests := group.DistinctInterests()

	if len(it.Days) > trip.Days {
		it.Days = it.Days[:trip.Days]
	}
	for len(it.Days) < trip.Days {
		it.Days = append(it.Days, plan_models.DayPlan{})
	}

	for i := range it.Days {
		day := &it.Days[i]
		day.Day = i + 1
		if !trip.StartDate.IsZero() {
			day.Date = utils.FormatDate(trip.StartDate.AddDate(0, 0, i))
		}

		for j := range day.Activities {
			act := &day.Activities[j]
			start := utils.ParseClockOr(act.StartTime, 9*60)
			end := utils.ParseClockOr(act.EndTime, start+90)
			if end <= start {
				end = start + 90
			}
			act.StartTime = utils.FormatClock(start)
			act.EndTime = utils.FormatClock(end)

			if len(interests) > 0 && !anyCategoryMatches(*act, interests) {
				act.Categories = append(act.Categories, interests[j%len(interests)])
			}
		}

		day.SortActivities()
		day.Activities = resolveOverlaps(day.Activities)
	}
}

func anyCategoryMatches(act plan_models.Activity, interests []string) bool {
	for _, interest := range interests {
		if act.MatchesCategory(interest) {
			return true
		}
	}
	return false
}

// resolveOverlaps shifts each activity to start no earlier than its
// predecessor's end, preserving duration; anything pushed past 23:59 is
// dropped.
func resolveOverlaps(acts []plan_models.Activity) []plan_models.Activity {
	const endOfDay = 24*60 - 1

	out := acts[:0]
	prevEnd := 0
	for _, act := range acts {
		start := act.StartMinutes()
		end := act.EndMinutes()
		duration := end - start

		if start < prevEnd {
			start = prevEnd
			end = start + duration
		}
		if end > endOfDay {
			continue
		}

		act.StartTime = utils.FormatClock(start)
		act.EndTime = utils.FormatClock(end)
		out = append(out, act)
		prevEnd = end
	}
	return out
}

// balance enforces the companion requirement: with two or more travelers,
// each day gets at least one activity per distinct group interest. Days with
// no free slot left are kept as-is, best effort.
func (p *PlannerService) balance(it *plan_models.Itinerary, group plan_models.Group, candidates []db_models.POI) {
	if len(group) < 2 {
		return
	}
	interests := group.DistinctInterests()
	if len(interests) < 2 {
		return
	}

	used := make(map[string]bool)
	for _, day := range it.Days {
		for _, act := range day.Activities {
			used[act.Location] = true
		}
	}

	for i := range it.Days {
		day := &it.Days[i]
		covered := day.CoveredInterests(interests)
		for _, interest := range interests {
			if covered[interest] {
				continue
			}
			slot, ok := freeSlot(day.Activities)
			if !ok {
				break
			}
			act := p.activityForInterest(interest, it.Destination, candidates, used, slot)
			day.Activities = append(day.Activities, act)
			day.SortActivities()
		}
	}
}

// freeSlot finds a 90-minute window after the last activity (or the morning
// when the day is empty), capped at 22:30.
func freeSlot(acts []plan_models.Activity) ([2]int, bool) {
	const latestEnd = 22*60 + 30

	start := 9 * 60
	if len(acts) > 0 {
		start = acts[len(acts)-1].EndMinutes() + 30
	}
	end := start + 90
	if end > latestEnd {
		return [2]int{}, false
	}
	return [2]int{start, end}, true
}
