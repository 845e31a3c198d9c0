package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"tripsmith/internal/models/plan_models"
	"tripsmith/pkg/search"
	"tripsmith/pkg/utils"
)

type ReviewerServiceInterface interface {
	// Review fact-checks every unchecked activity and returns the proposed
	// corrections plus the itinerary annotated with per-activity verification
	// status. The itinerary argument is never mutated.
	Review(ctx context.Context, itinerary plan_models.Itinerary) (plan_models.DeltaList, plan_models.Itinerary, error)
}

type ReviewerService struct {
	aiClient     utils.AIClientInterface
	searchClient search.Client
	maxResults   int
}

func NewReviewerService(aiClient utils.AIClientInterface, searchClient search.Client) ReviewerServiceInterface {
	return &ReviewerService{
		aiClient:     aiClient,
		searchClient: searchClient,
		maxResults:   3,
	}
}

const reviewerInstructions = `You are a travel plan reviewer. You are given one
scheduled activity and live web search snippets about the place. Decide whether
the activity as scheduled conflicts with the snippets (opening hours, prices,
availability, closures). Only report a conflict you can ground in the snippets;
when the snippets are unclear or off-topic, answer "ambiguous" rather than
guessing. Return JSON only:
{"status":"ok"|"conflict"|"ambiguous","problem":"...","remove":false,
 "fix":{"start_time":"HH:MM","end_time":"HH:MM","description":"..."}}
"problem" and "fix" are required for conflicts; "remove":true means the
activity cannot be salvaged (permanently closed).`

type reviewerVerdictJSON struct {
	Status  string `json:"status"`
	Problem string `json:"problem"`
	Remove  bool   `json:"remove"`
	Fix     *struct {
		StartTime   string `json:"start_time"`
		EndTime     string `json:"end_time"`
		Description string `json:"description"`
	} `json:"fix"`
}

func (r *ReviewerService) Review(ctx context.Context, itinerary plan_models.Itinerary) (plan_models.DeltaList, plan_models.Itinerary, error) {
	annotated := itinerary.Clone()
	var deltas plan_models.DeltaList

	for i := range annotated.Days {
		day := &annotated.Days[i]
		for j := range day.Activities {
			act := &day.Activities[j]
			if act.Verification == plan_models.StatusVerified || act.Verification == plan_models.StatusCorrected {
				continue
			}
			if err := ctx.Err(); err != nil {
				return plan_models.DeltaList{}, itinerary, err
			}

			query := fmt.Sprintf("%s %s opening hours price", act.Location, itinerary.Destination)
			results, err := r.searchClient.Search(ctx, query, r.maxResults)
			if err != nil || len(results) == 0 {
				if err != nil {
					if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
						return plan_models.DeltaList{}, itinerary, err
					}
					log.Printf("reviewer: lookup for %q failed: %v", act.Location, err)
				}
				act.Verification = plan_models.StatusUnverifiable
				continue
			}

			verdict, err := r.judge(ctx, *act, day.Day, results)
			if err != nil {
				log.Printf("reviewer: verdict for %q failed: %v", act.Location, err)
				act.Verification = plan_models.StatusUnverifiable
				continue
			}

			switch strings.ToLower(verdict.Status) {
			case "ok":
				act.Verification = plan_models.StatusVerified
			case "conflict":
				item := r.deltaFromVerdict(verdict, *act, day.Day, j+1)
				if item.Fix == nil && !item.Remove {
					// A conflict with no concrete fix is not actionable.
					act.Verification = plan_models.StatusUnverifiable
					continue
				}
				deltas.Items = append(deltas.Items, item)
			default: // ambiguous or anything unexpected: never fabricate a delta
				act.Verification = plan_models.StatusUnverifiable
			}
		}
	}

	return deltas, annotated, nil
}

func (r *ReviewerService) judge(ctx context.Context, act plan_models.Activity, day int, results []search.Result) (reviewerVerdictJSON, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity (day %d): %s at %s, %s-%s, categories %s.\n\n",
		day, act.Description, act.Location, act.StartTime, act.EndTime, strings.Join(act.Categories, ", "))
	b.WriteString("Search snippets:\n")
	for _, res := range results {
		fmt.Fprintf(&b, "- %s: %s\n", res.Title, res.Content)
	}

	raw, err := r.aiClient.GenerateJSON(ctx, reviewerInstructions, b.String())
	if err != nil {
		return reviewerVerdictJSON{}, err
	}

	var verdict reviewerVerdictJSON
	if err := json.Unmarshal([]byte(raw), &verdict); err != nil {
		return reviewerVerdictJSON{}, fmt.Errorf("parse verdict: %w", err)
	}
	return verdict, nil
}

func (r *ReviewerService) deltaFromVerdict(verdict reviewerVerdictJSON, act plan_models.Activity, day, position int) plan_models.DeltaItem {
	item := plan_models.DeltaItem{
		Day:      day,
		Position: position,
		Match:    act.Location,
		Problem:  verdict.Problem,
		Remove:   verdict.Remove,
	}
	if item.Problem == "" {
		item.Problem = "conflicts with current information"
	}

	if !verdict.Remove && verdict.Fix != nil {
		fix := act
		if verdict.Fix.StartTime != "" {
			start := utils.ParseClockOr(verdict.Fix.StartTime, fix.StartMinutes())
			duration := fix.EndMinutes() - fix.StartMinutes()
			fix.StartTime = utils.FormatClock(start)
			fix.EndTime = utils.FormatClock(start + duration)
		}
		if verdict.Fix.EndTime != "" {
			fix.EndTime = verdict.Fix.EndTime
		}
		if verdict.Fix.Description != "" {
			fix.Description = verdict.Fix.Description
		}
		fix.Verification = plan_models.StatusUnchecked
		item.Fix = &fix
	}
	return item
}
