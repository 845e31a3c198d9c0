package services

import (
	"context"
	"errors"
	"log"

	"tripsmith/internal/models/plan_models"
)

type RunState string

const (
	StatePlanning      RunState = "PLANNING"
	StateReviewing     RunState = "REVIEWING"
	StateApplying      RunState = "APPLYING"
	StateDone          RunState = "DONE"
	StateMaxIterations RunState = "MAX_ITERATIONS_REACHED"
)

// IterationTrace records one review/apply cycle: the itinerary version the
// reviewer saw, what it proposed, and what happened to each proposal.
type IterationTrace struct {
	Iteration int
	Reviewed  plan_models.Itinerary
	Deltas    plan_models.DeltaList
	Report    plan_models.ApplyReport
}

type RunResult struct {
	Itinerary   plan_models.Itinerary
	State       RunState
	Iterations  int
	Outstanding []plan_models.DeltaItem
	Revisions   []plan_models.Itinerary
	History     []IterationTrace
}

type OrchestratorServiceInterface interface {
	Run(ctx context.Context, group plan_models.Group, trip TripContext, maxIterations int) (*RunResult, error)
}

// OrchestratorService drives the planner/reviewer/applier pipeline. Each
// itinerary version is an immutable value: the reviewer always observes a
// fully-formed itinerary and the applier always writes a fresh one.
type OrchestratorService struct {
	planner  PlannerServiceInterface
	reviewer ReviewerServiceInterface
	applier  DeltaApplierInterface
}

func NewOrchestratorService(
	planner PlannerServiceInterface,
	reviewer ReviewerServiceInterface,
	applier DeltaApplierInterface,
) OrchestratorServiceInterface {
	return &OrchestratorService{
		planner:  planner,
		reviewer: reviewer,
		applier:  applier,
	}
}

func (o *OrchestratorService) Run(ctx context.Context, group plan_models.Group, trip TripContext, maxIterations int) (*RunResult, error) {
	itinerary, err := o.planner.BuildItinerary(ctx, group, trip)
	if err != nil {
		return nil, err
	}

	result := &RunResult{
		Itinerary: itinerary,
		State:     StateMaxIterations,
		Revisions: []plan_models.Itinerary{itinerary},
	}
	if maxIterations <= 0 {
		// Budget of zero: hand back the planner output untouched.
		return result, nil
	}

	for i := 0; i < maxIterations; i++ {
		deltas, reviewed, err := o.reviewer.Review(ctx, itinerary)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			// A review pass that failed outright counts as "nothing to fix".
			log.Printf("orchestrator: review pass %d failed, treating as empty delta list: %v", i+1, err)
			deltas = plan_models.DeltaList{}
			reviewed = itinerary
		}

		result.Iterations = i + 1
		itinerary = reviewed
		result.Itinerary = itinerary

		if deltas.Empty() {
			result.State = StateDone
			return result, nil
		}

		applied, report := o.applier.Apply(itinerary, deltas)
		result.History = append(result.History, IterationTrace{
			Iteration: i + 1,
			Reviewed:  itinerary,
			Deltas:    deltas,
			Report:    report,
		})
		result.Outstanding = report.Outstanding()

		itinerary = applied
		result.Itinerary = itinerary
		result.Revisions = append(result.Revisions, itinerary)
	}

	return result, nil
}
