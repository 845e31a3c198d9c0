package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"tripsmith/internal/models/db_models"
	"tripsmith/internal/models/plan_models"
	"tripsmith/internal/models/request_models"
	"tripsmith/internal/models/response_models"
	"tripsmith/internal/repositories"
	"tripsmith/pkg/utils"
)

type TripServiceInterface interface {
	PlanTrip(ctx context.Context, userId string, req request_models.PlanTripRequest) (*response_models.PlanRunResponse, error)
	GetTripDetail(ctx context.Context, userId string, tripId string) (*response_models.TripDetailResponse, error)
	ListTrips(ctx context.Context, userId string, page int, pageSize int) ([]response_models.TripResponse, error)
}

type TripService struct {
	orchestrator  OrchestratorServiceInterface
	tripRepo      repositories.TripRepository
	maxIterations int
}

func NewTripService(orchestrator OrchestratorServiceInterface, tripRepo repositories.TripRepository, maxIterations int) TripServiceInterface {
	if maxIterations < 0 {
		maxIterations = 3
	}
	return &TripService{
		orchestrator:  orchestrator,
		tripRepo:      tripRepo,
		maxIterations: maxIterations,
	}
}

func (t *TripService) PlanTrip(ctx context.Context, userId string, req request_models.PlanTripRequest) (*response_models.PlanRunResponse, error) {
	userUUID, err := uuid.Parse(userId)
	if err != nil {
		return nil, utils.ErrInvalidInput
	}
	if req.Destination == "" || req.Days < 1 || len(req.Travelers) == 0 {
		return nil, utils.ErrInvalidInput
	}

	group := buildGroup(req.Travelers)
	trip := TripContext{
		Destination: req.Destination,
		Days:        req.Days,
		Budget:      req.Budget,
		Pace:        req.Pace,
	}
	if req.StartDate != "" {
		start, err := utils.ParseDate(req.StartDate)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		trip.StartDate = start
	}

	maxIterations := t.maxIterations
	if req.MaxIterations != nil && *req.MaxIterations >= 0 && *req.MaxIterations <= 10 {
		maxIterations = *req.MaxIterations
	}

	startTime := time.Now()
	run, err := t.orchestrator.Run(ctx, group, trip, maxIterations)
	if err != nil {
		return nil, err
	}
	log.Printf("trip: orchestrator finished in %s, state=%s iterations=%d", time.Since(startTime), run.State, run.Iterations)

	record, err := t.buildRecord(userUUID, req, run)
	if err != nil {
		return nil, err
	}
	if err := t.tripRepo.CreateWithChildren(ctx, record); err != nil {
		log.Printf("trip: persisting run failed: %v", err)
		return nil, utils.ErrDatabaseError
	}

	return &response_models.PlanRunResponse{
		TripID:      record.ID.String(),
		State:       string(run.State),
		Iterations:  run.Iterations,
		Itinerary:   run.Itinerary,
		DeltaLines:  renderHistory(run),
		Outstanding: renderOutstanding(run),
	}, nil
}

func buildGroup(travelers []request_models.TravelerInput) plan_models.Group {
	group := make(plan_models.Group, 0, len(travelers))
	for i, in := range travelers {
		role := plan_models.TravelerRole(in.Role)
		if role != plan_models.RolePrimary && role != plan_models.RoleCompanion {
			role = plan_models.RoleCompanion
			if i == 0 {
				role = plan_models.RolePrimary
			}
		}
		group = append(group, plan_models.TravelerProfile{
			ID:        uuid.New().String(),
			Name:      in.Name,
			Role:      role,
			Interests: in.Interests,
		})
	}
	return group
}

func (t *TripService) buildRecord(userUUID uuid.UUID, req request_models.PlanTripRequest, run *RunResult) (*db_models.Trip, error) {
	title := req.Title
	if title == "" {
		title = fmt.Sprintf("%d-day trip to %s", req.Days, req.Destination)
	}

	record := &db_models.Trip{
		UserID:      userUUID,
		Title:       title,
		Destination: req.Destination,
		DayCount:    req.Days,
		State:       string(run.State),
		Iterations:  run.Iterations,
	}
	if req.StartDate != "" {
		if start, err := utils.ParseDate(req.StartDate); err == nil {
			record.StartDate = start.Unix()
		}
	}

	for _, revision := range run.Revisions {
		payload, err := json.Marshal(revision)
		if err != nil {
			return nil, utils.ErrInvalidInput
		}
		record.Revisions = append(record.Revisions, db_models.TripRevision{
			Version:   revision.Version,
			Itinerary: string(payload),
		})
	}

	for _, trace := range run.History {
		reviewed := trace.Reviewed
		appendDeltaRecords(record, &reviewed, trace.Report.Applied, "applied")
		appendDeltaRecords(record, &reviewed, trace.Report.Deferred, "deferred")
		appendDeltaRecords(record, &reviewed, trace.Report.Unresolvable, "unresolvable")
	}
	return record, nil
}

func appendDeltaRecords(record *db_models.Trip, reviewed *plan_models.Itinerary, items []plan_models.DeltaItem, status string) {
	for _, item := range items {
		record.Deltas = append(record.Deltas, db_models.DeltaRecord{
			Version: reviewed.Version,
			Line:    item.Render(reviewed),
			Problem: item.Problem,
			Status:  status,
		})
	}
}

func renderHistory(run *RunResult) []string {
	var lines []string
	for _, trace := range run.History {
		reviewed := trace.Reviewed
		lines = append(lines, trace.Deltas.RenderLines(&reviewed)...)
	}
	return lines
}

func renderOutstanding(run *RunResult) []string {
	itinerary := run.Itinerary
	lines := make([]string, 0, len(run.Outstanding))
	for _, item := range run.Outstanding {
		lines = append(lines, item.Render(&itinerary))
	}
	return lines
}

func (t *TripService) GetTripDetail(ctx context.Context, userId string, tripId string) (*response_models.TripDetailResponse, error) {
	trip, err := t.tripRepo.GetTripById(ctx, tripId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil || trip.UserID.String() != userId {
		return nil, utils.ErrTripNotFound
	}

	detail := &response_models.TripDetailResponse{
		TripResponse: tripResponseFromModel(trip),
		Iterations:   trip.Iterations,
	}

	for _, revision := range trip.Revisions {
		var itinerary plan_models.Itinerary
		if err := json.Unmarshal([]byte(revision.Itinerary), &itinerary); err != nil {
			log.Printf("trip: corrupt revision %d of trip %s: %v", revision.Version, trip.ID, err)
			continue
		}
		detail.Revisions = append(detail.Revisions, response_models.RevisionResponse{
			Version:   revision.Version,
			Itinerary: itinerary,
		})
	}

	for _, delta := range trip.Deltas {
		detail.Deltas = append(detail.Deltas, response_models.DeltaLineResponse{
			Version: delta.Version,
			Line:    delta.Line,
			Status:  delta.Status,
		})
	}
	return detail, nil
}

func (t *TripService) ListTrips(ctx context.Context, userId string, page, pageSize int) ([]response_models.TripResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 || pageSize > 100 {
		return nil, utils.ErrInvalidPageSize
	}

	trips, err := t.tripRepo.ListTripsByUserId(ctx, page, pageSize, userId)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, tripResponseFromModel(&trips[i]))
	}
	return out, nil
}

func tripResponseFromModel(trip *db_models.Trip) response_models.TripResponse {
	startDate := ""
	if trip.StartDate > 0 {
		startDate = utils.FormatDate(time.Unix(trip.StartDate, 0).UTC())
	}
	return response_models.TripResponse{
		ID:          trip.ID.String(),
		Title:       trip.Title,
		Destination: trip.Destination,
		StartDate:   startDate,
		Days:        trip.DayCount,
		State:       trip.State,
	}
}
