package services

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"tripsmith/internal/models/db_models"
	"tripsmith/internal/models/plan_models"
	"tripsmith/pkg/search"
)

type fakeAIClient struct {
	generateFn func(ctx context.Context, instructions, prompt string) (string, error)
	embedFn    func(ctx context.Context, text string) (pgvector.Vector, error)
}

func (f *fakeAIClient) GenerateJSON(ctx context.Context, instructions, prompt string) (string, error) {
	if f.generateFn == nil {
		return "{}", nil
	}
	return f.generateFn(ctx, instructions, prompt)
}

func (f *fakeAIClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	if f.embedFn == nil {
		return pgvector.NewVector(make([]float32, 4)), nil
	}
	return f.embedFn(ctx, text)
}

type fakePOIRepo struct {
	pois []db_models.POI
	err  error
}

func (f *fakePOIRepo) Upsert(ctx context.Context, poi *db_models.POI) error { return f.err }

func (f *fakePOIRepo) FindById(ctx context.Context, id string) (*db_models.POI, error) {
	return nil, f.err
}

func (f *fakePOIRepo) ListByDestination(ctx context.Context, destination string, limit int) ([]db_models.POI, error) {
	return f.pois, f.err
}

func (f *fakePOIRepo) ListByVector(ctx context.Context, destination string, vector pgvector.Vector, limit int) ([]db_models.POI, error) {
	return f.pois, f.err
}

type fakeSearchClient struct {
	fn func(ctx context.Context, query string, maxResults int) ([]search.Result, error)
}

func (f *fakeSearchClient) Search(ctx context.Context, query string, maxResults int) ([]search.Result, error) {
	return f.fn(ctx, query, maxResults)
}

type fakePlanner struct {
	itinerary plan_models.Itinerary
	err       error
}

func (f *fakePlanner) BuildItinerary(ctx context.Context, group plan_models.Group, trip TripContext) (plan_models.Itinerary, error) {
	return f.itinerary, f.err
}

type fakeReviewer struct {
	fn func(ctx context.Context, itinerary plan_models.Itinerary) (plan_models.DeltaList, plan_models.Itinerary, error)
}

func (f *fakeReviewer) Review(ctx context.Context, itinerary plan_models.Itinerary) (plan_models.DeltaList, plan_models.Itinerary, error) {
	return f.fn(ctx, itinerary)
}
