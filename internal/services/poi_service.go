package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"tripsmith/internal/models/db_models"
	"tripsmith/internal/models/request_models"
	"tripsmith/internal/models/response_models"
	"tripsmith/internal/repositories"
	"tripsmith/pkg/utils"
)

type POIServiceInterface interface {
	CreatePOI(ctx context.Context, req request_models.CreatePOIRequest) (*response_models.POIResponse, error)
	ListByDestination(ctx context.Context, destination string) ([]response_models.POIResponse, error)
}

type POIService struct {
	poiRepo  repositories.POIRepository
	aiClient utils.AIClientInterface
}

func NewPOIService(poiRepo repositories.POIRepository, aiClient utils.AIClientInterface) POIServiceInterface {
	return &POIService{
		poiRepo:  poiRepo,
		aiClient: aiClient,
	}
}

func (p *POIService) CreatePOI(ctx context.Context, req request_models.CreatePOIRequest) (*response_models.POIResponse, error) {
	if req.Name == "" || req.Destination == "" {
		return nil, utils.ErrInvalidInput
	}

	embedText := fmt.Sprintf("%s %s %s %s", req.Name, req.Category, req.Description, strings.Join(req.Tags, " "))
	vector, err := p.aiClient.GetEmbedding(ctx, embedText)
	if err != nil {
		return nil, utils.ErrUnexpectedBehaviorOfAI
	}

	poi := &db_models.POI{
		Name:         req.Name,
		Destination:  req.Destination,
		Description:  req.Description,
		Category:     req.Category,
		OpeningHours: req.OpeningHours,
		AvgCost:      req.AvgCost,
		Tags:         pq.StringArray(req.Tags),
		Embedding:    vector,
	}
	if err := p.poiRepo.Upsert(ctx, poi); err != nil {
		return nil, utils.ErrDatabaseError
	}

	resp := poiResponseFromModel(poi)
	return &resp, nil
}

func (p *POIService) ListByDestination(ctx context.Context, destination string) ([]response_models.POIResponse, error) {
	if destination == "" {
		return nil, utils.ErrInvalidInput
	}

	pois, err := p.poiRepo.ListByDestination(ctx, destination, 100)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.POIResponse, 0, len(pois))
	for i := range pois {
		out = append(out, poiResponseFromModel(&pois[i]))
	}
	return out, nil
}

func poiResponseFromModel(poi *db_models.POI) response_models.POIResponse {
	return response_models.POIResponse{
		ID:           poi.ID.String(),
		Name:         poi.Name,
		Destination:  poi.Destination,
		Description:  poi.Description,
		Category:     poi.Category,
		OpeningHours: poi.OpeningHours,
		AvgCost:      poi.AvgCost,
		Tags:         []string(poi.Tags),
	}
}
