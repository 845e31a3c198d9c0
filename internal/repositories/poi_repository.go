package repositories

import (
	"context"
	"errors"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"tripsmith/internal/models/db_models"
)

type POIRepository interface {
	Upsert(ctx context.Context, poi *db_models.POI) error
	FindById(ctx context.Context, id string) (*db_models.POI, error)
	ListByDestination(ctx context.Context, destination string, limit int) ([]db_models.POI, error)
	ListByVector(ctx context.Context, destination string, vector pgvector.Vector, limit int) ([]db_models.POI, error)
}

type poiRepository struct {
	db *gorm.DB
}

func NewPOIRepository(db *gorm.DB) POIRepository {
	return &poiRepository{
		db: db,
	}
}

func (p *poiRepository) Upsert(ctx context.Context, poi *db_models.POI) error {
	var existing db_models.POI
	err := p.db.WithContext(ctx).
		Where("destination = ? AND name = ?", poi.Destination, poi.Name).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return p.db.WithContext(ctx).Create(poi).Error
		}
		return err
	}

	poi.ID = existing.ID
	poi.CreatedAt = existing.CreatedAt
	return p.db.WithContext(ctx).Save(poi).Error
}

func (p *poiRepository) FindById(ctx context.Context, id string) (*db_models.POI, error) {
	var poi db_models.POI
	err := p.db.WithContext(ctx).First(&poi, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poi, nil
}

func (p *poiRepository) ListByDestination(ctx context.Context, destination string, limit int) ([]db_models.POI, error) {
	if limit <= 0 {
		limit = 50
	}
	var pois []db_models.POI
	err := p.db.WithContext(ctx).
		Where("destination ILIKE ?", destination).
		Limit(limit).
		Find(&pois).Error
	if err != nil {
		return nil, err
	}
	return pois, nil
}

func (p *poiRepository) ListByVector(ctx context.Context, destination string, vector pgvector.Vector, limit int) ([]db_models.POI, error) {
	if limit <= 0 {
		limit = 15
	}
	var results []db_models.POI

	query := `
        SELECT *
        FROM pois
        WHERE destination ILIKE $1 AND deleted_at IS NULL
        ORDER BY embedding <=> $2
        LIMIT $3
    `
	err := p.db.WithContext(ctx).Raw(query, destination, vector.String(), limit).Scan(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
