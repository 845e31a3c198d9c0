package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tripsmith/internal/models/db_models"
)

type TripRepository interface {
	CreateWithChildren(ctx context.Context, trip *db_models.Trip) error
	GetTripById(ctx context.Context, tripId string) (*db_models.Trip, error)
	ListTripsByUserId(ctx context.Context, page int, pageSize int, userId string) ([]db_models.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{
		db: db,
	}
}

// CreateWithChildren persists a finished orchestrator run in one transaction:
// the trip row plus every revision and delta record hanging off it.
func (t *tripRepository) CreateWithChildren(ctx context.Context, trip *db_models.Trip) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(trip).Error
	})
}

func (t *tripRepository) GetTripById(ctx context.Context, tripId string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := t.db.WithContext(ctx).
		Preload("Revisions", func(db *gorm.DB) *gorm.DB {
			return db.Order("version ASC")
		}).
		Preload("Deltas", func(db *gorm.DB) *gorm.DB {
			return db.Order("version ASC, created_at ASC")
		}).
		First(&trip, "id = ?", tripId).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (t *tripRepository) ListTripsByUserId(ctx context.Context, page, pageSize int, userId string) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := t.db.WithContext(ctx).
		Where("user_id = ?", userId).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}
