package db_models

import (
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

// POI is one entry of the local attraction knowledge base the planner draws
// candidates from.
type POI struct {
	BaseModel
	Name         string
	Destination  string `gorm:"index"`
	Description  string
	Category     string
	OpeningHours string
	AvgCost      float64
	Tags         pq.StringArray  `gorm:"type:text[]"`
	Embedding    pgvector.Vector `gorm:"type:vector(1536)"`
}
