package request_models

type CreatePOIRequest struct {
	Name         string   `json:"name" binding:"required"`
	Destination  string   `json:"destination" binding:"required"`
	Description  string   `json:"description"`
	Category     string   `json:"category" binding:"required"`
	OpeningHours string   `json:"opening_hours"`
	AvgCost      float64  `json:"avg_cost"`
	Tags         []string `json:"tags"`
}
