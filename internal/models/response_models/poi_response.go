package response_models

type POIResponse struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Destination  string   `json:"destination"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	OpeningHours string   `json:"opening_hours,omitempty"`
	AvgCost      float64  `json:"avg_cost,omitempty"`
	Tags         []string `json:"tags,omitempty"`
}
