package request_models

type TravelerInput struct {
	Name      string   `json:"name" binding:"required"`
	Role      string   `json:"role"` // primary | companion, defaults to companion
	Interests []string `json:"interests"`
}

type PlanTripRequest struct {
	Title         string          `json:"title"`
	Destination   string          `json:"destination" binding:"required"`
	StartDate     string          `json:"start_date"` // 2006-01-02
	Days          int             `json:"days" binding:"required,min=1,max=30"`
	Budget        float64         `json:"budget"`
	Pace          string          `json:"pace"` // relaxed | moderate | fast
	Travelers     []TravelerInput `json:"travelers" binding:"required,min=1"`
	MaxIterations *int            `json:"max_iterations"`
}
