package api

// swagger:model api.ErrorResponse
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Message string `json:"message" example:"event not found"`
}
