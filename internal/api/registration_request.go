package api

// swagger:model api.RegistrationRequest
type RegistrationRequest struct {
	EventID int `json:"eventId" validate:"required" example:"1"`
}
