package api

import "event-hub/internal/model"

// swagger:model api.EventResponse
type EventResponse struct {
	Success bool        `json:"success" example:"true"`
	Message string      `json:"message,omitempty"`
	Event   model.Event `json:"event"`
}

// swagger:model api.EventsResponse
type EventsResponse struct {
	Success bool                   `json:"success" example:"true"`
	Events  []model.EventWithCount `json:"events"`
}
