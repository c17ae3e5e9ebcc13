package api

import "event-hub/internal/model"

// swagger:model api.RegistrationResponse
type RegistrationResponse struct {
	Success      bool               `json:"success" example:"true"`
	Message      string             `json:"message,omitempty"`
	Registration model.Registration `json:"registration"`
}

// swagger:model api.RosterResponse
type RosterResponse struct {
	Success       bool                `json:"success" example:"true"`
	Registrations []model.RosterEntry `json:"registrations"`
}

// swagger:model api.MyRegistrationsResponse
type MyRegistrationsResponse struct {
	Success       bool                     `json:"success" example:"true"`
	Registrations []model.UserRegistration `json:"registrations"`
}
