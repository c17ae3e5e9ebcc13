package api

// swagger:model api.RegisterAccountRequest
type RegisterAccountRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255" example:"Alice"`
	Email    string `json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `json:"password" validate:"required,min=6" example:"Secret123!"`
}
