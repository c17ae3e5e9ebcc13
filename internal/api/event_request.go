package api

import "time"

// EventRequest 建立與更新活動共用；更新為完整取代，缺欄位視為驗證錯誤。
// swagger:model api.EventRequest
type EventRequest struct {
	Name        string    `json:"name" validate:"required,min=2,max=255" example:"Launch"`
	Description *string   `json:"description,omitempty" example:"Product launch party"`
	EventDate   time.Time `json:"event_date" validate:"required" example:"2026-12-01T18:00:00Z"`
	Location    string    `json:"location" validate:"required,min=2,max=255" example:"HQ"`
}
