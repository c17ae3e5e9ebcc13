// File: internal/model/event.go
package model

import "time"

type Event struct {
	ID          int       `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	EventDate   time.Time `db:"event_date" json:"event_date"`
	Location    string    `db:"location" json:"location"`
	CreatedByID int       `db:"created_by_id" json:"created_by_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// EventWithCount 帶報名人數的活動列表項目
type EventWithCount struct {
	Event
	RegistrationCount int `json:"registration_count"`
}
