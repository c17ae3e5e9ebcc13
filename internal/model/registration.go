// File: internal/model/registration.go
package model

import "time"

type Registration struct {
	ID           int       `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	EventID      int       `db:"event_id" json:"event_id"`
	RegisteredAt time.Time `db:"registered_at" json:"registered_at"`
}

// RosterEntry 活動名冊的一筆報名，內嵌報名者摘要（不含密碼雜湊）
type RosterEntry struct {
	ID           int         `json:"id"`
	RegisteredAt time.Time   `json:"registered_at"`
	User         UserSummary `json:"user"`
}

// UserSummary 跨服務邊界的使用者摘要
type UserSummary struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UserRegistration 使用者已報名活動的一筆記錄，內嵌活動資料
type UserRegistration struct {
	ID           int       `json:"id"`
	RegisteredAt time.Time `json:"registered_at"`
	Event        Event     `json:"event"`
}
