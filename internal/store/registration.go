package store

import (
	"context"
	"fmt"

	"event-hub/internal/database"
	"event-hub/internal/model"
)

// CreateRegistration 以資料庫唯一性約束作為併發仲裁：
// 同一 (user, event) 重複報名回傳 ErrDuplicate，
// 使用者或活動不存在（外鍵違反）回傳 ErrNotFound。
func CreateRegistration(ctx context.Context, db database.DB, userID, eventID int) (*model.Registration, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO registrations (user_id, event_id)
		 VALUES ($1, $2)
		 RETURNING id, registered_at`,
		userID,
		eventID,
	)
	r := &model.Registration{UserID: userID, EventID: eventID}
	if err := row.Scan(&r.ID, &r.RegisteredAt); err != nil {
		return nil, fmt.Errorf("CreateRegistration: %w", translateError(err))
	}
	return r, nil
}

// DeleteRegistration 刪除一筆報名，查無該筆回傳 ErrNotFound（非冪等）。
func DeleteRegistration(ctx context.Context, db database.DB, userID, eventID int) error {
	tag, err := db.Exec(ctx,
		`DELETE FROM registrations WHERE user_id = $1 AND event_id = $2`,
		userID,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("DeleteRegistration: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteRegistration: %w", ErrNotFound)
	}
	return nil
}

// ListRegistrationsByEvent 依報名時間升冪回傳活動名冊，內嵌報名者摘要。
func ListRegistrationsByEvent(ctx context.Context, db database.DB, eventID int) ([]model.RosterEntry, error) {
	rows, err := db.Query(ctx,
		`SELECT r.id, r.registered_at, u.id, u.name, u.email
		 FROM registrations r
		 JOIN users u ON u.id = r.user_id
		 WHERE r.event_id = $1
		 ORDER BY r.registered_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRegistrationsByEvent: %w", err)
	}
	defer rows.Close()

	entries := []model.RosterEntry{}
	for rows.Next() {
		var e model.RosterEntry
		if err := rows.Scan(
			&e.ID,
			&e.RegisteredAt,
			&e.User.ID,
			&e.User.Name,
			&e.User.Email,
		); err != nil {
			return nil, fmt.Errorf("ListRegistrationsByEvent: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRegistrationsByEvent: %w", err)
	}
	return entries, nil
}

// ListRegistrationsByUser 回傳使用者的所有報名，內嵌活動資料，依活動日期升冪。
func ListRegistrationsByUser(ctx context.Context, db database.DB, userID int) ([]model.UserRegistration, error) {
	rows, err := db.Query(ctx,
		`SELECT r.id, r.registered_at,
		        e.id, e.name, e.description, e.event_date, e.location,
		        e.created_by_id, e.created_at, e.updated_at
		 FROM registrations r
		 JOIN events e ON e.id = r.event_id
		 WHERE r.user_id = $1
		 ORDER BY e.event_date ASC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("ListRegistrationsByUser: %w", err)
	}
	defer rows.Close()

	regs := []model.UserRegistration{}
	for rows.Next() {
		var r model.UserRegistration
		if err := rows.Scan(
			&r.ID,
			&r.RegisteredAt,
			&r.Event.ID,
			&r.Event.Name,
			&r.Event.Description,
			&r.Event.EventDate,
			&r.Event.Location,
			&r.Event.CreatedByID,
			&r.Event.CreatedAt,
			&r.Event.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("ListRegistrationsByUser: %w", err)
		}
		regs = append(regs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListRegistrationsByUser: %w", err)
	}
	return regs, nil
}

func CountRegistrationsByEvent(ctx context.Context, db database.DB, eventID int) (int, error) {
	row := db.QueryRow(ctx,
		`SELECT COUNT(*) FROM registrations WHERE event_id = $1`,
		eventID,
	)
	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("CountRegistrationsByEvent: %w", err)
	}
	return n, nil
}
