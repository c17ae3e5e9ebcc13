package store

import (
	"context"
	"fmt"

	"event-hub/internal/database"
	"event-hub/internal/model"
)

func GetEventByID(ctx context.Context, db database.DB, eventID int) (*model.Event, error) {
	row := db.QueryRow(ctx,
		`SELECT id, name, description, event_date, location, created_by_id, created_at, updated_at
		 FROM events WHERE id = $1`,
		eventID,
	)
	ev := &model.Event{}
	if err := row.Scan(
		&ev.ID,
		&ev.Name,
		&ev.Description,
		&ev.EventDate,
		&ev.Location,
		&ev.CreatedByID,
		&ev.CreatedAt,
		&ev.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("GetEventByID: %w", translateError(err))
	}
	return ev, nil
}

func CreateEvent(ctx context.Context, db database.DB, ev *model.Event) (*model.Event, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO events (name, description, event_date, location, created_by_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		ev.Name,
		ev.Description,
		ev.EventDate,
		ev.Location,
		ev.CreatedByID,
	)
	if err := row.Scan(&ev.ID, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		return nil, fmt.Errorf("CreateEvent: %w", translateError(err))
	}
	return ev, nil
}

// UpdateEvent 以完整取代方式更新四個可變欄位，查無該活動回傳 ErrNotFound。
func UpdateEvent(ctx context.Context, db database.DB, ev *model.Event) error {
	row := db.QueryRow(ctx,
		`UPDATE events
		 SET name = $1, description = $2, event_date = $3, location = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING created_by_id, created_at, updated_at`,
		ev.Name,
		ev.Description,
		ev.EventDate,
		ev.Location,
		ev.ID,
	)
	if err := row.Scan(&ev.CreatedByID, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		return fmt.Errorf("UpdateEvent: %w", translateError(err))
	}
	return nil
}

// DeleteEvent 在同一交易內先刪除該活動的所有報名，再刪除活動本身。
// 查無該活動回傳 ErrNotFound。
func DeleteEvent(ctx context.Context, db database.DB, eventID int) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("DeleteEvent: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM registrations WHERE event_id = $1`,
		eventID,
	); err != nil {
		return fmt.Errorf("DeleteEvent: %w", translateError(err))
	}

	tag, err := tx.Exec(ctx,
		`DELETE FROM events WHERE id = $1`,
		eventID,
	)
	if err != nil {
		return fmt.Errorf("DeleteEvent: %w", translateError(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("DeleteEvent: %w", ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("DeleteEvent: %w", err)
	}
	return nil
}

// ListEvents 依活動日期升冪回傳所有活動，並帶上各自的報名人數。
func ListEvents(ctx context.Context, db database.DB) ([]model.EventWithCount, error) {
	rows, err := db.Query(ctx,
		`SELECT e.id, e.name, e.description, e.event_date, e.location,
		        e.created_by_id, e.created_at, e.updated_at,
		        COUNT(r.id) AS registration_count
		 FROM events e
		 LEFT JOIN registrations r ON r.event_id = e.id
		 GROUP BY e.id
		 ORDER BY e.event_date ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	defer rows.Close()

	events := []model.EventWithCount{}
	for rows.Next() {
		var ev model.EventWithCount
		if err := rows.Scan(
			&ev.ID,
			&ev.Name,
			&ev.Description,
			&ev.EventDate,
			&ev.Location,
			&ev.CreatedByID,
			&ev.CreatedAt,
			&ev.UpdatedAt,
			&ev.RegistrationCount,
		); err != nil {
			return nil, fmt.Errorf("ListEvents: %w", err)
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListEvents: %w", err)
	}
	return events, nil
}
