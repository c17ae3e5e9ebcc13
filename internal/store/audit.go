package store

import (
	"context"
	"fmt"

	"event-hub/internal/database"
)

// InsertAuditEntry 寫入一筆稽核記錄，由 worker pool 在回應後非同步呼叫。
func InsertAuditEntry(ctx context.Context, db database.DB, actorID int, action, subject string) error {
	_, err := db.Exec(ctx,
		`INSERT INTO audit_log (actor_id, action, subject)
		 VALUES ($1, $2, $3)`,
		actorID,
		action,
		subject,
	)
	if err != nil {
		return fmt.Errorf("InsertAuditEntry: %w", err)
	}
	return nil
}
