// File: internal/service/registration.go
package service

import (
	"context"

	"event-hub/internal/database"
	"event-hub/internal/model"
	"event-hub/internal/store"
)

var (
	createRegistration = store.CreateRegistration
	deleteRegistration = store.DeleteRegistration
	listRegsByUser     = store.ListRegistrationsByUser
)

// RegisterSelf 為呼叫者本人報名活動。不先查重：
// 資料庫唯一性約束是併發下的唯一仲裁，重複報名回傳 ErrConflict，
// 活動不存在回傳 ErrNotFound。
func RegisterSelf(ctx context.Context, db database.DB, id Identity, eventID int) (*model.Registration, error) {
	if err := Decide(id, ActionRegister); err != nil {
		return nil, err
	}
	r, err := createRegistration(ctx, db, id.UserID, eventID)
	if err != nil {
		return nil, fromStore(err)
	}
	return r, nil
}

// UnregisterSelf 取消呼叫者本人的報名，查無該筆回傳 ErrNotFound（非冪等）。
func UnregisterSelf(ctx context.Context, db database.DB, id Identity, eventID int) error {
	if err := Decide(id, ActionUnregister); err != nil {
		return err
	}
	if err := deleteRegistration(ctx, db, id.UserID, eventID); err != nil {
		return fromStore(err)
	}
	return nil
}

// MyRegistrations 列出呼叫者的所有報名，依活動日期升冪。
func MyRegistrations(ctx context.Context, db database.DB, id Identity) ([]model.UserRegistration, error) {
	if err := Decide(id, ActionListOwnRegistrations); err != nil {
		return nil, err
	}
	regs, err := listRegsByUser(ctx, db, id.UserID)
	if err != nil {
		return nil, fromStore(err)
	}
	return regs, nil
}
