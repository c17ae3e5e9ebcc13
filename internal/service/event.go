// File: internal/service/event.go
package service

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"event-hub/internal/database"
	"event-hub/internal/model"
	"event-hub/internal/store"
)

var (
	getUserByID  = store.GetUserByID
	getEventByID = store.GetEventByID
	createEvent  = store.CreateEvent
	updateEvent  = store.UpdateEvent
	deleteEvent  = store.DeleteEvent
	listEvents   = store.ListEvents
	listRoster   = store.ListRegistrationsByEvent
)

// EventInput 是建立與更新活動共用的輸入，更新為完整取代語意。
type EventInput struct {
	Name        string
	Description *string
	EventDate   time.Time
	Location    string
}

func validateEventInput(in EventInput) error {
	if n := utf8.RuneCountInString(in.Name); n < 2 || n > 255 {
		return fmt.Errorf("%w: name must be between 2 and 255 characters", ErrValidation)
	}
	if n := utf8.RuneCountInString(in.Location); n < 2 || n > 255 {
		return fmt.Errorf("%w: location must be between 2 and 255 characters", ErrValidation)
	}
	if !in.EventDate.After(timeNow()) {
		return fmt.Errorf("%w: event date must be in the future", ErrValidation)
	}
	return nil
}

// CreateEvent 驗證輸入並以呼叫者為建立者保存活動（僅限管理員）。
func CreateEvent(ctx context.Context, db database.DB, id Identity, in EventInput) (*model.Event, error) {
	if err := Decide(id, ActionCreateEvent); err != nil {
		return nil, err
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}
	creator, err := getUserByID(ctx, db, id.UserID)
	if err != nil {
		return nil, fromStore(err)
	}
	ev, err := createEvent(ctx, db, &model.Event{
		Name:        in.Name,
		Description: in.Description,
		EventDate:   in.EventDate,
		Location:    in.Location,
		CreatedByID: creator.ID,
	})
	if err != nil {
		return nil, fromStore(err)
	}
	return ev, nil
}

// UpdateEvent 以完整取代方式更新四個可變欄位（僅限管理員）。
func UpdateEvent(ctx context.Context, db database.DB, id Identity, eventID int, in EventInput) (*model.Event, error) {
	if err := Decide(id, ActionUpdateEvent); err != nil {
		return nil, err
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}
	ev := &model.Event{
		ID:          eventID,
		Name:        in.Name,
		Description: in.Description,
		EventDate:   in.EventDate,
		Location:    in.Location,
	}
	if err := updateEvent(ctx, db, ev); err != nil {
		return nil, fromStore(err)
	}
	return ev, nil
}

// DeleteEvent 刪除活動並連帶清除其所有報名（僅限管理員）。
func DeleteEvent(ctx context.Context, db database.DB, id Identity, eventID int) error {
	if err := Decide(id, ActionDeleteEvent); err != nil {
		return err
	}
	if err := deleteEvent(ctx, db, eventID); err != nil {
		return fromStore(err)
	}
	return nil
}

// ListEvents 回傳所有活動（帶報名人數），依活動日期升冪。
func ListEvents(ctx context.Context, db database.DB, id Identity) ([]model.EventWithCount, error) {
	if err := Decide(id, ActionListEvents); err != nil {
		return nil, err
	}
	events, err := listEvents(ctx, db)
	if err != nil {
		return nil, fromStore(err)
	}
	return events, nil
}

// ListRoster 回傳活動名冊（僅限管理員），活動不存在回傳 ErrNotFound。
func ListRoster(ctx context.Context, db database.DB, id Identity, eventID int) ([]model.RosterEntry, error) {
	if err := Decide(id, ActionListEventRoster); err != nil {
		return nil, err
	}
	if _, err := getEventByID(ctx, db, eventID); err != nil {
		return nil, fromStore(err)
	}
	entries, err := listRoster(ctx, db, eventID)
	if err != nil {
		return nil, fromStore(err)
	}
	return entries, nil
}
