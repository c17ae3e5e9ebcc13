// File: internal/service/policy.go
package service

// Identity 是每次請求的已驗證身分，零值代表匿名。
type Identity struct {
	UserID  int
	IsAdmin bool
}

// Anonymous 回報此身分是否未登入。
func (id Identity) Anonymous() bool {
	return id.UserID == 0
}

// Action 列舉授權決策涵蓋的操作。
type Action int

const (
	ActionCreateEvent Action = iota
	ActionUpdateEvent
	ActionDeleteEvent
	ActionListEventRoster
	ActionRegister
	ActionUnregister
	ActionListOwnRegistrations
	ActionListEvents
)

// Decide 是純授權決策函式：依身分與操作回傳 nil（允許）、
// ErrForbidden（已登入但權限不足）或 ErrUnauthenticated（未登入）。
// 管理操作需要 IsAdmin，其餘操作僅需已登入身分。
func Decide(id Identity, action Action) error {
	switch action {
	case ActionCreateEvent, ActionUpdateEvent, ActionDeleteEvent, ActionListEventRoster:
		if id.Anonymous() {
			return ErrUnauthenticated
		}
		if !id.IsAdmin {
			return ErrForbidden
		}
		return nil
	case ActionRegister, ActionUnregister, ActionListOwnRegistrations, ActionListEvents:
		if id.Anonymous() {
			return ErrUnauthenticated
		}
		return nil
	}
	return ErrForbidden
}
