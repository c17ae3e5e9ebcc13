// File: internal/service/errors.go
package service

import (
	"errors"

	"event-hub/internal/store"
)

// 服務層錯誤分類，handler 依此對應 HTTP 狀態碼。
var (
	ErrValidation      = errors.New("validation failed")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
)

// fromStore 將 store 層 sentinel error 轉為服務層分類，
// 其餘錯誤原樣傳遞（handler 視為 internal error）。
func fromStore(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrDuplicate):
		return ErrConflict
	}
	return err
}
