package store

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound 查無資料
	ErrNotFound = errors.New("not found")
	// ErrDuplicate 唯一性約束衝突
	ErrDuplicate = errors.New("duplicate")
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translateError 將 pgx 層錯誤轉為 store 的 sentinel error。
// 唯一性衝突 → ErrDuplicate；外鍵不存在、查無列 → ErrNotFound。
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return ErrDuplicate
		case pgForeignKeyViolation:
			return ErrNotFound
		}
	}
	return err
}
