// File: internal/service/session.go
package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"event-hub/internal/cache"
	"event-hub/internal/model"
)

// SessionTTL 是固定自發行起算的工作階段存活時間（不滑動展延）。
const SessionTTL = 8 * time.Hour

const sessionKeyPrefix = "session:"

var (
	randRead      = rand.Read
	jsonMarshal   = json.Marshal
	jsonUnmarshal = json.Unmarshal
	timeNow       = time.Now
)

// sessionData 是綁定在伺服器端的工作階段負載。
type sessionData struct {
	UserID   int       `json:"user_id"`
	IsAdmin  bool      `json:"is_admin"`
	IssuedAt time.Time `json:"issued_at"`
}

// CreateSession 產生不透明隨機 token，並以 SessionTTL 將
// {user_id, is_admin, issued_at} 存入 Redis。同一使用者可同時持有多個 session。
func CreateSession(ctx context.Context, c cache.Cache, user model.User) (string, error) {
	buf := make([]byte, 32)
	if _, err := randRead(buf); err != nil {
		return "", fmt.Errorf("CreateSession: %w", err)
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	data, err := jsonMarshal(sessionData{
		UserID:   user.ID,
		IsAdmin:  user.IsAdmin,
		IssuedAt: timeNow(),
	})
	if err != nil {
		return "", fmt.Errorf("CreateSession: %w", err)
	}

	if err := c.Set(ctx, sessionKeyPrefix+token, data, SessionTTL).Err(); err != nil {
		return "", fmt.Errorf("CreateSession: %w", err)
	}
	return token, nil
}

// ResolveSession 以 token 取回身分；token 不存在或已過期回傳 ErrUnauthenticated。
func ResolveSession(ctx context.Context, c cache.Cache, token string) (*Identity, error) {
	raw, err := c.Get(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return nil, ErrUnauthenticated
	}
	var data sessionData
	if err := jsonUnmarshal([]byte(raw), &data); err != nil {
		return nil, ErrUnauthenticated
	}
	return &Identity{UserID: data.UserID, IsAdmin: data.IsAdmin}, nil
}

// DestroySession 立即失效指定 token，其後的 ResolveSession 一律失敗。
func DestroySession(ctx context.Context, c cache.Cache, token string) error {
	if err := c.Del(ctx, sessionKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("DestroySession: %w", err)
	}
	return nil
}
