// File: internal/service/registration_test.go
package service

import (
	"context"
	"sync"
	"testing"

	"event-hub/internal/database"
	"event-hub/internal/model"
	"event-hub/internal/store"

	"github.com/stretchr/testify/require"
)

func TestRegisterSelf(t *testing.T) {
	member := Identity{UserID: 2}

	t.Run("anonymous", func(t *testing.T) {
		_, err := RegisterSelf(context.Background(), &database.FakeDB{}, Identity{}, 7)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("duplicate maps to conflict", func(t *testing.T) {
		t.Cleanup(restoreStores)
		createRegistration = func(context.Context, database.DB, int, int) (*model.Registration, error) {
			return nil, store.ErrDuplicate
		}
		_, err := RegisterSelf(context.Background(), &database.FakeDB{}, member, 7)
		require.ErrorIs(t, err, ErrConflict)
	})

	t.Run("missing event maps to not found", func(t *testing.T) {
		t.Cleanup(restoreStores)
		createRegistration = func(context.Context, database.DB, int, int) (*model.Registration, error) {
			return nil, store.ErrNotFound
		}
		_, err := RegisterSelf(context.Background(), &database.FakeDB{}, member, 404)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("success uses caller identity", func(t *testing.T) {
		t.Cleanup(restoreStores)
		createRegistration = func(_ context.Context, _ database.DB, userID, eventID int) (*model.Registration, error) {
			require.Equal(t, 2, userID)
			require.Equal(t, 7, eventID)
			return &model.Registration{ID: 31, UserID: userID, EventID: eventID}, nil
		}
		r, err := RegisterSelf(context.Background(), &database.FakeDB{}, member, 7)
		require.NoError(t, err)
		require.Equal(t, 31, r.ID)
	})
}

func TestUnregisterSelf(t *testing.T) {
	member := Identity{UserID: 2}

	t.Run("anonymous", func(t *testing.T) {
		err := UnregisterSelf(context.Background(), &database.FakeDB{}, Identity{}, 7)
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("no registration", func(t *testing.T) {
		t.Cleanup(restoreStores)
		deleteRegistration = func(context.Context, database.DB, int, int) error {
			return store.ErrNotFound
		}
		err := UnregisterSelf(context.Background(), &database.FakeDB{}, member, 7)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restoreStores)
		deleteRegistration = func(_ context.Context, _ database.DB, userID, eventID int) error {
			require.Equal(t, 2, userID)
			require.Equal(t, 7, eventID)
			return nil
		}
		require.NoError(t, UnregisterSelf(context.Background(), &database.FakeDB{}, member, 7))
	})
}

// TestRegisterCycle 驗證報名、取消、再報名可以反覆進行。
func TestRegisterCycle(t *testing.T) {
	t.Cleanup(restoreStores)
	member := Identity{UserID: 2}

	var mu sync.Mutex
	registered := map[[2]int]bool{}
	nextID := 0
	createRegistration = func(_ context.Context, _ database.DB, userID, eventID int) (*model.Registration, error) {
		mu.Lock()
		defer mu.Unlock()
		key := [2]int{userID, eventID}
		if registered[key] {
			return nil, store.ErrDuplicate
		}
		registered[key] = true
		nextID++
		return &model.Registration{ID: nextID, UserID: userID, EventID: eventID}, nil
	}
	deleteRegistration = func(_ context.Context, _ database.DB, userID, eventID int) error {
		mu.Lock()
		defer mu.Unlock()
		key := [2]int{userID, eventID}
		if !registered[key] {
			return store.ErrNotFound
		}
		delete(registered, key)
		return nil
	}

	db := &database.FakeDB{}
	_, err := RegisterSelf(context.Background(), db, member, 7)
	require.NoError(t, err)

	_, err = RegisterSelf(context.Background(), db, member, 7)
	require.ErrorIs(t, err, ErrConflict)

	require.NoError(t, UnregisterSelf(context.Background(), db, member, 7))
	require.ErrorIs(t, UnregisterSelf(context.Background(), db, member, 7), ErrNotFound)

	_, err = RegisterSelf(context.Background(), db, member, 7)
	require.NoError(t, err)
}

// TestRegisterSelfConcurrent 模擬同一人對同一活動同時送出多筆報名，
// 唯一性仲裁下恰有一筆成功，其餘都是 ErrConflict。
func TestRegisterSelfConcurrent(t *testing.T) {
	t.Cleanup(restoreStores)

	var mu sync.Mutex
	taken := map[[2]int]bool{}
	createRegistration = func(_ context.Context, _ database.DB, userID, eventID int) (*model.Registration, error) {
		mu.Lock()
		defer mu.Unlock()
		key := [2]int{userID, eventID}
		if taken[key] {
			return nil, store.ErrDuplicate
		}
		taken[key] = true
		return &model.Registration{ID: 1, UserID: userID, EventID: eventID}, nil
	}

	const n = 50
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := RegisterSelf(context.Background(), &database.FakeDB{}, Identity{UserID: 2}, 7)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflict int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		default:
			require.ErrorIs(t, err, ErrConflict)
			conflict++
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, n-1, conflict)
}

func TestMyRegistrations(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		_, err := MyRegistrations(context.Background(), &database.FakeDB{}, Identity{})
		require.ErrorIs(t, err, ErrUnauthenticated)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restoreStores)
		listRegsByUser = func(_ context.Context, _ database.DB, userID int) ([]model.UserRegistration, error) {
			require.Equal(t, 2, userID)
			return []model.UserRegistration{{ID: 31, Event: model.Event{ID: 7}}}, nil
		}
		regs, err := MyRegistrations(context.Background(), &database.FakeDB{}, Identity{UserID: 2})
		require.NoError(t, err)
		require.Len(t, regs, 1)
		require.Equal(t, 7, regs[0].Event.ID)
	})
}
