package events

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"event-hub/internal/database"
	"event-hub/internal/middleware"
	"event-hub/internal/model"
	"event-hub/internal/service"
	"event-hub/internal/store"
	"event-hub/internal/worker"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func restore() {
	createEvent = service.CreateEvent
	updateEvent = service.UpdateEvent
	deleteEvent = service.DeleteEvent
	listEvents = service.ListEvents
	listRoster = service.ListRoster
	insertAudit = store.InsertAuditEntry
}

// syncPool 立即在呼叫端執行任務，讓測試能同步觀察稽核寫入。
type syncPool struct {
	mu   sync.Mutex
	runs int
}

func (p *syncPool) Submit(t worker.Task) {
	p.mu.Lock()
	p.runs++
	p.mu.Unlock()
	t()
}

func (p *syncPool) Stop() {}

type errBinder struct{}

func (errBinder) Bind(i any, c echo.Context) error { return errors.New("bind") }

type okValidator struct{}

func (okValidator) Validate(i any) error { return nil }

func newEventCtx(e *echo.Echo, body string, ident *service.Identity) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	if ident != nil {
		ctx.Set(middleware.ContextUserKey, ident)
	}
	return ctx, rec
}

const eventBody = `{"name":"Go Conference","event_date":"2099-01-02T10:00:00Z","location":"Taipei"}`

func TestCreateEventHandler(t *testing.T) {
	admin := &service.Identity{UserID: 1, IsAdmin: true}

	t.Run("no identity", func(t *testing.T) {
		e := echo.New()
		ctx, rec := newEventCtx(e, eventBody, nil)
		require.NoError(t, CreateEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bind error", func(t *testing.T) {
		e := echo.New()
		e.Binder = errBinder{}
		ctx, rec := newEventCtx(e, "", admin)
		require.NoError(t, CreateEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		t.Cleanup(restore)
		createEvent = func(context.Context, database.DB, service.Identity, service.EventInput) (*model.Event, error) {
			return nil, fmt.Errorf("%w: event date must be in the future", service.ErrValidation)
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newEventCtx(e, eventBody, admin)
		require.NoError(t, CreateEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "future")
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Cleanup(restore)
		createEvent = func(context.Context, database.DB, service.Identity, service.EventInput) (*model.Event, error) {
			return nil, service.ErrForbidden
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newEventCtx(e, eventBody, &service.Identity{UserID: 2})
		require.NoError(t, CreateEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("success writes audit", func(t *testing.T) {
		t.Cleanup(restore)
		createEvent = func(context.Context, database.DB, service.Identity, service.EventInput) (*model.Event, error) {
			return &model.Event{ID: 7, Name: "Go Conference"}, nil
		}
		var auditAction, auditSubject string
		insertAudit = func(_ context.Context, _ database.DB, actorID int, action, subject string) error {
			require.Equal(t, 1, actorID)
			auditAction = action
			auditSubject = subject
			return nil
		}
		wp := &syncPool{}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newEventCtx(e, eventBody, admin)
		require.NoError(t, CreateEventHandler(&database.FakeDB{}, wp)(ctx))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Contains(t, rec.Body.String(), "event created")
		require.Equal(t, 1, wp.runs)
		require.Equal(t, "event.create", auditAction)
		require.Equal(t, "event:7", auditSubject)
	})
}

func TestUpdateEventHandler(t *testing.T) {
	admin := &service.Identity{UserID: 1, IsAdmin: true}

	t.Run("bad id", func(t *testing.T) {
		e := echo.New()
		ctx, rec := newEventCtx(e, eventBody, admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("abc")
		require.NoError(t, UpdateEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		updateEvent = func(context.Context, database.DB, service.Identity, int, service.EventInput) (*model.Event, error) {
			return nil, service.ErrNotFound
		}
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newEventCtx(e, eventBody, admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, UpdateEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		updateEvent = func(_ context.Context, _ database.DB, _ service.Identity, id int, _ service.EventInput) (*model.Event, error) {
			require.Equal(t, 7, id)
			return &model.Event{ID: 7, Name: "Go Conference"}, nil
		}
		insertAudit = func(context.Context, database.DB, int, string, string) error { return nil }
		e := echo.New()
		e.Validator = okValidator{}
		ctx, rec := newEventCtx(e, eventBody, admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, UpdateEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "event updated")
	})
}

func TestDeleteEventHandler(t *testing.T) {
	admin := &service.Identity{UserID: 1, IsAdmin: true}

	t.Run("forbidden", func(t *testing.T) {
		t.Cleanup(restore)
		deleteEvent = func(context.Context, database.DB, service.Identity, int) error {
			return service.ErrForbidden
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", &service.Identity{UserID: 2})
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, DeleteEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Cleanup(restore)
		deleteEvent = func(context.Context, database.DB, service.Identity, int) error {
			return service.ErrNotFound
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, DeleteEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		deleteEvent = func(_ context.Context, _ database.DB, _ service.Identity, id int) error {
			require.Equal(t, 7, id)
			return nil
		}
		var subject string
		insertAudit = func(_ context.Context, _ database.DB, _ int, _ string, s string) error {
			subject = s
			return nil
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, DeleteEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "event deleted")
		require.Equal(t, "event:7", subject)
	})

	t.Run("audit failure does not affect response", func(t *testing.T) {
		t.Cleanup(restore)
		deleteEvent = func(context.Context, database.DB, service.Identity, int) error { return nil }
		insertAudit = func(context.Context, database.DB, int, string, string) error {
			return errors.New("insert failed")
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, DeleteEventHandler(&database.FakeDB{}, &syncPool{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestListEventsHandler(t *testing.T) {
	t.Run("no identity", func(t *testing.T) {
		e := echo.New()
		ctx, rec := newEventCtx(e, "", nil)
		require.NoError(t, ListEventsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		listEvents = func(context.Context, database.DB, service.Identity) ([]model.EventWithCount, error) {
			return []model.EventWithCount{
				{Event: model.Event{ID: 7, Name: "Go Conference"}, RegistrationCount: 3},
			}, nil
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", &service.Identity{UserID: 2})
		require.NoError(t, ListEventsHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "registration_count")
	})
}

func TestRosterHandler(t *testing.T) {
	admin := &service.Identity{UserID: 1, IsAdmin: true}

	t.Run("bad id", func(t *testing.T) {
		e := echo.New()
		ctx, rec := newEventCtx(e, "", admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("abc")
		require.NoError(t, RosterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("forbidden", func(t *testing.T) {
		t.Cleanup(restore)
		listRoster = func(context.Context, database.DB, service.Identity, int) ([]model.RosterEntry, error) {
			return nil, service.ErrForbidden
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", &service.Identity{UserID: 2})
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, RosterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("event not found", func(t *testing.T) {
		t.Cleanup(restore)
		listRoster = func(context.Context, database.DB, service.Identity, int) ([]model.RosterEntry, error) {
			return nil, service.ErrNotFound
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, RosterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("success", func(t *testing.T) {
		t.Cleanup(restore)
		listRoster = func(_ context.Context, _ database.DB, _ service.Identity, id int) ([]model.RosterEntry, error) {
			require.Equal(t, 7, id)
			return []model.RosterEntry{{ID: 11, User: model.UserSummary{ID: 2, Name: "Alice", Email: "a@example.com"}}}, nil
		}
		e := echo.New()
		ctx, rec := newEventCtx(e, "", admin)
		ctx.SetParamNames("id")
		ctx.SetParamValues("7")
		require.NoError(t, RosterHandler(&database.FakeDB{})(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), "a@example.com")
	})
}
