package events

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"event-hub/internal/api"
	"event-hub/internal/database"
	"event-hub/internal/middleware"
	"event-hub/internal/service"
	"event-hub/internal/store"
	"event-hub/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	createEvent = service.CreateEvent
	updateEvent = service.UpdateEvent
	deleteEvent = service.DeleteEvent
	listEvents  = service.ListEvents
	insertAudit = store.InsertAuditEntry
)

func identity(c echo.Context) (*service.Identity, bool) {
	ident, ok := c.Get(middleware.ContextUserKey).(*service.Identity)
	return ident, ok
}

// audit 在回應送出後由 worker pool 非同步寫入稽核記錄，
// 不得阻塞請求路徑，失敗僅記錄。
func audit(wp worker.Pool, db database.DB, actorID int, action, subject string) {
	wp.Submit(func() {
		if err := insertAudit(context.Background(), db, actorID, action, subject); err != nil {
			log.Printf("audit write failed: %v", err)
		}
	})
}

func eventInput(req api.EventRequest) service.EventInput {
	return service.EventInput{
		Name:        req.Name,
		Description: req.Description,
		EventDate:   req.EventDate,
		Location:    req.Location,
	}
}

// @Summary     Create an event
// @Description 建立活動（僅限管理員），活動日期必須為未來時間
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       request body api.EventRequest true "活動資料"
// @Success     201 {object} api.EventResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /events [post]
func CreateEventHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		var req api.EventRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		ev, err := createEvent(c.Request().Context(), db, *ident, eventInput(req))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrValidation):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			case errors.Is(err, service.ErrForbidden):
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "only administrators can create events"})
			case errors.Is(err, service.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		audit(wp, db, ident.UserID, "event.create", fmt.Sprintf("event:%d", ev.ID))
		return c.JSON(http.StatusCreated, api.EventResponse{
			Success: true,
			Message: "event created",
			Event:   *ev,
		})
	}
}

// @Summary     Update an event
// @Description 完整取代活動的名稱、描述、日期與地點（僅限管理員）
// @Tags        events
// @Accept      json
// @Produce     json
// @Param       id path int true "活動 ID"
// @Param       request body api.EventRequest true "活動資料"
// @Success     200 {object} api.EventResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /events/{id} [put]
func UpdateEventHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid event ID"})
		}

		var req api.EventRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		ev, err := updateEvent(c.Request().Context(), db, *ident, id, eventInput(req))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrValidation):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			case errors.Is(err, service.ErrForbidden):
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "only administrators can update events"})
			case errors.Is(err, service.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "event not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		audit(wp, db, ident.UserID, "event.update", fmt.Sprintf("event:%d", ev.ID))
		return c.JSON(http.StatusOK, api.EventResponse{
			Success: true,
			Message: "event updated",
			Event:   *ev,
		})
	}
}

// @Summary     Delete an event
// @Description 刪除活動並於同一交易內連帶刪除其所有報名（僅限管理員）
// @Tags        events
// @Produce     json
// @Param       id path int true "活動 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /events/{id} [delete]
func DeleteEventHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid event ID"})
		}

		if err := deleteEvent(c.Request().Context(), db, *ident, id); err != nil {
			switch {
			case errors.Is(err, service.ErrForbidden):
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "only administrators can delete events"})
			case errors.Is(err, service.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "event not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		audit(wp, db, ident.UserID, "event.delete", fmt.Sprintf("event:%d", id))
		return c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "event deleted"})
	}
}

// @Summary     List events
// @Description 依活動日期升冪列出所有活動，附帶各自的報名人數
// @Tags        events
// @Produce     json
// @Success     200 {object} api.EventsResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /events [get]
func ListEventsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		events, err := listEvents(c.Request().Context(), db, *ident)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		return c.JSON(http.StatusOK, api.EventsResponse{Success: true, Events: events})
	}
}
