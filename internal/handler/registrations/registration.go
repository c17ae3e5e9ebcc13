package registrations

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
	registerSelf    = service.RegisterSelf
	unregisterSelf  = service.UnregisterSelf
	myRegistrations = service.MyRegistrations
	insertAudit     = store.InsertAuditEntry
)

func identity(c echo.Context) (*service.Identity, bool) {
	ident, ok := c.Get(middleware.ContextUserKey).(*service.Identity)
	return ident, ok
}

func audit(wp worker.Pool, db database.DB, actorID int, action, subject string) {
	wp.Submit(func() {
		if err := insertAudit(context.Background(), db, actorID, action, subject); err != nil {
			log.Printf("audit write failed: %v", err)
		}
	})
}

// @Summary     Register for an event
// @Description 為當前使用者報名活動；重複報名回傳 400，活動不存在回傳 404
// @Tags        registrations
// @Accept      json
// @Produce     json
// @Param       request body api.RegistrationRequest true "活動 ID"
// @Success     201 {object} api.RegistrationResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /registrations [post]
func RegisterHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		var req api.RegistrationRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		reg, err := registerSelf(c.Request().Context(), db, *ident, req.EventID)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrConflict):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "you are already registered for this event"})
			case errors.Is(err, service.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "event not found"})
			case errors.Is(err, service.ErrUnauthenticated):
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		audit(wp, db, ident.UserID, "registration.create", fmt.Sprintf("event:%d", req.EventID))
		return c.JSON(http.StatusCreated, api.RegistrationResponse{
			Success:      true,
			Message:      "registration successful",
			Registration: *reg,
		})
	}
}

// @Summary     Unregister from an event
// @Description 取消當前使用者的報名；查無報名回傳 404（非冪等）
// @Tags        registrations
// @Produce     json
// @Param       eventId path int true "活動 ID"
// @Success     200 {object} api.MessageResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /registrations/{eventId} [delete]
func UnregisterHandler(db database.DB, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		eventID, err := strconv.Atoi(c.Param("eventId"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid event ID"})
		}

		if err := unregisterSelf(c.Request().Context(), db, *ident, eventID); err != nil {
			switch {
			case errors.Is(err, service.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "registration not found"})
			case errors.Is(err, service.ErrUnauthenticated):
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		audit(wp, db, ident.UserID, "registration.delete", fmt.Sprintf("event:%d", eventID))
		return c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "registration cancelled"})
	}
}

// @Summary     List my registrations
// @Description 列出當前使用者的所有報名，內嵌活動資料，依活動日期升冪
// @Tags        registrations
// @Produce     json
// @Success     200 {object} api.MyRegistrationsResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /registrations/my-events [get]
func MyRegistrationsHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		regs, err := myRegistrations(c.Request().Context(), db, *ident)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		return c.JSON(http.StatusOK, api.MyRegistrationsResponse{Success: true, Registrations: regs})
	}
}
