package events

import (
	"errors"
	"net/http"
	"strconv"

	"event-hub/internal/api"
	"event-hub/internal/database"
	"event-hub/internal/service"

	"github.com/labstack/echo/v4"
)

var listRoster = service.ListRoster

// @Summary     List event registrations
// @Description 回傳活動名冊，依報名時間升冪，內嵌報名者摘要（僅限管理員）
// @Tags        events
// @Produce     json
// @Param       id path int true "活動 ID"
// @Success     200 {object} api.RosterResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     403 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /events/{id}/registrations [get]
func RosterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := identity(c)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid event ID"})
		}

		entries, err := listRoster(c.Request().Context(), db, *ident, id)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrForbidden):
				return c.JSON(http.StatusForbidden, api.ErrorResponse{Message: "only administrators can view registrations"})
			case errors.Is(err, service.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "event not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		return c.JSON(http.StatusOK, api.RosterResponse{Success: true, Registrations: entries})
	}
}
