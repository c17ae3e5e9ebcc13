// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"event-hub/internal/cache"
	"event-hub/internal/database"
	"event-hub/internal/handler"
	"event-hub/internal/handler/auth"
	"event-hub/internal/handler/events"
	"event-hub/internal/handler/registrations"
	"event-hub/internal/middleware"
	"event-hub/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, wp worker.Pool) {
	api := e.Group("/api")

	requireAuth := middleware.RequireAuth(rdb)
	requireAdmin := middleware.RequireAdmin(rdb)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), requireAuth)

	// 帳號與工作階段
	apiAuth := api.Group("/auth")
	apiAuth.POST("/register", auth.RegisterHandler(db))
	apiAuth.POST("/login", auth.LoginHandler(db, rdb))
	apiAuth.POST("/logout", auth.LogoutHandler(rdb), requireAuth)
	apiAuth.GET("/me", auth.MeHandler(db, rdb), requireAuth)

	// 活動：所有登入者可瀏覽，管理員可異動
	apiEvents := api.Group("/events")
	apiEvents.GET("", events.ListEventsHandler(db), requireAuth)
	apiEvents.POST("", events.CreateEventHandler(db, wp), requireAdmin)
	apiEvents.PUT("/:id", events.UpdateEventHandler(db, wp), requireAdmin)
	apiEvents.DELETE("/:id", events.DeleteEventHandler(db, wp), requireAdmin)
	apiEvents.GET("/:id/registrations", events.RosterHandler(db), requireAdmin)

	// 報名
	apiRegs := api.Group("/registrations", requireAuth)
	apiRegs.POST("", registrations.RegisterHandler(db, wp))
	apiRegs.DELETE("/:eventId", registrations.UnregisterHandler(db, wp))
	apiRegs.GET("/my-events", registrations.MyRegistrationsHandler(db))
}
