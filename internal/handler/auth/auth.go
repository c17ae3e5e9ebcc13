package auth

import (
	"errors"
	"net/http"

	"event-hub/internal/api"
	"event-hub/internal/cache"
	"event-hub/internal/database"
	"event-hub/internal/middleware"
	"event-hub/internal/model"
	"event-hub/internal/service"
	"event-hub/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword     = service.HashPassword
	authenticateUser = service.AuthenticateUser
	createSession    = service.CreateSession
	destroySession   = service.DestroySession
	createUser       = store.CreateUser
	getUserByEmail   = store.GetUserByEmail
	getUserByID      = store.GetUserByID
)

func toUserResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func sessionCookie(token string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// @Summary     Register a new account
// @Description 建立新帳號，Email 重複回傳 400
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.RegisterAccountRequest true "帳號資料"
// @Success     201 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/register [post]
func RegisterHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.RegisterAccountRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        req.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already registered"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		return c.JSON(http.StatusCreated, api.AuthResponse{
			Success: true,
			Message: "account created",
			User:    toUserResponse(user),
		})
	}
}

// @Summary     Log in
// @Description 以 Email 與密碼登入，成功時設置 HttpOnly session cookie（8 小時固定效期）
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body api.LoginRequest true "登入資料"
// @Success     200 {object} api.AuthResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/login [post]
func LoginHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request payload"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}
		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, err := createSession(c.Request().Context(), rdb, *user)
		if err != nil {
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}
		c.SetCookie(sessionCookie(token, int(service.SessionTTL.Seconds())))

		return c.JSON(http.StatusOK, api.AuthResponse{
			Success: true,
			Message: "login successful",
			User:    toUserResponse(user),
		})
	}
}

// @Summary     Log out
// @Description 銷毀當前 session，token 立即失效並清除 cookie
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.MessageResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/logout [post]
func LogoutHandler(rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ck, err := c.Cookie(middleware.SessionCookieName)
		if err == nil && ck.Value != "" {
			if err := destroySession(c.Request().Context(), rdb, ck.Value); err != nil {
				c.Logger().Error(err)
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
			}
		}
		c.SetCookie(sessionCookie("", -1))
		return c.JSON(http.StatusOK, api.MessageResponse{Success: true, Message: "logout successful"})
	}
}

// @Summary     Get current user
// @Description 回傳當前登入使用者；使用者已不存在時銷毀 session 並回傳 401
// @Tags        auth
// @Produce     json
// @Success     200 {object} api.AuthResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /auth/me [get]
func MeHandler(db database.DB, rdb cache.Cache) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident, ok := c.Get(middleware.ContextUserKey).(*service.Identity)
		if !ok {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "authentication required"})
		}

		user, err := getUserByID(c.Request().Context(), db, ident.UserID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// session 指向已消失的使用者，立即作廢
				if ck, cerr := c.Cookie(middleware.SessionCookieName); cerr == nil {
					_ = destroySession(c.Request().Context(), rdb, ck.Value)
				}
				c.SetCookie(sessionCookie("", -1))
				return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "user not found"})
			}
			c.Logger().Error(err)
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "internal server error"})
		}

		return c.JSON(http.StatusOK, api.AuthResponse{Success: true, User: toUserResponse(user)})
	}
}
