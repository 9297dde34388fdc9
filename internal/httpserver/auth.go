package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/service"
	"github.com/Skotchmaster/inventory/internal/transport"
)

const registeredMessage = "Usuário registrado com sucesso!"

type AuthHTTP struct {
	Svc *service.AuthService
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("register_failed", "status", 400, "reason", "invalid fields", "error", err)
			return echo.NewHTTPError(http.StatusBadRequest, "nome, email and senha are required; role must be admin or user")
		case errors.Is(err, service.ErrForbidden):
			l.Warn("register_failed", "status", 403, "reason", "admin self-signup disabled")
			return echo.NewHTTPError(http.StatusForbidden, "admin registration is disabled")
		default:
			l.Error("register_failed", "status", 500, "reason", "cannot create user", "error", err)
			return storageError("cannot register user", err)
		}
	}

	l.Info("register_success", "user_id", user.ID, "role", user.Role)
	return c.String(http.StatusCreated, registeredMessage)
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_failed", "status", 400, "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	res, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			l.Warn("login_failed", "status", 400, "reason", "missing credentials")
			return echo.NewHTTPError(http.StatusBadRequest, "email and senha are required")
		case errors.Is(err, service.ErrInvalidCredentials):
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid email or password")
		default:
			l.Error("login_failed", "status", 500, "reason", "cannot log in", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "cannot log in").SetInternal(err)
		}
	}

	l.Info("login_success", "user_id", res.User.ID)
	return c.JSON(http.StatusOK, transport.LoginResponse{User: res.User, Token: res.Token})
}

func (h *AuthHTTP) ListUsers(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.list_users")

	users, err := h.Svc.ListUsers(ctx)
	if err != nil {
		l.Error("list_users_failed", "status", 500, "reason", "cannot list users", "error", err)
		return storageError("cannot list users", err)
	}
	return c.JSON(http.StatusOK, users)
}
