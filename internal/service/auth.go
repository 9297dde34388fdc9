package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Skotchmaster/inventory/internal/events"
	"github.com/Skotchmaster/inventory/internal/hash"
	"github.com/Skotchmaster/inventory/internal/logging"
	"github.com/Skotchmaster/inventory/internal/models"
	"github.com/Skotchmaster/inventory/internal/repo"
	"github.com/Skotchmaster/inventory/internal/tokens"
	"github.com/Skotchmaster/inventory/internal/transport"
)

type AuthService struct {
	Repo             *repo.GormRepo
	Tokens           *tokens.Issuer
	Events           events.Publisher
	AllowAdminSignup bool
}

func (h *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" || email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: nome, email and senha are required", ErrValidation)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if !models.ValidRole(role) {
		return nil, fmt.Errorf("%w: role must be admin or user", ErrValidation)
	}
	if role == models.RoleAdmin && !h.AllowAdminSignup {
		l.Warn("register_error", "status", 403, "reason", "admin self-signup disabled", "email", email)
		return nil, fmt.Errorf("%w: admin self-signup is disabled", ErrForbidden)
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{Name: name, Email: email, PasswordHash: pwHash, Role: role}
	if err := h.Repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	h.publish(ctx, "user_registered", user)
	return user, nil
}

func (h *AuthService) Login(ctx context.Context, email, password string) (*transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and senha are required", ErrValidation)
	}

	user, err := h.Repo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password", "user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	token, exp, err := h.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &transport.LoginResult{
		User:      transport.LoginUser{ID: user.ID, Name: user.Name, Role: user.Role},
		Token:     token,
		ExpiresAt: exp,
	}, nil
}

func (h *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return h.Repo.ListUsers(ctx)
}

// EnsureAdmin creates an admin account for email unless one already exists.
// It reports whether a user was created.
func (h *AuthService) EnsureAdmin(ctx context.Context, name, email, password string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	_, err := h.Repo.FindUserByEmail(ctx, email)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return false, fmt.Errorf("find admin: %w", err)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	if name == "" {
		name = email
	}

	user := &models.User{Name: name, Email: email, PasswordHash: pwHash, Role: models.RoleAdmin}
	if err := h.Repo.CreateUser(ctx, user); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}

	h.publish(ctx, "admin_seeded", user)
	return true, nil
}

func (h *AuthService) publish(ctx context.Context, typ string, u *models.User) {
	if h.Events == nil {
		return
	}
	ev := events.UserEvent{Type: typ, UserID: u.ID, Email: u.Email, Role: u.Role, At: time.Now().UTC()}
	if err := h.Events.PublishEvent(ctx, events.TopicUsers, strconv.FormatUint(uint64(u.ID), 10), ev); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed", "topic", events.TopicUsers, "key", u.ID, "error", err)
	}
}
