package client

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// AuthContext holds the signed-in user and token, mirrored in Storage.
type AuthContext struct {
	mu      sync.RWMutex
	api     *Client
	storage Storage
	user    *User
	token   string
}

// NewAuthContext restores a session only when both token and user are stored.
func NewAuthContext(api *Client, storage Storage) *AuthContext {
	a := &AuthContext{api: api, storage: storage}

	token, okToken := storage.Get(KeyToken)
	raw, okUser := storage.Get(KeyUser)
	if okToken && okUser && token != "" {
		var u User
		if err := json.Unmarshal([]byte(raw), &u); err == nil {
			a.user = &u
			a.token = token
		}
	}
	return a
}

func (a *AuthContext) Login(ctx context.Context, email, password string) (*User, error) {
	resp, err := a.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(resp.User)
	if err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.storage.Set(KeyUser, string(raw)); err != nil {
		return nil, err
	}
	if resp.Token != "" {
		err = a.storage.Set(KeyToken, resp.Token)
	} else {
		err = a.storage.Remove(KeyToken)
	}
	if err != nil {
		return nil, err
	}

	u := resp.User
	a.user = &u
	a.token = resp.Token
	return &u, nil
}

func (a *AuthContext) Register(ctx context.Context, name, email, password, role string) error {
	_, err := a.api.Register(ctx, RegisterRequest{Name: name, Email: email, Password: password, Role: role})
	return err
}

func (a *AuthContext) Logout() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.user = nil
	a.token = ""
	return errors.Join(a.storage.Remove(KeyToken), a.storage.Remove(KeyUser))
}

func (a *AuthContext) User() *User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.user == nil {
		return nil
	}
	u := *a.user
	return &u
}

func (a *AuthContext) Token() string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.token
}

func (a *AuthContext) IsAuthenticated() bool {
	return a.User() != nil
}

func (a *AuthContext) IsAdmin() bool {
	u := a.User()
	return u != nil && u.Role == RoleAdmin
}
