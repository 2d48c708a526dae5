// Package testutil has in-memory repositories for handler and service tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	database "readingroom_backend/internals/databases"
	authModel "readingroom_backend/internals/features/users/auth/model"
	userModel "readingroom_backend/internals/features/users/user/model"
)

type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]*userModel.UserModel
}

func NewMemoryUsers(seed ...*userModel.UserModel) *MemoryUsers {
	m := &MemoryUsers{users: map[string]*userModel.UserModel{}}
	for _, u := range seed {
		m.users[u.ID] = u
	}
	return m
}

func (m *MemoryUsers) find(match func(*userModel.UserModel) bool) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *MemoryUsers) Create(_ context.Context, u *userModel.UserModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email || existing.UserName == u.UserName {
			return database.ErrDuplicate
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MemoryUsers) FindByID(_ context.Context, id string) (*userModel.UserModel, error) {
	return m.find(func(u *userModel.UserModel) bool { return u.ID == id })
}

func (m *MemoryUsers) FindByIdentifier(_ context.Context, identifier string) (*userModel.UserModel, error) {
	return m.find(func(u *userModel.UserModel) bool { return u.Email == identifier || u.UserName == identifier })
}

func (m *MemoryUsers) FindByEmail(_ context.Context, email string) (*userModel.UserModel, error) {
	return m.find(func(u *userModel.UserModel) bool { return u.Email == email })
}

func (m *MemoryUsers) FindByGoogleID(_ context.Context, googleID string) (*userModel.UserModel, error) {
	return m.find(func(u *userModel.UserModel) bool { return u.GoogleID != nil && *u.GoogleID == googleID })
}

func (m *MemoryUsers) Update(_ context.Context, id string, patch bson.M) (*userModel.UserModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	for k, v := range patch {
		switch k {
		case "user_name":
			u.UserName = v.(string)
		case "full_name":
			u.FullName = v.(string)
		case "phone":
			u.Phone = v.(string)
		case "password":
			u.Password = v.(string)
		case "google_id":
			s := v.(string)
			u.GoogleID = &s
		case "is_active":
			u.IsActive = v.(bool)
		case "updated_at":
			u.UpdatedAt = v.(time.Time)
		}
	}
	cp := *u
	return &cp, nil
}

type MemoryTokens struct {
	mu        sync.Mutex
	Blacklist map[string]time.Time
	Refresh   map[string]*authModel.RefreshTokenModel
}

func NewMemoryTokens() *MemoryTokens {
	return &MemoryTokens{
		Blacklist: map[string]time.Time{},
		Refresh:   map[string]*authModel.RefreshTokenModel{},
	}
}

func (m *MemoryTokens) BlacklistToken(_ context.Context, token string, expiredAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.Blacklist[token]; !ok {
		m.Blacklist[token] = expiredAt
	}
	return nil
}

func (m *MemoryTokens) IsBlacklisted(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Blacklist[token]
	return ok, nil
}

func (m *MemoryTokens) CleanupExpiredBlacklist(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for tok, exp := range m.Blacklist {
		if exp.Before(before) {
			delete(m.Blacklist, tok)
			n++
		}
	}
	return n, nil
}

func (m *MemoryTokens) CreateRefreshToken(_ context.Context, rt *authModel.RefreshTokenModel) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *rt
	m.Refresh[rt.TokenHash] = &cp
	return nil
}

func (m *MemoryTokens) ConsumeRefreshToken(_ context.Context, hash string, now time.Time) (*authModel.RefreshTokenModel, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rt, ok := m.Refresh[hash]
	if !ok || !rt.ExpiresAt.After(now) {
		return nil, database.ErrNotFound
	}
	delete(m.Refresh, hash)
	return rt, nil
}

func (m *MemoryTokens) DeleteRefreshToken(_ context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Refresh, hash)
	return nil
}
