// Package prefs stores per-user display preferences in Redis so they
// survive restarts and follow the user across sessions.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/clinexa/backoffice/internal/model"
)

// Store reads and writes display preferences.
type Store interface {
	Theme(ctx context.Context, userID string) (string, error)
	SetTheme(ctx context.Context, userID, theme string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedis builds a Redis-backed preference store from a redis URL.
func NewRedis(url string) (Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &redisStore{client: redis.NewClient(opts)}, nil
}

func themeKey(userID string) string { return "prefs:theme:" + userID }

func (s *redisStore) Theme(ctx context.Context, userID string) (string, error) {
	val, err := s.client.Get(ctx, themeKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return model.ThemeLight, nil
	}
	if err != nil {
		return "", fmt.Errorf("get theme: %w", err)
	}
	return val, nil
}

func (s *redisStore) SetTheme(ctx context.Context, userID, theme string) error {
	if theme != model.ThemeLight && theme != model.ThemeDark {
		return fmt.Errorf("invalid theme: %s", theme)
	}
	if err := s.client.Set(ctx, themeKey(userID), theme, 0).Err(); err != nil {
		return fmt.Errorf("set theme: %w", err)
	}
	return nil
}

// Memory is an in-process fallback used in development and tests.
type Memory struct {
	mu     sync.RWMutex
	themes map[string]string
}

func NewMemory() *Memory {
	return &Memory{themes: make(map[string]string)}
}

func (m *Memory) Theme(_ context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.themes[userID]; ok {
		return t, nil
	}
	return model.ThemeLight, nil
}

func (m *Memory) SetTheme(_ context.Context, userID, theme string) error {
	if theme != model.ThemeLight && theme != model.ThemeDark {
		return fmt.Errorf("invalid theme: %s", theme)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.themes[userID] = theme
	return nil
}
