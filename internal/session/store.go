// Package session keeps the backend bearer token server-side. The browser
// only ever holds an opaque, HMAC-signed session id; the token itself lives
// in a small database table so a restart with the same store keeps users
// logged in.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/greentwin/aas-cockpit/internal/config"
)

// Session is one server-side session row.
type Session struct {
	ID        string `gorm:"primaryKey;size:36"`
	Token     string `gorm:"not null"`
	CreatedAt time.Time
	ExpiresAt time.Time `gorm:"index"`
}

// TTL is how long a session stays valid.
const TTL = 14 * 24 * time.Hour

// ErrNotFound is returned when a session id has no live row.
var ErrNotFound = errors.New("session not found")

// Store persists sessions in sqlite or postgres, selected by configuration.
type Store struct {
	db *gorm.DB
}

// Open connects the session store and applies migrations.
func Open(cfg config.SessionConfig) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown session driver %q", cfg.Driver)
	}
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("migrate session store: %w", err)
	}
	return &Store{db: db}, nil
}

// Create stores a token under a fresh session id and returns the id.
func (s *Store) Create(token string) (string, error) {
	sess := Session{
		ID:        uuid.NewString(),
		Token:     token,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(TTL),
	}
	if err := s.db.Create(&sess).Error; err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.ID, nil
}

// Token resolves a session id to its token. Expired sessions are deleted on
// the way out.
func (s *Store) Token(id string) (string, error) {
	var sess Session
	err := s.db.First(&sess, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("lookup session: %w", err)
	}
	if time.Now().After(sess.ExpiresAt) {
		s.db.Delete(&Session{}, "id = ?", id)
		return "", ErrNotFound
	}
	return sess.Token, nil
}

// Delete removes a session row. Deleting an unknown id is not an error.
func (s *Store) Delete(id string) error {
	return s.db.Delete(&Session{}, "id = ?", id).Error
}

// Prune removes expired sessions.
func (s *Store) Prune() error {
	return s.db.Delete(&Session{}, "expires_at < ?", time.Now()).Error
}
