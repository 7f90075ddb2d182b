package session

import (
	"context"
	"errors"
	"time"

	"github.com/keystonecrm/planner/pkg/selection"
)

// ErrSessionNotFound is returned when a session id is unknown or expired
var ErrSessionNotFound = errors.New("session not found")

// Record is one stored configuration session
type Record struct {
	ID          string              `json:"id"`
	Selection   selection.Selection `json:"selection"`
	Transitions int                 `json:"transitions"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// Store persists session records
type Store interface {
	// Get returns ErrSessionNotFound for unknown ids
	Get(ctx context.Context, id string) (*Record, error)
	Put(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
	Close() error
}
