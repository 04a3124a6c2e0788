package store

import (
	"context"
	"time"
)

// Run is one recorded round trip to the execution service: what a room
// submitted and the payload that was broadcast back. Buffer contents are
// not stored anywhere else; rooms themselves are ephemeral.
type Run struct {
	ID        int64
	RoomID    string
	Language  string
	Version   string
	Result    string
	CreatedAt time.Time
}

// Store persists execution-run history.
type Store interface {
	// RecordRun saves a run and returns its id.
	RecordRun(ctx context.Context, run Run) (int64, error)
	// RecentRuns returns up to limit runs for a room, newest first.
	RecentRuns(ctx context.Context, roomID string, limit int) ([]Run, error)
	// Close releases underlying resources.
	Close() error
}
