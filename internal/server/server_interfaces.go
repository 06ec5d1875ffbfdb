package server

import (
	"context"
)

// SessionCleaner removes sessions whose tokens have expired.
type SessionCleaner interface {
	CleanupExpiredSessions(ctx context.Context) (int64, error)
}

// BackgroundTask runs until ctx is cancelled.
type BackgroundTask interface {
	Run(ctx context.Context)
}
