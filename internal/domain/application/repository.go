package application

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id uint64) (*Application, error)
	// List returns applications, newest first, optionally filtered by status
	// (empty status = all).
	List(ctx context.Context, status Status) ([]Application, error)
	// SetPhoto records the blob-store key on a freshly created row.
	SetPhoto(ctx context.Context, id uint64, key string) error

	// Approve and Disapprove are conditional writes guarded by
	// status = 'pending'; they return the number of rows updated so the
	// caller can tell a won race (1) from a lost one (0).
	Approve(ctx context.Context, id uint64, by string, at time.Time) (int64, error)
	Disapprove(ctx context.Context, id uint64, by, reason string, at time.Time) (int64, error)
}
