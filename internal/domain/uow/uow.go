package uow

import (
	"context"

	"admissions-backend/internal/domain/application"
	"admissions-backend/internal/domain/credential"
)

type Repos struct {
	Applications application.Repository
	Credentials  credential.Repository
}

// UnitOfWork runs fn with repositories bound to a single storage
// transaction; fn returning an error rolls everything back. It is the only
// concurrency primitive in this core — correctness must hold across
// processes sharing the store, so no in-process locking is layered on top.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
