package applicationmock

import (
	"context"
	"errors"
	"time"

	domain "admissions-backend/internal/domain/application"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("applicationmock: method not implemented")

// Repo is a function-backed mock satisfying application.Repository. Fill in
// the fields a test needs; unfilled ones fail loudly.
type Repo struct {
	CreateFn     func(ctx context.Context, a *domain.Application) error
	GetByIDFn    func(ctx context.Context, id uint64) (*domain.Application, error)
	ListFn       func(ctx context.Context, status domain.Status) ([]domain.Application, error)
	SetPhotoFn   func(ctx context.Context, id uint64, key string) error
	ApproveFn    func(ctx context.Context, id uint64, by string, at time.Time) (int64, error)
	DisapproveFn func(ctx context.Context, id uint64, by, reason string, at time.Time) (int64, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return errUnimplemented
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Application, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) List(ctx context.Context, status domain.Status) ([]domain.Application, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status)
	}
	return nil, errUnimplemented
}

func (m *Repo) SetPhoto(ctx context.Context, id uint64, key string) error {
	if m.SetPhotoFn != nil {
		return m.SetPhotoFn(ctx, id, key)
	}
	return errUnimplemented
}

func (m *Repo) Approve(ctx context.Context, id uint64, by string, at time.Time) (int64, error) {
	if m.ApproveFn != nil {
		return m.ApproveFn(ctx, id, by, at)
	}
	return 0, errUnimplemented
}

func (m *Repo) Disapprove(ctx context.Context, id uint64, by, reason string, at time.Time) (int64, error) {
	if m.DisapproveFn != nil {
		return m.DisapproveFn(ctx, id, by, reason, at)
	}
	return 0, errUnimplemented
}
