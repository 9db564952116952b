package credentialmock

import (
	"context"
	"errors"

	domain "admissions-backend/internal/domain/credential"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("credentialmock: method not implemented")

// Repo is a function-backed mock satisfying credential.Repository.
type Repo struct {
	CreateFn                   func(ctx context.Context, c *domain.Credential) error
	CreateEscrowFn             func(ctx context.Context, e *domain.PlaintextEscrow) error
	GetByUsernameFn            func(ctx context.Context, username string) (*domain.Credential, error)
	GetByApplicationIDFn       func(ctx context.Context, applicationID uint64) (*domain.Credential, error)
	GetEscrowByApplicationIDFn func(ctx context.Context, applicationID uint64) (*domain.PlaintextEscrow, error)
	DeleteByApplicationIDFn    func(ctx context.Context, applicationID uint64) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Credential) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return errUnimplemented
}

func (m *Repo) CreateEscrow(ctx context.Context, e *domain.PlaintextEscrow) error {
	if m.CreateEscrowFn != nil {
		return m.CreateEscrowFn(ctx, e)
	}
	return errUnimplemented
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.Credential, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID uint64) (*domain.Credential, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetEscrowByApplicationID(ctx context.Context, applicationID uint64) (*domain.PlaintextEscrow, error) {
	if m.GetEscrowByApplicationIDFn != nil {
		return m.GetEscrowByApplicationIDFn(ctx, applicationID)
	}
	return nil, errUnimplemented
}

func (m *Repo) DeleteByApplicationID(ctx context.Context, applicationID uint64) error {
	if m.DeleteByApplicationIDFn != nil {
		return m.DeleteByApplicationIDFn(ctx, applicationID)
	}
	return errUnimplemented
}
