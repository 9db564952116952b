package credential

import "context"

type Repository interface {
	// Create inserts a credential; the unique constraints on admission id and
	// username are the race-breaking check. Duplicates surface as
	// ErrAlreadyExists.
	Create(ctx context.Context, c *Credential) error
	CreateEscrow(ctx context.Context, e *PlaintextEscrow) error

	GetByUsername(ctx context.Context, username string) (*Credential, error)
	GetByApplicationID(ctx context.Context, applicationID uint64) (*Credential, error)
	GetEscrowByApplicationID(ctx context.Context, applicationID uint64) (*PlaintextEscrow, error)

	// DeleteByApplicationID removes the credential and its escrow row, the
	// first half of a regenerate (delete+recreate, never update in place).
	DeleteByApplicationID(ctx context.Context, applicationID uint64) error
}
