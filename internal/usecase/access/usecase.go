// Package access authenticates applicants against their minted credentials
// and carries the administrative escrow recovery path.
package access

import (
	"context"
	"errors"
	"fmt"
	"time"

	appDomain "admissions-backend/internal/domain/application"
	credDomain "admissions-backend/internal/domain/credential"
	"admissions-backend/internal/hash"
	"admissions-backend/pkg/token"

	"gorm.io/gorm"
)

type Usecase struct {
	creds  credDomain.Repository
	apps   appDomain.Repository
	escrow bool

	// decoyHash absorbs a Verify on unknown usernames so the miss path does
	// the same work as a wrong password, resisting username enumeration. It
	// is minted with the active hasher: a decoy under a cheaper scheme would
	// make the miss path measurably faster than a wrong password.
	decoyHash string
}

func NewUsecase(creds credDomain.Repository, apps appDomain.Repository, hasher hash.Hasher, escrowEnabled bool) *Usecase {
	decoy, _ := hasher.Hash(token.NewURLSafe(token.PasswordBytes))
	return &Usecase{creds: creds, apps: apps, escrow: escrowEnabled, decoyHash: decoy}
}

// Authenticate checks a username/password pair. Read-only; both failure
// modes return the identical (0, false) with no error detail.
func (u *Usecase) Authenticate(ctx context.Context, username, password string) (uint64, bool) {
	cred, err := u.creds.GetByUsername(ctx, username)
	if err != nil {
		hash.Verify(password, u.decoyHash)
		return 0, false
	}
	if !hash.Verify(password, cred.PasswordHash) {
		return 0, false
	}
	return cred.ApplicationID, true
}

type StatusDTO struct {
	ApplicationID uint64     `json:"application_id"`
	StudentName   string     `json:"student_name"`
	Class         string     `json:"class"`
	Status        string     `json:"status"`
	SubmittedAt   time.Time  `json:"submitted_at"`
	DecidedAt     *time.Time `json:"decided_at,omitempty"`
	Reason        *string    `json:"reason,omitempty"`
}

var ErrUnauthorized = errors.New("invalid admission credentials")

// Status is the applicant-facing lookup: authenticate, then return the
// admission's current decision state.
func (u *Usecase) Status(ctx context.Context, username, password string) (*StatusDTO, error) {
	id, ok := u.Authenticate(ctx, username, password)
	if !ok {
		return nil, ErrUnauthorized
	}
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, fmt.Errorf("load admission %d: %w", id, err)
	}
	dto := &StatusDTO{
		ApplicationID: app.ID,
		StudentName:   app.StudentName,
		Class:         app.Class,
		Status:        string(app.Status),
		SubmittedAt:   app.SubmittedAt,
	}
	switch app.Status {
	case appDomain.StatusApproved:
		dto.DecidedAt = app.ApprovedAt
	case appDomain.StatusDisapproved:
		dto.DecidedAt = app.DisapprovedAt
		dto.Reason = app.DisapprovalReason
	}
	return dto, nil
}

// RecoverPlaintext reads the escrow mirror for administrative recovery of a
// forgotten one-time secret. Distinct from the login path; never reachable
// by applicants.
func (u *Usecase) RecoverPlaintext(ctx context.Context, applicationID uint64) (username, plaintext string, err error) {
	if !u.escrow {
		return "", "", credDomain.ErrEscrowDisabled
	}
	esc, err := u.creds.GetEscrowByApplicationID(ctx, applicationID)
	if err != nil {
		return "", "", err
	}
	return esc.Username, esc.PasswordPlain, nil
}
