package credential

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound = errors.New("credential not found")
	// ErrAlreadyExists means a mint raced an existing credential for the same
	// application or username. Under correct sequencing this never happens;
	// treat a sighting as a bug signal, not a user error.
	ErrAlreadyExists  = errors.New("credential already exists")
	ErrEscrowDisabled = errors.New("plaintext escrow is disabled")
)

// UsernamePrefix + zero-padded application id forms the login username.
const UsernamePrefix = "ADM"

// UsernameFor derives the unique username for an application id, e.g.
// UsernameFor(42) == "ADM000042". Uniqueness follows from the id itself.
func UsernameFor(applicationID uint64) string {
	return fmt.Sprintf("%s%06d", UsernamePrefix, applicationID)
}

// Credential is the system-issued login bound 1:1 to an application.
// Rows are never updated in place; regeneration is delete+recreate so an
// already-disclosed secret is never silently invalidated.
type Credential struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	ApplicationID uint64    `gorm:"column:admission_id;not null;uniqueIndex:ux_admission_access_admission"`
	Username      string    `gorm:"column:access_username;size:32;not null;uniqueIndex:ux_admission_access_username"`
	PasswordHash  string    `gorm:"column:access_password;type:text;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (Credential) TableName() string { return "admission_access" }

// PlaintextEscrow mirrors a credential's password in recoverable form for
// administrative recovery. A deliberate, documented security trade-off;
// disable via config when recovery is not a hard requirement.
type PlaintextEscrow struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	ApplicationID uint64    `gorm:"column:admission_id;not null;uniqueIndex:ux_admission_access_plain_admission"`
	Username      string    `gorm:"column:access_username;size:32;not null;uniqueIndex:ux_admission_access_plain_username"`
	PasswordPlain string    `gorm:"column:access_password_plain;type:text;not null"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (PlaintextEscrow) TableName() string { return "admission_access_plain" }
