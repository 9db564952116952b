package access

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	appDomain "admissions-backend/internal/domain/application"
	credDomain "admissions-backend/internal/domain/credential"
	"admissions-backend/internal/hash"
	"admissions-backend/internal/testutil/applicationmock"
	"admissions-backend/internal/testutil/credentialmock"
)

func fixtureCredential(t *testing.T, plain string) *credDomain.Credential {
	t.Helper()
	tagged, err := hash.NewArgon2().Hash(plain)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &credDomain.Credential{ApplicationID: 7, Username: "ADM000007", PasswordHash: tagged}
}

func TestAuthenticate_Success(t *testing.T) {
	cred := fixtureCredential(t, "tok-tok-tok-tok1")
	creds := &credentialmock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*credDomain.Credential, error) {
			if username != "ADM000007" {
				t.Fatalf("looked up %q", username)
			}
			return cred, nil
		},
	}
	uc := NewUsecase(creds, nil, hash.NewArgon2(), false)

	id, ok := uc.Authenticate(context.Background(), "ADM000007", "tok-tok-tok-tok1")
	if !ok || id != 7 {
		t.Fatalf("Authenticate = (%d, %v)", id, ok)
	}
}

func TestAuthenticate_UniformFailure(t *testing.T) {
	cred := fixtureCredential(t, "right-password-1")
	creds := &credentialmock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*credDomain.Credential, error) {
			if username == "ADM000007" {
				return cred, nil
			}
			return nil, credDomain.ErrNotFound
		},
	}
	uc := NewUsecase(creds, nil, hash.NewArgon2(), false)
	ctx := context.Background()

	// unknown username and wrong password must be indistinguishable
	idA, okA := uc.Authenticate(ctx, "ADM999999", "whatever")
	idB, okB := uc.Authenticate(ctx, "ADM000007", "wrong-password-0")
	if okA || okB {
		t.Fatal("failure path returned ok")
	}
	if idA != 0 || idB != 0 {
		t.Fatalf("failure ids = %d, %d; both must be 0", idA, idB)
	}
}

// The decoy absorbed on unknown usernames must be a hash of the active
// scheme; a cheaper decoy would make the miss path measurably faster than a
// wrong password and give away which usernames exist.
func TestDecoyMatchesActiveScheme(t *testing.T) {
	cases := []struct {
		hasher hash.Hasher
		prefix string
	}{
		{hash.NewArgon2(), "$argon2id$"},
		{hash.SHA256{}, "sha256$"},
	}
	for _, tc := range cases {
		uc := NewUsecase(&credentialmock.Repo{}, nil, tc.hasher, false)
		if !strings.HasPrefix(uc.decoyHash, tc.prefix) {
			t.Errorf("scheme %s: decoy %q lacks prefix %q", tc.hasher.Scheme(), uc.decoyHash, tc.prefix)
		}
	}
}

func TestAuthenticate_VerifiesMixedSchemes(t *testing.T) {
	// a record hashed under the fallback scheme keeps verifying after the
	// process switches to the preferred hasher
	tagged, _ := hash.SHA256{}.Hash("legacy-pass-0123")
	creds := &credentialmock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*credDomain.Credential, error) {
			return &credDomain.Credential{ApplicationID: 3, Username: username, PasswordHash: tagged}, nil
		},
	}
	uc := NewUsecase(creds, nil, hash.NewArgon2(), false)

	if id, ok := uc.Authenticate(context.Background(), "ADM000003", "legacy-pass-0123"); !ok || id != 3 {
		t.Fatalf("Authenticate = (%d, %v)", id, ok)
	}
}

func TestStatus(t *testing.T) {
	cred := fixtureCredential(t, "tok-tok-tok-tok1")
	decidedAt := time.Date(2026, 2, 3, 12, 0, 0, 0, time.UTC)
	reason := "incomplete records"
	by := "staffB"
	creds := &credentialmock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*credDomain.Credential, error) {
			return cred, nil
		},
	}
	apps := &applicationmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*appDomain.Application, error) {
			return &appDomain.Application{
				ID:                id,
				StudentName:       "Asha Verma",
				Class:             "class 11 core",
				Status:            appDomain.StatusDisapproved,
				DisapprovedAt:     &decidedAt,
				DisapprovedBy:     &by,
				DisapprovalReason: &reason,
			}, nil
		},
	}
	uc := NewUsecase(creds, apps, hash.NewArgon2(), false)

	dto, err := uc.Status(context.Background(), "ADM000007", "tok-tok-tok-tok1")
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if dto.Status != "disapproved" || dto.Reason == nil || *dto.Reason != reason {
		t.Fatalf("dto = %+v", dto)
	}
	if dto.DecidedAt == nil || !dto.DecidedAt.Equal(decidedAt) {
		t.Fatalf("decided at = %v", dto.DecidedAt)
	}
}

func TestStatus_BadCredentials(t *testing.T) {
	creds := &credentialmock.Repo{
		GetByUsernameFn: func(ctx context.Context, username string) (*credDomain.Credential, error) {
			return nil, credDomain.ErrNotFound
		},
	}
	uc := NewUsecase(creds, nil, hash.NewArgon2(), false)

	if _, err := uc.Status(context.Background(), "ADM000001", "nope"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestRecoverPlaintext(t *testing.T) {
	creds := &credentialmock.Repo{
		GetEscrowByApplicationIDFn: func(ctx context.Context, applicationID uint64) (*credDomain.PlaintextEscrow, error) {
			return &credDomain.PlaintextEscrow{
				ApplicationID: applicationID,
				Username:      credDomain.UsernameFor(applicationID),
				PasswordPlain: "escrowed-secret1",
			}, nil
		},
	}

	uc := NewUsecase(creds, nil, hash.NewArgon2(), true)
	username, plain, err := uc.RecoverPlaintext(context.Background(), 7)
	if err != nil {
		t.Fatalf("RecoverPlaintext: %v", err)
	}
	if username != "ADM000007" || plain != "escrowed-secret1" {
		t.Fatalf("recovered (%q, %q)", username, plain)
	}

	// disabled escrow must refuse, not fall through to storage
	ucOff := NewUsecase(&credentialmock.Repo{}, nil, hash.NewArgon2(), false)
	if _, _, err := ucOff.RecoverPlaintext(context.Background(), 7); !errors.Is(err, credDomain.ErrEscrowDisabled) {
		t.Fatalf("err = %v, want ErrEscrowDisabled", err)
	}
}
