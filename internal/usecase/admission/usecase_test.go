package admission

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	appDomain "admissions-backend/internal/domain/application"
	credDomain "admissions-backend/internal/domain/credential"
	"admissions-backend/internal/domain/uow"
	"admissions-backend/internal/hash"
	"admissions-backend/internal/infrastructure/blob"
	"admissions-backend/internal/testutil/applicationmock"
	"admissions-backend/internal/testutil/credentialmock"
	"admissions-backend/internal/testutil/uowmock"

	"gorm.io/gorm"
)

func validInput() CreateInput {
	return CreateInput{
		StudentName:    "Asha Verma",
		DOB:            "2008-04-12",
		StudentPhone:   "9876543210",
		StudentEmail:   "asha@example.com",
		Class:          "class 11 core",
		SchoolName:     "Sunrise Public School",
		MathsMarks:     88,
		MathsRating:    9.0,
		LastPercentage: 91.5,
		ParentName:     "R Verma",
		ParentPhone:    "9876500000",
		SubmitIP:       "203.0.113.7",
	}
}

func TestCreate_MintsVerifiableCredential(t *testing.T) {
	var storedHash, escrowPlain string

	apps := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *appDomain.Application) error {
			a.ID = 7
			return nil
		},
	}
	creds := &credentialmock.Repo{
		CreateFn: func(ctx context.Context, c *credDomain.Credential) error {
			storedHash = c.PasswordHash
			return nil
		},
		CreateEscrowFn: func(ctx context.Context, e *credDomain.PlaintextEscrow) error {
			escrowPlain = e.PasswordPlain
			return nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps, Credentials: creds})
	uc := NewUsecase(apps, creds, tx, hash.NewArgon2(), nil, true)

	dto, err := uc.Create(context.Background(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if dto.ID != 7 || dto.Username != "ADM000007" {
		t.Fatalf("dto = %+v", dto)
	}
	if len(dto.Password) < 16 {
		t.Fatalf("password %q shorter than 16 chars", dto.Password)
	}
	// the disclosed plaintext must verify against what was stored
	if !hash.Verify(dto.Password, storedHash) {
		t.Fatal("disclosed password does not verify against stored hash")
	}
	if escrowPlain != dto.Password {
		t.Fatal("escrow row does not mirror the disclosed password")
	}
	if strings.Contains(storedHash, dto.Password) {
		t.Fatal("stored hash leaks the plaintext")
	}
}

func TestCreate_EscrowDisabled_SkipsEscrowInsert(t *testing.T) {
	apps := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *appDomain.Application) error { a.ID = 1; return nil },
	}
	creds := &credentialmock.Repo{
		CreateFn: func(ctx context.Context, c *credDomain.Credential) error { return nil },
		CreateEscrowFn: func(ctx context.Context, e *credDomain.PlaintextEscrow) error {
			t.Fatal("escrow insert must not happen when disabled")
			return nil
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps, Credentials: creds})
	uc := NewUsecase(apps, creds, tx, hash.SHA256{}, nil, false)

	if _, err := uc.Create(context.Background(), validInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestCreate_Validation(t *testing.T) {
	uc := NewUsecase(nil, nil, nil, hash.SHA256{}, nil, false)

	tests := []struct {
		name   string
		mutate func(*CreateInput)
	}{
		{"missing student name", func(in *CreateInput) { in.StudentName = "" }},
		{"missing parent phone", func(in *CreateInput) { in.ParentPhone = "" }},
		{"bad dob", func(in *CreateInput) { in.DOB = "12/04/2008" }},
		{"marks too high", func(in *CreateInput) { in.MathsMarks = 101 }},
		{"negative marks", func(in *CreateInput) { in.MathsMarks = -1 }},
		{"rating too high", func(in *CreateInput) { in.MathsRating = 10.5 }},
		{"percentage too high", func(in *CreateInput) { in.LastPercentage = 120 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := uc.Create(context.Background(), in)
			if !errors.Is(err, appDomain.ErrValidation) {
				t.Fatalf("err = %v, want ErrValidation", err)
			}
		})
	}
}

func TestCreate_MintFailureFailsWholeOperation(t *testing.T) {
	apps := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *appDomain.Application) error { a.ID = 3; return nil },
	}
	creds := &credentialmock.Repo{
		CreateFn: func(ctx context.Context, c *credDomain.Credential) error {
			return credDomain.ErrAlreadyExists
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps, Credentials: creds})
	uc := NewUsecase(apps, creds, tx, hash.SHA256{}, nil, true)

	dto, err := uc.Create(context.Background(), validInput())
	if !errors.Is(err, credDomain.ErrAlreadyExists) {
		t.Fatalf("err = %v", err)
	}
	if dto != nil {
		t.Fatal("caller must not see a partial-success DTO")
	}
}

func TestCreate_MintFailureRemovesSavedPhoto(t *testing.T) {
	root := t.TempDir()
	photos, err := blob.NewLocal(root)
	if err != nil {
		t.Fatalf("NewLocal: %v", err)
	}

	apps := &applicationmock.Repo{
		CreateFn:   func(ctx context.Context, a *appDomain.Application) error { a.ID = 9; return nil },
		SetPhotoFn: func(ctx context.Context, id uint64, key string) error { return nil },
	}
	creds := &credentialmock.Repo{
		CreateFn: func(ctx context.Context, c *credDomain.Credential) error {
			return credDomain.ErrAlreadyExists
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps, Credentials: creds})
	uc := NewUsecase(apps, creds, tx, hash.SHA256{}, photos, true)

	in := validInput()
	in.Photo = []byte("jpegbytes")
	in.PhotoName = "passport.jpg"

	if _, err := uc.Create(context.Background(), in); !errors.Is(err, credDomain.ErrAlreadyExists) {
		t.Fatalf("err = %v", err)
	}
	// the rolled-back submission must not leave its photo behind
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("orphaned files left in upload dir: %v", entries)
	}
}

func TestApprove(t *testing.T) {
	tests := []struct {
		name    string
		by      string
		rows    int64
		rowsErr error
		getErr  error
		wantErr error
	}{
		{name: "happy path", by: "staffA", rows: 1},
		{name: "missing approver", by: "", wantErr: appDomain.ErrValidation},
		{name: "already decided", by: "staffA", rows: 0, wantErr: appDomain.ErrInvalidTransition},
		{name: "unknown id", by: "staffA", rows: 0, getErr: gorm.ErrRecordNotFound, wantErr: appDomain.ErrNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			apps := &applicationmock.Repo{
				ApproveFn: func(ctx context.Context, id uint64, by string, at time.Time) (int64, error) {
					return tc.rows, tc.rowsErr
				},
				GetByIDFn: func(ctx context.Context, id uint64) (*appDomain.Application, error) {
					if tc.getErr != nil {
						return nil, tc.getErr
					}
					return &appDomain.Application{ID: id, Status: appDomain.StatusApproved}, nil
				},
			}
			uc := NewUsecase(apps, nil, nil, hash.SHA256{}, nil, false)
			err := uc.Approve(context.Background(), 1, tc.by)
			if tc.wantErr == nil && err != nil {
				t.Fatalf("Approve: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestDisapprove_ReasonRequired(t *testing.T) {
	uc := NewUsecase(&applicationmock.Repo{}, nil, nil, hash.SHA256{}, nil, false)
	err := uc.Disapprove(context.Background(), 1, "staffB", "")
	if !errors.Is(err, appDomain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}

func TestDisapprove_TerminalState(t *testing.T) {
	apps := &applicationmock.Repo{
		DisapproveFn: func(ctx context.Context, id uint64, by, reason string, at time.Time) (int64, error) {
			return 0, nil
		},
		GetByIDFn: func(ctx context.Context, id uint64) (*appDomain.Application, error) {
			return &appDomain.Application{ID: id, Status: appDomain.StatusApproved}, nil
		},
	}
	uc := NewUsecase(apps, nil, nil, hash.SHA256{}, nil, false)
	err := uc.Disapprove(context.Background(), 7, "staffB", "duplicate")
	if !errors.Is(err, appDomain.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

func TestRegenerate_DeletesThenRemints(t *testing.T) {
	var deleted bool
	apps := &applicationmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*appDomain.Application, error) {
			return &appDomain.Application{ID: id, Status: appDomain.StatusPending}, nil
		},
	}
	creds := &credentialmock.Repo{
		DeleteByApplicationIDFn: func(ctx context.Context, applicationID uint64) error {
			deleted = true
			return nil
		},
		CreateFn: func(ctx context.Context, c *credDomain.Credential) error {
			if !deleted {
				t.Fatal("mint ran before delete")
			}
			return nil
		},
		CreateEscrowFn: func(ctx context.Context, e *credDomain.PlaintextEscrow) error { return nil },
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps, Credentials: creds})
	uc := NewUsecase(apps, creds, tx, hash.SHA256{}, nil, true)

	dto, err := uc.Regenerate(context.Background(), 11)
	if err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if dto.Username != "ADM000011" || len(dto.Password) < 16 {
		t.Fatalf("dto = %+v", dto)
	}
}

func TestRegenerate_UnknownApplication(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*appDomain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	tx := uowmock.Passthrough(uow.Repos{Applications: apps, Credentials: &credentialmock.Repo{}})
	uc := NewUsecase(apps, &credentialmock.Repo{}, tx, hash.SHA256{}, nil, true)

	if _, err := uc.Regenerate(context.Background(), 404); !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	apps := &applicationmock.Repo{
		GetByIDFn: func(ctx context.Context, id uint64) (*appDomain.Application, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	uc := NewUsecase(apps, nil, nil, hash.SHA256{}, nil, false)
	if _, err := uc.Get(context.Background(), 404); !errors.Is(err, appDomain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	uc := NewUsecase(&applicationmock.Repo{}, nil, nil, hash.SHA256{}, nil, false)
	if _, err := uc.List(context.Background(), "archived"); !errors.Is(err, appDomain.ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
}
