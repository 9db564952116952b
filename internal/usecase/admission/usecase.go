package admission

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	appDomain "admissions-backend/internal/domain/application"
	credDomain "admissions-backend/internal/domain/credential"
	"admissions-backend/internal/domain/uow"
	"admissions-backend/internal/hash"
	"admissions-backend/internal/infrastructure/blob"
	"admissions-backend/pkg/token"

	"gorm.io/gorm"
)

type Usecase struct {
	apps   appDomain.Repository
	creds  credDomain.Repository
	uow    uow.UnitOfWork
	hasher hash.Hasher
	photos blob.Store
	escrow bool
}

func NewUsecase(apps appDomain.Repository, creds credDomain.Repository, tx uow.UnitOfWork, hasher hash.Hasher, photos blob.Store, escrowEnabled bool) *Usecase {
	return &Usecase{apps: apps, creds: creds, uow: tx, hasher: hasher, photos: photos, escrow: escrowEnabled}
}

// Create inserts the application and mints its credential in one
// transaction. A mint failure rolls the application insert back; the caller
// sees a single combined failure, never a partial success.
func (u *Usecase) Create(ctx context.Context, in CreateInput) (*CreatedDTO, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	var dto *CreatedDTO
	var photoKey string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		app := &appDomain.Application{
			StudentName:    in.StudentName,
			DOB:            in.DOB,
			StudentPhone:   in.StudentPhone,
			StudentEmail:   in.StudentEmail,
			Class:          in.Class,
			SchoolName:     in.SchoolName,
			MathsMarks:     in.MathsMarks,
			MathsRating:    in.MathsRating,
			LastPercentage: in.LastPercentage,
			ParentName:     in.ParentName,
			ParentPhone:    in.ParentPhone,
			Status:         appDomain.StatusPending,
			SubmittedAt:    time.Now().UTC(),
			UserID:         in.UserID,
			SubmitIP:       in.SubmitIP,
		}
		if err := r.Applications.Create(ctx, app); err != nil {
			return fmt.Errorf("insert admission: %w", err)
		}

		if len(in.Photo) > 0 && u.photos != nil {
			key, err := u.photos.Save(ctx, app.ID, bytes.NewReader(in.Photo), in.PhotoName)
			if err != nil {
				return fmt.Errorf("store photo: %w", err)
			}
			photoKey = key
			if err := r.Applications.SetPhoto(ctx, app.ID, key); err != nil {
				return fmt.Errorf("record photo key: %w", err)
			}
		}

		username, plain, err := mint(ctx, r.Credentials, u.hasher, app.ID, u.escrow)
		if err != nil {
			return err
		}
		dto = &CreatedDTO{ID: app.ID, Username: username, Password: plain}
		return nil
	})
	if err != nil {
		// the rollback undid the photo-key row but not the file itself
		if photoKey != "" {
			_ = u.photos.Remove(ctx, photoKey)
		}
		return nil, err
	}
	return dto, nil
}

// mint derives the username, generates the password, and stores hash (and
// escrow row when enabled) through the tx-bound repository. The unique
// constraints on the insert are the race-breaking check.
func mint(ctx context.Context, creds credDomain.Repository, hasher hash.Hasher, applicationID uint64, escrow bool) (string, string, error) {
	username := credDomain.UsernameFor(applicationID)
	plain := token.NewURLSafe(token.PasswordBytes)

	tagged, err := hasher.Hash(plain)
	if err != nil {
		return "", "", fmt.Errorf("hash password: %w", err)
	}
	if err := creds.Create(ctx, &credDomain.Credential{
		ApplicationID: applicationID,
		Username:      username,
		PasswordHash:  tagged,
	}); err != nil {
		return "", "", err
	}
	if escrow {
		if err := creds.CreateEscrow(ctx, &credDomain.PlaintextEscrow{
			ApplicationID: applicationID,
			Username:      username,
			PasswordPlain: plain,
		}); err != nil {
			return "", "", err
		}
	}
	return username, plain, nil
}

// Regenerate replaces an application's credential with a fresh one:
// delete+recreate in one transaction, never an in-place update.
func (u *Usecase) Regenerate(ctx context.Context, applicationID uint64) (*CredentialDTO, error) {
	var dto *CredentialDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		if _, err := r.Applications.GetByID(ctx, applicationID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appDomain.ErrNotFound
			}
			return fmt.Errorf("load admission: %w", err)
		}
		if err := r.Credentials.DeleteByApplicationID(ctx, applicationID); err != nil {
			return fmt.Errorf("delete credential: %w", err)
		}
		username, plain, err := mint(ctx, r.Credentials, u.hasher, applicationID, u.escrow)
		if err != nil {
			return err
		}
		dto = &CredentialDTO{ApplicationID: applicationID, Username: username, Password: plain}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Approve transitions pending -> approved. The repository's conditional
// update decides races: exactly one concurrent caller wins, losers get
// ErrInvalidTransition.
func (u *Usecase) Approve(ctx context.Context, id uint64, approvedBy string) error {
	if approvedBy == "" {
		return fmt.Errorf("%w: approver identity required", appDomain.ErrValidation)
	}
	rows, err := u.apps.Approve(ctx, id, approvedBy, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("approve admission %d: %w", id, err)
	}
	if rows == 0 {
		return u.classifyNoop(ctx, id)
	}
	return nil
}

func (u *Usecase) Disapprove(ctx context.Context, id uint64, disapprovedBy, reason string) error {
	if disapprovedBy == "" {
		return fmt.Errorf("%w: approver identity required", appDomain.ErrValidation)
	}
	if reason == "" {
		return fmt.Errorf("%w: disapproval reason required", appDomain.ErrValidation)
	}
	rows, err := u.apps.Disapprove(ctx, id, disapprovedBy, reason, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("disapprove admission %d: %w", id, err)
	}
	if rows == 0 {
		return u.classifyNoop(ctx, id)
	}
	return nil
}

// classifyNoop explains a zero-row conditional update: either the row never
// existed, or it is already in a terminal state.
func (u *Usecase) classifyNoop(ctx context.Context, id uint64) error {
	if _, err := u.apps.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return appDomain.ErrNotFound
		}
		return fmt.Errorf("load admission %d: %w", id, err)
	}
	return appDomain.ErrInvalidTransition
}

func (u *Usecase) Get(ctx context.Context, id uint64) (*ApplicationDTO, error) {
	app, err := u.apps.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appDomain.ErrNotFound
		}
		return nil, fmt.Errorf("load admission %d: %w", id, err)
	}
	return toDTO(app), nil
}

func (u *Usecase) List(ctx context.Context, status string) ([]ApplicationDTO, error) {
	switch appDomain.Status(status) {
	case "", appDomain.StatusPending, appDomain.StatusApproved, appDomain.StatusDisapproved:
	default:
		return nil, fmt.Errorf("%w: unknown status %q", appDomain.ErrValidation, status)
	}
	apps, err := u.apps.List(ctx, appDomain.Status(status))
	if err != nil {
		return nil, fmt.Errorf("list admissions: %w", err)
	}
	out := make([]ApplicationDTO, 0, len(apps))
	for i := range apps {
		out = append(out, *toDTO(&apps[i]))
	}
	return out, nil
}

func toDTO(a *appDomain.Application) *ApplicationDTO {
	return &ApplicationDTO{
		ID:             a.ID,
		StudentName:    a.StudentName,
		DOB:            a.DOB,
		StudentPhone:   a.StudentPhone,
		StudentEmail:   a.StudentEmail,
		Class:          a.Class,
		SchoolName:     a.SchoolName,
		MathsMarks:     a.MathsMarks,
		MathsRating:    a.MathsRating,
		LastPercentage: a.LastPercentage,
		ParentName:     a.ParentName,
		ParentPhone:    a.ParentPhone,
		PassportPhoto:  a.PassportPhoto,
		Status:         string(a.Status),
		SubmittedAt:    a.SubmittedAt,

		ApprovedAt:        a.ApprovedAt,
		ApprovedBy:        a.ApprovedBy,
		DisapprovedAt:     a.DisapprovedAt,
		DisapprovedBy:     a.DisapprovedBy,
		DisapprovalReason: a.DisapprovalReason,
	}
}

func validateCreate(in CreateInput) error {
	required := []struct{ name, val string }{
		{"student_name", in.StudentName},
		{"dob", in.DOB},
		{"student_phone", in.StudentPhone},
		{"student_email", in.StudentEmail},
		{"class", in.Class},
		{"school_name", in.SchoolName},
		{"parent_name", in.ParentName},
		{"parent_phone", in.ParentPhone},
	}
	for _, f := range required {
		if f.val == "" {
			return fmt.Errorf("%w: %s is required", appDomain.ErrValidation, f.name)
		}
	}
	if _, err := time.Parse("2006-01-02", in.DOB); err != nil {
		return fmt.Errorf("%w: dob must be YYYY-MM-DD", appDomain.ErrValidation)
	}
	if in.MathsMarks < 0 || in.MathsMarks > 100 {
		return fmt.Errorf("%w: maths_marks out of range", appDomain.ErrValidation)
	}
	if in.MathsRating < 0 || in.MathsRating > 10 {
		return fmt.Errorf("%w: maths_rating out of range", appDomain.ErrValidation)
	}
	if in.LastPercentage < 0 || in.LastPercentage > 100 {
		return fmt.Errorf("%w: last_percentage out of range", appDomain.ErrValidation)
	}
	return nil
}
