package mysql

import (
	"context"
	"errors"
	"strings"

	credDomain "admissions-backend/internal/domain/credential"

	"gorm.io/gorm"
)

type CredentialRepository struct{ db *gorm.DB }

func NewCredentialRepository(db *gorm.DB) *CredentialRepository {
	return &CredentialRepository{db: db}
}

// isDuplicate matches unique-constraint violations across MySQL ("Duplicate
// entry") and the sqlite used in tests ("UNIQUE constraint failed").
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

func (r *CredentialRepository) Create(ctx context.Context, c *credDomain.Credential) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isDuplicate(err) {
			return credDomain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *CredentialRepository) CreateEscrow(ctx context.Context, e *credDomain.PlaintextEscrow) error {
	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		if isDuplicate(err) {
			return credDomain.ErrAlreadyExists
		}
		return err
	}
	return nil
}

func (r *CredentialRepository) GetByUsername(ctx context.Context, username string) (*credDomain.Credential, error) {
	var out credDomain.Credential
	res := r.db.WithContext(ctx).Where("access_username = ?", username).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, credDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *CredentialRepository) GetByApplicationID(ctx context.Context, applicationID uint64) (*credDomain.Credential, error) {
	var out credDomain.Credential
	res := r.db.WithContext(ctx).Where("admission_id = ?", applicationID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, credDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *CredentialRepository) GetEscrowByApplicationID(ctx context.Context, applicationID uint64) (*credDomain.PlaintextEscrow, error) {
	var out credDomain.PlaintextEscrow
	res := r.db.WithContext(ctx).Where("admission_id = ?", applicationID).First(&out)
	if errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, credDomain.ErrNotFound
	}
	return &out, res.Error
}

func (r *CredentialRepository) DeleteByApplicationID(ctx context.Context, applicationID uint64) error {
	if err := r.db.WithContext(ctx).
		Where("admission_id = ?", applicationID).
		Delete(&credDomain.Credential{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("admission_id = ?", applicationID).
		Delete(&credDomain.PlaintextEscrow{}).Error
}
