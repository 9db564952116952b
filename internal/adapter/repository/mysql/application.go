package mysql

import (
	"context"
	"time"

	appDomain "admissions-backend/internal/domain/application"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ db *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *appDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id uint64) (*appDomain.Application, error) {
	var out appDomain.Application
	res := r.db.WithContext(ctx).Where("id = ?", id).First(&out)
	return &out, res.Error
}

func (r *ApplicationRepository) List(ctx context.Context, status appDomain.Status) ([]appDomain.Application, error) {
	q := r.db.WithContext(ctx).Order("submitted_at DESC, id DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out []appDomain.Application
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ApplicationRepository) SetPhoto(ctx context.Context, id uint64, key string) error {
	return r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ?", id).
		Update("passport_photo", key).Error
}

// Approve flips pending -> approved with a single conditional update; the
// status guard makes the precondition check and the mutation one atomic
// storage operation. Zero rows updated means the row is missing or already
// decided — the caller disambiguates.
func (r *ApplicationRepository) Approve(ctx context.Context, id uint64, by string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND status = ?", id, appDomain.StatusPending).
		Updates(map[string]any{
			"status":      appDomain.StatusApproved,
			"approved_at": at,
			"approved_by": by,
		})
	return res.RowsAffected, res.Error
}

func (r *ApplicationRepository) Disapprove(ctx context.Context, id uint64, by, reason string, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&appDomain.Application{}).
		Where("id = ? AND status = ?", id, appDomain.StatusPending).
		Updates(map[string]any{
			"status":             appDomain.StatusDisapproved,
			"disapproved_at":     at,
			"disapproved_by":     by,
			"disapproval_reason": reason,
		})
	return res.RowsAffected, res.Error
}
