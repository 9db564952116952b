package application

import (
	"errors"
	"time"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusApproved    Status = "approved"
	StatusDisapproved Status = "disapproved"
)

var (
	ErrValidation        = errors.New("invalid admission input")
	ErrNotFound          = errors.New("admission not found")
	ErrInvalidTransition = errors.New("admission already decided")
)

// Application is one admission submission and its decision state. Core
// applicant fields are immutable after Create; only the lifecycle columns
// change, and only through the conditional Approve/Disapprove updates.
// Rows are never deleted (audit retention).
type Application struct {
	ID             uint64  `gorm:"primaryKey;column:id" json:"id"`
	StudentName    string  `gorm:"column:student_name;size:120;not null" json:"student_name"`
	DOB            string  `gorm:"column:dob;size:10;not null" json:"dob"`
	StudentPhone   string  `gorm:"column:student_phone;size:20;not null" json:"student_phone"`
	StudentEmail   string  `gorm:"column:student_email;size:120;not null" json:"student_email"`
	Class          string  `gorm:"column:class;size:40;not null" json:"class"`
	SchoolName     string  `gorm:"column:school_name;size:120;not null" json:"school_name"`
	MathsMarks     int     `gorm:"column:maths_marks;not null" json:"maths_marks"`
	MathsRating    float64 `gorm:"column:maths_rating;not null" json:"maths_rating"`
	LastPercentage float64 `gorm:"column:last_percentage;not null" json:"last_percentage"`
	ParentName     string  `gorm:"column:parent_name;size:120;not null" json:"parent_name"`
	ParentPhone    string  `gorm:"column:parent_phone;size:20;not null" json:"parent_phone"`
	// PassportPhoto holds the opaque blob-store key, not file contents.
	PassportPhoto string    `gorm:"column:passport_photo;type:text" json:"passport_photo"`
	Status        Status    `gorm:"column:status;type:varchar(16);default:'pending'" json:"status"`
	SubmittedAt   time.Time `gorm:"column:submitted_at;autoCreateTime" json:"submitted_at"`
	UserID        *uint64   `gorm:"column:user_id" json:"user_id,omitempty"`
	SubmitIP      string    `gorm:"column:submit_ip;size:45" json:"-"`

	ApprovedAt        *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	ApprovedBy        *string    `gorm:"column:approved_by;size:64" json:"approved_by,omitempty"`
	DisapprovedAt     *time.Time `gorm:"column:disapproved_at" json:"disapproved_at,omitempty"`
	DisapprovedBy     *string    `gorm:"column:disapproved_by;size:64" json:"disapproved_by,omitempty"`
	DisapprovalReason *string    `gorm:"column:disapproval_reason;type:text" json:"disapproval_reason,omitempty"`
}

func (Application) TableName() string { return "admissions" }
