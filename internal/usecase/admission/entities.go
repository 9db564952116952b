package admission

import "time"

type CreateInput struct {
	StudentName    string
	DOB            string // YYYY-MM-DD
	StudentPhone   string
	StudentEmail   string
	Class          string
	SchoolName     string
	MathsMarks     int
	MathsRating    float64
	LastPercentage float64
	ParentName     string
	ParentPhone    string

	// Photo is optional; when present it is handed to the blob store and
	// only the returned key is persisted.
	Photo     []byte
	PhotoName string

	UserID   *uint64
	SubmitIP string
}

// CreatedDTO is the one-time disclosure: Password exists only in this value
// and is never re-derivable through the normal path.
type CreatedDTO struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// CredentialDTO is the regenerate counterpart of CreatedDTO.
type CredentialDTO struct {
	ApplicationID uint64 `json:"application_id"`
	Username      string `json:"username"`
	Password      string `json:"password"`
}

type ApplicationDTO struct {
	ID             uint64    `json:"id"`
	StudentName    string    `json:"student_name"`
	DOB            string    `json:"dob"`
	StudentPhone   string    `json:"student_phone"`
	StudentEmail   string    `json:"student_email"`
	Class          string    `json:"class"`
	SchoolName     string    `json:"school_name"`
	MathsMarks     int       `json:"maths_marks"`
	MathsRating    float64   `json:"maths_rating"`
	LastPercentage float64   `json:"last_percentage"`
	ParentName     string    `json:"parent_name"`
	ParentPhone    string    `json:"parent_phone"`
	PassportPhoto  string    `json:"passport_photo,omitempty"`
	Status         string    `json:"status"`
	SubmittedAt    time.Time `json:"submitted_at"`

	ApprovedAt        *time.Time `json:"approved_at,omitempty"`
	ApprovedBy        *string    `json:"approved_by,omitempty"`
	DisapprovedAt     *time.Time `json:"disapproved_at,omitempty"`
	DisapprovedBy     *string    `json:"disapproved_by,omitempty"`
	DisapprovalReason *string    `json:"disapproval_reason,omitempty"`
}
