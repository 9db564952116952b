package http

import (
	"io"
	"net/http"
	"strconv"

	"admissions-backend/internal/usecase/admission"

	"github.com/labstack/echo/v4"
)

type AdmissionHandler struct{ uc *admission.Usecase }

func NewAdmissionHandler(uc *admission.Usecase) *AdmissionHandler {
	return &AdmissionHandler{uc: uc}
}

type createAdmissionReq struct {
	StudentName    string  `form:"student_name"    validate:"required"`
	DOB            string  `form:"dob"             validate:"required,datetime=2006-01-02"`
	StudentPhone   string  `form:"student_phone"   validate:"required,phone"`
	StudentEmail   string  `form:"student_email"   validate:"required,email"`
	Class          string  `form:"class"           validate:"required"`
	SchoolName     string  `form:"school_name"     validate:"required"`
	MathsMarks     int     `form:"maths_marks"     validate:"gte=0,lte=100"`
	MathsRating    float64 `form:"maths_rating"    validate:"gte=0,lte=10"`
	LastPercentage float64 `form:"last_percentage" validate:"gte=0,lte=100"`
	ParentName     string  `form:"parent_name"     validate:"required"`
	ParentPhone    string  `form:"parent_phone"    validate:"required,phone"`
}

// CreateAdmission accepts the multipart admission form, stores the optional
// passport photo, and responds with the one-time credential. The password in
// the 201 body is the only disclosure the normal path ever makes.
func (h *AdmissionHandler) CreateAdmission(c echo.Context) error {
	var req createAdmissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}

	in := admission.CreateInput{
		StudentName:    req.StudentName,
		DOB:            req.DOB,
		StudentPhone:   req.StudentPhone,
		StudentEmail:   req.StudentEmail,
		Class:          req.Class,
		SchoolName:     req.SchoolName,
		MathsMarks:     req.MathsMarks,
		MathsRating:    req.MathsRating,
		LastPercentage: req.LastPercentage,
		ParentName:     req.ParentName,
		ParentPhone:    req.ParentPhone,
		SubmitIP:       c.RealIP(),
	}
	if v := c.FormValue("user_id"); v != "" {
		if uid, err := strconv.ParseUint(v, 10, 64); err == nil {
			in.UserID = &uid
		}
	}
	if fh, err := c.FormFile("passport_photo"); err == nil && fh != nil {
		f, err := fh.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable photo upload"})
		}
		defer f.Close()
		in.Photo, err = io.ReadAll(f)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "unreadable photo upload"})
		}
		in.PhotoName = fh.Filename
	}

	dto, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AdmissionHandler) GetAdmission(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid admission id"})
	}
	dto, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdmissionHandler) ListAdmissions(c echo.Context) error {
	dtos, err := h.uc.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dtos)
}

type approveReq struct {
	ApprovedBy string `json:"approved_by" validate:"required"`
}

// Approve relies on the caller being already authorized; role checks belong
// to the surrounding auth layer, not here.
func (h *AdmissionHandler) Approve(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid admission id"})
	}
	var req approveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Approve(c.Request().Context(), id, req.ApprovedBy); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "approved"})
}

type disapproveReq struct {
	DisapprovedBy string `json:"disapproved_by" validate:"required"`
	Reason        string `json:"reason"         validate:"required"`
}

func (h *AdmissionHandler) Disapprove(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid admission id"})
	}
	var req disapproveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	if err := h.uc.Disapprove(c.Request().Context(), id, req.DisapprovedBy, req.Reason); err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "disapproved"})
}

// RegenerateCredential deletes and re-mints the admission's credential,
// returning the fresh one-time password.
func (h *AdmissionHandler) RegenerateCredential(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid admission id"})
	}
	dto, err := h.uc.Regenerate(c.Request().Context(), id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}
