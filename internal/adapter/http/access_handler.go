package http

import (
	"net/http"

	"admissions-backend/internal/usecase/access"

	"github.com/labstack/echo/v4"
)

type AccessHandler struct{ uc *access.Usecase }

func NewAccessHandler(uc *access.Usecase) *AccessHandler { return &AccessHandler{uc: uc} }

type checkAdmissionReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CheckAdmission authenticates the applicant and returns their admission
// status. Auth failures are uniform: no hint whether the username exists.
func (h *AccessHandler) CheckAdmission(c echo.Context) error {
	var req checkAdmissionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
	}
	dto, err := h.uc.Status(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// RecoverCredential is the administrative escrow read; the route must sit
// behind the org's staff auth.
func (h *AccessHandler) RecoverCredential(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid admission id"})
	}
	username, plaintext, err := h.uc.RecoverPlaintext(c.Request().Context(), id)
	if err != nil {
		return writeDomainErr(c, err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"username": username,
		"password": plaintext,
	})
}
