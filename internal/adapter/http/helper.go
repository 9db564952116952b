package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	appDomain "admissions-backend/internal/domain/application"
	credDomain "admissions-backend/internal/domain/credential"
	"admissions-backend/internal/usecase/access"

	"github.com/labstack/echo/v4"
)

// writeDomainErr maps domain errors to HTTP codes without leaking storage
// details to applicants.
func writeDomainErr(c echo.Context, err error) error {
	switch {
	case errors.Is(err, appDomain.ErrValidation):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	case errors.Is(err, appDomain.ErrNotFound), errors.Is(err, credDomain.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, appDomain.ErrInvalidTransition):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "this application was already decided"})
	case errors.Is(err, credDomain.ErrAlreadyExists):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: "credential already exists"})
	case errors.Is(err, credDomain.ErrEscrowDisabled):
		return c.JSON(http.StatusForbidden, ErrorResponse{Error: "credential recovery is disabled"})
	case errors.Is(err, access.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid username or password"})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "something went wrong, please try again"})
	}
}

func parseID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(c.Param("id")), 10, 64)
}

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
