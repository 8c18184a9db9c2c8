package handler

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
)

// MessageResponse is the body of plain acknowledgement responses.
type MessageResponse struct {
	Message string `json:"message"`
}

// serviceError translates a domain error into an echo HTTP error with the
// standard {error, code} body.
func serviceError(err error) *echo.HTTPError {
	he := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(he.StatusCode, he.ToErrorResponse())
}

// bindAndValidate binds the request body and runs struct validation,
// translating both failure modes to 400s.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(400, apperrors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(400, apperrors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_FAILED",
		})
	}
	return nil
}

// parseIDParam parses the :id path parameter as a UUID.
func parseIDParam(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(400, apperrors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return id, nil
}

// parseDate parses an optional YYYY-MM-DD field.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// parseGender maps free-form gender input onto the enum, e.g. "prefer not
// to say" becomes PREFER_NOT_TO_SAY.
func parseGender(value string) *model.Gender {
	if value == "" {
		return nil
	}
	g := model.Gender(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(value)), " ", "_"))
	return &g
}
