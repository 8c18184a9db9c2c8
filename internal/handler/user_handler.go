package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
	"beingiitian/internal/service"
)

// UserHandler handles the admin-scoped user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// AdminCreateUserRequest is the admin user-creation payload. Role is limited
// to STUDENT or MENTOR; admins are only minted by the seed command.
type AdminCreateUserRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	FullName    string          `json:"full_name" validate:"required"`
	Phone       string          `json:"phone" validate:"required"`
	Password    string          `json:"password" validate:"required,min=8"`
	Role        model.Role      `json:"role" validate:"required,oneof=STUDENT MENTOR"`
	DateOfBirth string          `json:"date_of_birth"`
	Gender      string          `json:"gender"`
	Student     *StudentPayload `json:"student"`
	Mentor      *MentorPayload  `json:"mentor"`
}

// UpdateUserRequest carries partial updates; absent fields stay unchanged.
// Email and role are not accepted here.
type UpdateUserRequest struct {
	FullName    *string         `json:"full_name"`
	Phone       *string         `json:"phone"`
	DateOfBirth string          `json:"date_of_birth"`
	Gender      string          `json:"gender"`
	Password    *string         `json:"password" validate:"omitempty,min=8"`
	Student     *StudentPayload `json:"student"`
	Mentor      *MentorPayload  `json:"mentor"`
}

// ListUsers godoc
// @Summary List users
// @Tags admin
// @Produce json
// @Success 200 {object} map[string][]model.UserSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /admin/users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.userService.ListUsers(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// CreateUser godoc
// @Summary Create a student or mentor
// @Tags admin
// @Accept json
// @Produce json
// @Param request body AdminCreateUserRequest true "User data"
// @Success 201 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/users [post]
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req AdminCreateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "date_of_birth must be YYYY-MM-DD",
			Code:  "VALIDATION_FAILED",
		})
	}

	input := service.AdminCreateUserInput{
		Email:       req.Email,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Password:    req.Password,
		Role:        req.Role,
		DateOfBirth: dob,
		Gender:      parseGender(req.Gender),
	}
	if req.Student != nil {
		input.Student = studentSignup(req.Student)
	}
	if req.Mentor != nil {
		input.Mentor = mentorSignup(req.Mentor)
	}

	user, err := h.userService.CreateUser(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": string(req.Role) + " created successfully",
		"user":    user,
	})
}

// GetUser godoc
// @Summary Get a user
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [get]
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetUser(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// UpdateUser godoc
// @Summary Update a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body UpdateUserRequest true "Fields to update"
// @Success 200 {object} model.User
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [put]
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "date_of_birth must be YYYY-MM-DD",
			Code:  "VALIDATION_FAILED",
		})
	}

	input := service.UpdateUserInput{
		FullName:    req.FullName,
		Phone:       req.Phone,
		DateOfBirth: dob,
		Gender:      parseGender(req.Gender),
		Password:    req.Password,
	}
	if req.Student != nil {
		input.Student = studentSignup(req.Student)
	}
	if req.Mentor != nil {
		input.Mentor = mentorSignup(req.Mentor)
	}

	user, err := h.userService.UpdateUser(c.Request().Context(), id, input)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "user updated successfully",
		"user":    user,
	})
}

// DeleteUser godoc
// @Summary Delete a user
// @Description Deletes a user and its profile. Admin accounts are refused.
// @Tags admin
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/users/{id} [delete]
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.userService.DeleteUser(c.Request().Context(), id); err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "user deleted successfully"})
}

// Stats godoc
// @Summary Platform stats
// @Tags admin
// @Produce json
// @Success 200 {object} service.Stats
// @Failure 401 {object} errors.ErrorResponse
// @Router /admin/stats [get]
func (h *UserHandler) Stats(c echo.Context) error {
	stats, err := h.userService.Stats(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, stats)
}
