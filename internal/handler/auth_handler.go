package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"beingiitian/internal/auth"
	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
	"beingiitian/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	cookies     *auth.CookieManager
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService, cookies *auth.CookieManager) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// StudentPayload is the student variant of the registration body.
type StudentPayload struct {
	CurrentClass string   `json:"current_class"`
	School       string   `json:"school"`
	Board        string   `json:"board"`
	TargetExam   string   `json:"target_exam"`
	TargetYear   int      `json:"target_year"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Pincode      string   `json:"pincode"`
	ParentName   string   `json:"parent_name"`
	ParentPhone  string   `json:"parent_phone"`
	ParentEmail  string   `json:"parent_email" validate:"omitempty,email"`
	LearningMode string   `json:"learning_mode"`
	Subjects     []string `json:"subjects"`
	HearAboutUs  string   `json:"hear_about_us"`
}

// MentorPayload is the mentor variant of the registration body.
type MentorPayload struct {
	Institution    string   `json:"institution"`
	Degree         string   `json:"degree"`
	Specialization []string `json:"specialization"`
	GraduationYear int      `json:"graduation_year"`
	JEERank        *int     `json:"jee_rank"`
	Experience     string   `json:"experience"`
	Bio            string   `json:"bio"`
}

// RegisterRequest represents a registration request. The Student/Mentor
// blocks are role variants; only the one matching Role is consulted.
type RegisterRequest struct {
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	FullName    string          `json:"full_name" validate:"required"`
	Phone       string          `json:"phone"`
	Role        model.Role      `json:"role" validate:"omitempty,oneof=STUDENT MENTOR ADMIN"`
	DateOfBirth string          `json:"date_of_birth"`
	Gender      string          `json:"gender"`
	Student     *StudentPayload `json:"student"`
	Mentor      *MentorPayload  `json:"mentor"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a user with its role profile, issues a session token, and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}

	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, apperrors.ErrorResponse{
			Error: "date_of_birth must be YYYY-MM-DD",
			Code:  "VALIDATION_FAILED",
		})
	}

	input := service.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		FullName:    req.FullName,
		Phone:       req.Phone,
		Role:        role,
		DateOfBirth: dob,
		Gender:      parseGender(req.Gender),
	}
	if req.Student != nil {
		input.Student = studentSignup(req.Student)
	}
	if req.Mentor != nil {
		input.Mentor = mentorSignup(req.Mentor)
	}

	user, token, err := h.authService.Register(c.Request().Context(), input)
	if err != nil {
		return serviceError(err)
	}

	h.cookies.Set(c, token)

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "user registered successfully",
		User:    user,
		Token:   token,
	})
}

// Login godoc
// @Summary Login
// @Description Verifies credentials, records the login time, and sets the session cookie.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, token, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return serviceError(err)
	}

	h.cookies.Set(c, token)

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "login successful",
		User:    user,
		Token:   token,
	})
}

// Logout godoc
// @Summary Logout
// @Description Clears the session cookie. Succeeds whether or not a session exists.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.cookies.Clear(c)
	return c.JSON(http.StatusOK, MessageResponse{Message: "logged out successfully"})
}

// Me godoc
// @Summary Current user
// @Description Returns the caller's full record, password hash excluded.
// @Tags auth
// @Produce json
// @Success 200 {object} model.User
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	claims := auth.CurrentClaims(c)
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
			Error: "not authenticated",
			Code:  "UNAUTHENTICATED",
		})
	}

	user, err := h.authService.Me(c.Request().Context(), claims.UserID)
	if err != nil {
		return serviceError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

func studentSignup(p *StudentPayload) *service.StudentSignup {
	return &service.StudentSignup{
		CurrentClass: p.CurrentClass,
		School:       p.School,
		Board:        p.Board,
		TargetExam:   p.TargetExam,
		TargetYear:   p.TargetYear,
		Address:      p.Address,
		City:         p.City,
		State:        p.State,
		Pincode:      p.Pincode,
		ParentName:   p.ParentName,
		ParentPhone:  p.ParentPhone,
		ParentEmail:  p.ParentEmail,
		LearningMode: p.LearningMode,
		Subjects:     p.Subjects,
		HearAboutUs:  p.HearAboutUs,
	}
}

func mentorSignup(p *MentorPayload) *service.MentorSignup {
	return &service.MentorSignup{
		Institution:    p.Institution,
		Degree:         p.Degree,
		Specialization: p.Specialization,
		GraduationYear: p.GraduationYear,
		JEERank:        p.JEERank,
		Experience:     p.Experience,
		Bio:            p.Bio,
	}
}
