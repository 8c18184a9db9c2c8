package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"beingiitian/internal/auth"
	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
	"beingiitian/internal/repository"
)

const bcryptCost = 10

// StudentSignup carries the student-specific registration fields.
type StudentSignup struct {
	CurrentClass string
	School       string
	Board        string
	TargetExam   string
	TargetYear   int
	Address      string
	City         string
	State        string
	Pincode      string
	ParentName   string
	ParentPhone  string
	ParentEmail  string
	LearningMode string
	Subjects     []string
	HearAboutUs  string
}

// MentorSignup carries the mentor-specific registration fields.
type MentorSignup struct {
	Institution    string
	Degree         string
	Specialization []string
	GraduationYear int
	JEERank        *int
	Experience     string
	Bio            string
}

// RegisterInput is the role-variant registration payload. Exactly one of
// Student/Mentor may be set, and it must match Role; ADMIN registrations
// carry no extra fields.
type RegisterInput struct {
	Email       string
	Password    string
	FullName    string
	Phone       string
	Role        model.Role
	DateOfBirth *time.Time
	Gender      *model.Gender
	Student     *StudentSignup
	Mentor      *MentorSignup
}

// AuthService handles registration, login, and session introspection.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (user *model.User, token string, err error)
	Login(ctx context.Context, email, password string) (user *model.User, token string, err error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{userRepo: userRepo, jwtService: jwtService}
}

// Register creates a user plus its role profile and issues a session token.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*model.User, string, error) {
	email := NormalizeEmail(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, "", apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: string(hashed),
		FullName:     input.FullName,
		Role:         input.Role,
		DateOfBirth:  input.DateOfBirth,
		Gender:       input.Gender,
	}
	attachProfile(user, input)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration may win the unique index race
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, "", apperrors.ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Login verifies credentials, touches the last-login timestamp, and issues a
// session token. Unknown email and wrong password are indistinguishable to
// the caller.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		// only a missing user is bad credentials; anything else is an
		// infrastructure failure and must not read as a 401
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", apperrors.ErrInvalidCredentials
	}

	if err := s.userRepo.TouchLastLogin(ctx, user.ID); err != nil {
		return nil, "", fmt.Errorf("touch last login: %w", err)
	}

	token, err := s.jwtService.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}

	return user, token, nil
}

// Me returns the caller's full record including its role profile.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// attachProfile sets the profile relation matching the role. The switch is
// exhaustive over model.Role; handlers reject unknown roles before this runs.
func attachProfile(user *model.User, input RegisterInput) {
	switch input.Role {
	case model.RoleStudent:
		profile := &model.StudentProfile{TargetExam: "JEE", TargetYear: time.Now().Year() + 1}
		if st := input.Student; st != nil {
			profile.CurrentClass = st.CurrentClass
			profile.School = st.School
			profile.Board = st.Board
			if st.TargetExam != "" {
				profile.TargetExam = st.TargetExam
			}
			if st.TargetYear != 0 {
				profile.TargetYear = st.TargetYear
			}
			profile.Address = st.Address
			profile.City = st.City
			profile.State = st.State
			profile.Pincode = st.Pincode
			profile.ParentName = st.ParentName
			profile.ParentPhone = st.ParentPhone
			profile.ParentEmail = st.ParentEmail
			profile.LearningMode = strings.ToUpper(st.LearningMode)
			profile.Subjects = st.Subjects
			profile.HearAboutUs = st.HearAboutUs
		}
		user.StudentProfile = profile
	case model.RoleMentor:
		profile := &model.MentorProfile{GraduationYear: time.Now().Year()}
		if m := input.Mentor; m != nil {
			profile.Institution = m.Institution
			profile.Degree = m.Degree
			profile.Specialization = m.Specialization
			if m.GraduationYear != 0 {
				profile.GraduationYear = m.GraduationYear
			}
			profile.JEERank = m.JEERank
			profile.Experience = m.Experience
			profile.Bio = m.Bio
		}
		user.MentorProfile = profile
	case model.RoleAdmin:
		user.AdminProfile = &model.AdminProfile{Permissions: []string{}}
	}
}

// NormalizeEmail lowercases and trims an email so uniqueness is
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
