package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"beingiitian/internal/cache"
	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
	"beingiitian/internal/repository"
)

const (
	statsCacheKey = "admin:stats"
	statsCacheTTL = time.Minute
)

// AdminCreateUserInput is the payload for admin-initiated user creation.
// Admins can only mint students and mentors, never other admins.
type AdminCreateUserInput struct {
	Email       string
	FullName    string
	Phone       string
	Password    string
	Role        model.Role
	DateOfBirth *time.Time
	Gender      *model.Gender
	Student     *StudentSignup
	Mentor      *MentorSignup
}

// UpdateUserInput carries partial identity and profile updates. Nil fields
// are left untouched. Email and role are deliberately absent: neither is
// mutable after creation.
type UpdateUserInput struct {
	FullName    *string
	Phone       *string
	DateOfBirth *time.Time
	Gender      *model.Gender
	Password    *string
	Student     *StudentSignup
	Mentor      *MentorSignup
}

// Stats aggregates the platform-wide counts for the admin dashboard.
type Stats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalStudents int64 `json:"total_students"`
	TotalMentors  int64 `json:"total_mentors"`
	TotalCourses  int64 `json:"total_courses"`
}

// UserService exposes the admin-scoped user management operations.
type UserService interface {
	ListUsers(ctx context.Context) ([]model.UserSummary, error)
	CreateUser(ctx context.Context, input AdminCreateUserInput) (*model.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*model.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*model.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}

type userService struct {
	userRepo   repository.UserRepository
	courseRepo repository.CourseRepository
	cache      *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(userRepo repository.UserRepository, courseRepo repository.CourseRepository, cache *cache.Client) UserService {
	return &userService{userRepo: userRepo, courseRepo: courseRepo, cache: cache}
}

func (s *userService) ListUsers(ctx context.Context) ([]model.UserSummary, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

// CreateUser provisions a student or mentor on behalf of an admin. Accounts
// created this way are pre-verified.
func (s *userService) CreateUser(ctx context.Context, input AdminCreateUserInput) (*model.User, error) {
	email := NormalizeEmail(input.Email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:            uuid.New(),
		Email:         email,
		Phone:         input.Phone,
		PasswordHash:  string(hashed),
		FullName:      input.FullName,
		Role:          input.Role,
		DateOfBirth:   input.DateOfBirth,
		Gender:        input.Gender,
		EmailVerified: true,
		PhoneVerified: true,
	}
	attachProfile(user, RegisterInput{
		Role:    input.Role,
		Student: input.Student,
		Mentor:  input.Mentor,
	})

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.invalidateStats(ctx)
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateUser applies partial updates to identity fields and to the profile
// matching the user's role. The role itself never changes.
func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateUserInput) (*model.User, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.DateOfBirth != nil {
		user.DateOfBirth = input.DateOfBirth
	}
	if input.Gender != nil {
		user.Gender = input.Gender
	}
	if input.Password != nil {
		hashed, err := bcrypt.GenerateFromPassword([]byte(*input.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if user.Role == model.RoleStudent && input.Student != nil && user.StudentProfile != nil {
		applyStudentUpdate(user.StudentProfile, input.Student)
		if err := s.userRepo.UpdateStudentProfile(ctx, user.StudentProfile); err != nil {
			return nil, fmt.Errorf("update student profile: %w", err)
		}
	}
	if user.Role == model.RoleMentor && input.Mentor != nil && user.MentorProfile != nil {
		applyMentorUpdate(user.MentorProfile, input.Mentor)
		if err := s.userRepo.UpdateMentorProfile(ctx, user.MentorProfile); err != nil {
			return nil, fmt.Errorf("update mentor profile: %w", err)
		}
	}

	return user, nil
}

// DeleteUser removes a user and its profile. Admin accounts are refused no
// matter who asks.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return err
	}

	if user.Role == model.RoleAdmin {
		return apperrors.ErrAdminUndeletable
	}

	if err := s.userRepo.Delete(ctx, user); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.invalidateStats(ctx)
	return nil
}

// Stats returns platform totals, cached briefly to keep the dashboard cheap.
func (s *userService) Stats(ctx context.Context) (*Stats, error) {
	if data, _ := s.cache.Get(ctx, statsCacheKey); data != nil {
		var cached Stats
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	stats := &Stats{}
	var err error
	if stats.TotalUsers, err = s.userRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	if stats.TotalStudents, err = s.userRepo.CountByRole(ctx, model.RoleStudent); err != nil {
		return nil, fmt.Errorf("count students: %w", err)
	}
	if stats.TotalMentors, err = s.userRepo.CountByRole(ctx, model.RoleMentor); err != nil {
		return nil, fmt.Errorf("count mentors: %w", err)
	}
	if stats.TotalCourses, err = s.courseRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}

	if payload, err := json.Marshal(stats); err == nil {
		_ = s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL)
	}
	return stats, nil
}

func (s *userService) invalidateStats(ctx context.Context) {
	_ = s.cache.Delete(ctx, statsCacheKey)
}

func applyStudentUpdate(profile *model.StudentProfile, in *StudentSignup) {
	if in.CurrentClass != "" {
		profile.CurrentClass = in.CurrentClass
	}
	if in.School != "" {
		profile.School = in.School
	}
	if in.Board != "" {
		profile.Board = in.Board
	}
	if in.TargetExam != "" {
		profile.TargetExam = in.TargetExam
	}
	if in.TargetYear != 0 {
		profile.TargetYear = in.TargetYear
	}
	if in.Address != "" {
		profile.Address = in.Address
	}
	if in.City != "" {
		profile.City = in.City
	}
	if in.State != "" {
		profile.State = in.State
	}
	if in.Pincode != "" {
		profile.Pincode = in.Pincode
	}
	if in.ParentName != "" {
		profile.ParentName = in.ParentName
	}
	if in.ParentPhone != "" {
		profile.ParentPhone = in.ParentPhone
	}
	if in.ParentEmail != "" {
		profile.ParentEmail = in.ParentEmail
	}
	if in.LearningMode != "" {
		profile.LearningMode = in.LearningMode
	}
	if in.Subjects != nil {
		profile.Subjects = in.Subjects
	}
	if in.HearAboutUs != "" {
		profile.HearAboutUs = in.HearAboutUs
	}
}

func applyMentorUpdate(profile *model.MentorProfile, in *MentorSignup) {
	if in.Institution != "" {
		profile.Institution = in.Institution
	}
	if in.Degree != "" {
		profile.Degree = in.Degree
	}
	if in.Specialization != nil {
		profile.Specialization = in.Specialization
	}
	if in.GraduationYear != 0 {
		profile.GraduationYear = in.GraduationYear
	}
	if in.JEERank != nil {
		profile.JEERank = in.JEERank
	}
	if in.Experience != "" {
		profile.Experience = in.Experience
	}
	if in.Bio != "" {
		profile.Bio = in.Bio
	}
}
