package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
	"beingiitian/internal/repository"
)

// VerifyPaymentInput carries the gateway callback identifiers. Until the
// gateway account is provisioned these are stored verbatim and trusted.
type VerifyPaymentInput struct {
	PaymentID        uuid.UUID
	GatewayOrderID   string
	GatewayPaymentID string
	GatewaySignature string
}

// PaymentService handles payment orders and the enrollments they unlock.
type PaymentService interface {
	CreateOrder(ctx context.Context, userID, courseID uuid.UUID, amount decimal.Decimal) (*model.Payment, error)
	Verify(ctx context.Context, input VerifyPaymentInput) (*model.Payment, error)
	ListEnrollments(ctx context.Context, userID uuid.UUID) ([]model.Enrollment, error)
}

type paymentService struct {
	userRepo       repository.UserRepository
	courseRepo     repository.CourseRepository
	paymentRepo    repository.PaymentRepository
	enrollmentRepo repository.EnrollmentRepository
}

// NewPaymentService builds a PaymentService over its repositories.
func NewPaymentService(
	userRepo repository.UserRepository,
	courseRepo repository.CourseRepository,
	paymentRepo repository.PaymentRepository,
	enrollmentRepo repository.EnrollmentRepository,
) PaymentService {
	return &paymentService{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		paymentRepo:    paymentRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// CreateOrder opens a PENDING payment for a course on behalf of the calling
// student.
func (s *paymentService) CreateOrder(ctx context.Context, userID, courseID uuid.UUID, amount decimal.Decimal) (*model.Payment, error) {
	course, err := s.courseRepo.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}

	profile, err := s.studentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	payment := &model.Payment{
		ID:          uuid.New(),
		StudentID:   profile.ID,
		Amount:      amount,
		Currency:    "INR",
		Status:      model.PaymentPending,
		ItemType:    model.PaymentItemCourse,
		ItemID:      course.ID,
		Description: fmt.Sprintf("Payment for %s", course.Title),
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return payment, nil
}

// Verify marks a payment COMPLETED and enrolls the student in the purchased
// course.
//
// TODO: check the gateway HMAC signature against GatewayOrderID and
// GatewayPaymentID once the Razorpay credentials are provisioned; until then
// this endpoint trusts the caller.
func (s *paymentService) Verify(ctx context.Context, input VerifyPaymentInput) (*model.Payment, error) {
	payment, err := s.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("find payment: %w", err)
	}

	// a replayed callback for an already-completed payment is a no-op; the
	// stored gateway identifiers are never overwritten
	if payment.Status == model.PaymentCompleted {
		return payment, nil
	}

	now := time.Now()
	payment.Status = model.PaymentCompleted
	payment.GatewayOrderID = input.GatewayOrderID
	payment.GatewayPaymentID = input.GatewayPaymentID
	payment.GatewaySignature = input.GatewaySignature
	payment.PaidAt = &now

	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, fmt.Errorf("update payment: %w", err)
	}

	if payment.ItemType == model.PaymentItemCourse {
		enrollment := &model.Enrollment{
			ID:        uuid.New(),
			StudentID: payment.StudentID,
			CourseID:  payment.ItemID,
			Status:    model.EnrollmentActive,
			PaymentID: &payment.ID,
		}
		if err := s.enrollmentRepo.Create(ctx, enrollment); err != nil {
			// duplicate enrollment from a replayed verify call is harmless
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, fmt.Errorf("create enrollment: %w", err)
			}
		}
	}

	return payment, nil
}

// ListEnrollments returns the calling student's enrollments, newest first.
func (s *paymentService) ListEnrollments(ctx context.Context, userID uuid.UUID) ([]model.Enrollment, error) {
	profile, err := s.studentProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.enrollmentRepo.ListByStudent(ctx, profile.ID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return enrollments, nil
}

func (s *paymentService) studentProfile(ctx context.Context, userID uuid.UUID) (*model.StudentProfile, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if user.StudentProfile == nil {
		return nil, apperrors.ErrStudentProfileMissing
	}
	return user.StudentProfile, nil
}
