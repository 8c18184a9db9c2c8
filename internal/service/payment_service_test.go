package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "beingiitian/internal/errors"
	"beingiitian/internal/model"
)

func paymentDeps() (*MockUserRepository, *MockCourseRepository, *MockPaymentRepository, *MockEnrollmentRepository) {
	return new(MockUserRepository), new(MockCourseRepository), new(MockPaymentRepository), new(MockEnrollmentRepository)
}

func TestPaymentService_CreateOrder(t *testing.T) {
	userID := uuid.New()
	courseID := uuid.New()
	profileID := uuid.New()
	amount := decimal.NewFromInt(4999)

	t.Run("pending order for student", func(t *testing.T) {
		users, courses, payments, enrollments := paymentDeps()
		courses.On("FindByID", mock.Anything, courseID).
			Return(&model.Course{ID: courseID, Title: "JEE Physics"}, nil)
		users.On("FindByID", mock.Anything, userID).Return(&model.User{
			ID:             userID,
			Role:           model.RoleStudent,
			StudentProfile: &model.StudentProfile{ID: profileID, UserID: userID},
		}, nil)
		payments.On("Create", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)

		svc := NewPaymentService(users, courses, payments, enrollments)
		payment, err := svc.CreateOrder(context.Background(), userID, courseID, amount)

		require.NoError(t, err)
		assert.Equal(t, model.PaymentPending, payment.Status)
		assert.Equal(t, profileID, payment.StudentID)
		assert.Equal(t, "Payment for JEE Physics", payment.Description)
		assert.True(t, amount.Equal(payment.Amount))
	})

	t.Run("unknown course", func(t *testing.T) {
		users, courses, payments, enrollments := paymentDeps()
		courses.On("FindByID", mock.Anything, courseID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPaymentService(users, courses, payments, enrollments)
		_, err := svc.CreateOrder(context.Background(), userID, courseID, amount)
		assert.ErrorIs(t, err, apperrors.ErrCourseNotFound)
	})

	t.Run("caller without student profile", func(t *testing.T) {
		users, courses, payments, enrollments := paymentDeps()
		courses.On("FindByID", mock.Anything, courseID).Return(&model.Course{ID: courseID}, nil)
		users.On("FindByID", mock.Anything, userID).
			Return(&model.User{ID: userID, Role: model.RoleMentor}, nil)

		svc := NewPaymentService(users, courses, payments, enrollments)
		_, err := svc.CreateOrder(context.Background(), userID, courseID, amount)
		assert.ErrorIs(t, err, apperrors.ErrStudentProfileMissing)
	})
}

func TestPaymentService_Verify(t *testing.T) {
	paymentID := uuid.New()
	studentID := uuid.New()
	courseID := uuid.New()

	t.Run("completes and enrolls", func(t *testing.T) {
		users, courses, payments, enrollments := paymentDeps()
		payments.On("FindByID", mock.Anything, paymentID).Return(&model.Payment{
			ID:        paymentID,
			StudentID: studentID,
			Status:    model.PaymentPending,
			ItemType:  model.PaymentItemCourse,
			ItemID:    courseID,
		}, nil)
		payments.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
			return p.Status == model.PaymentCompleted && p.PaidAt != nil
		})).Return(nil)
		enrollments.On("Create", mock.Anything, mock.MatchedBy(func(e *model.Enrollment) bool {
			return e.StudentID == studentID && e.CourseID == courseID && e.Status == model.EnrollmentActive
		})).Return(nil)

		svc := NewPaymentService(users, courses, payments, enrollments)
		payment, err := svc.Verify(context.Background(), VerifyPaymentInput{
			PaymentID:        paymentID,
			GatewayOrderID:   "order_123",
			GatewayPaymentID: "pay_456",
		})

		require.NoError(t, err)
		assert.Equal(t, model.PaymentCompleted, payment.Status)
		assert.Equal(t, "order_123", payment.GatewayOrderID)
		enrollments.AssertExpectations(t)
	})

	t.Run("completed payment is not re-verified", func(t *testing.T) {
		users, courses, payments, enrollments := paymentDeps()
		paidAt := time.Now().Add(-time.Hour)
		payments.On("FindByID", mock.Anything, paymentID).Return(&model.Payment{
			ID:             paymentID,
			StudentID:      studentID,
			Status:         model.PaymentCompleted,
			ItemType:       model.PaymentItemCourse,
			ItemID:         courseID,
			GatewayOrderID: "order_123",
			PaidAt:         &paidAt,
		}, nil)

		svc := NewPaymentService(users, courses, payments, enrollments)
		payment, err := svc.Verify(context.Background(), VerifyPaymentInput{
			PaymentID:      paymentID,
			GatewayOrderID: "order_999",
		})

		require.NoError(t, err)
		assert.Equal(t, "order_123", payment.GatewayOrderID, "stored identifiers survive a replay")
		payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		enrollments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("pending replay tolerates existing enrollment", func(t *testing.T) {
		users, courses, payments, enrollments := paymentDeps()
		payments.On("FindByID", mock.Anything, paymentID).Return(&model.Payment{
			ID:        paymentID,
			StudentID: studentID,
			Status:    model.PaymentPending,
			ItemType:  model.PaymentItemCourse,
			ItemID:    courseID,
		}, nil)
		payments.On("Update", mock.Anything, mock.AnythingOfType("*model.Payment")).Return(nil)
		enrollments.On("Create", mock.Anything, mock.AnythingOfType("*model.Enrollment")).
			Return(gorm.ErrDuplicatedKey)

		svc := NewPaymentService(users, courses, payments, enrollments)
		_, err := svc.Verify(context.Background(), VerifyPaymentInput{PaymentID: paymentID})
		assert.NoError(t, err)
	})

	t.Run("unknown payment", func(t *testing.T) {
		users, courses, payments, enrollments := paymentDeps()
		payments.On("FindByID", mock.Anything, paymentID).Return(nil, gorm.ErrRecordNotFound)

		svc := NewPaymentService(users, courses, payments, enrollments)
		_, err := svc.Verify(context.Background(), VerifyPaymentInput{PaymentID: paymentID})
		assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
	})
}

func TestPaymentService_ListEnrollments(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()

	users, courses, payments, enrollments := paymentDeps()
	users.On("FindByID", mock.Anything, userID).Return(&model.User{
		ID:             userID,
		Role:           model.RoleStudent,
		StudentProfile: &model.StudentProfile{ID: profileID, UserID: userID},
	}, nil)
	enrollments.On("ListByStudent", mock.Anything, profileID).Return([]model.Enrollment{
		{StudentID: profileID, Status: model.EnrollmentActive},
	}, nil)

	svc := NewPaymentService(users, courses, payments, enrollments)
	list, err := svc.ListEnrollments(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
