package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrollmentStatus tracks whether a student still has access to a course.
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "ACTIVE"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentCancelled EnrollmentStatus = "CANCELLED"
)

// Enrollment links a student profile to a course, created when a course
// payment completes.
type Enrollment struct {
	ID        uuid.UUID        `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID uuid.UUID        `json:"student_id" gorm:"type:char(36);not null;index;uniqueIndex:idx_student_course"`
	CourseID  uuid.UUID        `json:"course_id" gorm:"type:char(36);not null;uniqueIndex:idx_student_course"`
	Status    EnrollmentStatus `json:"status" gorm:"size:20;not null"`
	PaymentID *uuid.UUID       `json:"payment_id,omitempty" gorm:"type:char(36)"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
