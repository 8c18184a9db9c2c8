package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StudentProfile holds the academic metadata of a STUDENT user.
type StudentProfile struct {
	ID           uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	UserID       uuid.UUID                   `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	CurrentClass string                      `json:"current_class" gorm:"size:50"`
	School       string                      `json:"school" gorm:"size:255"`
	Board        string                      `json:"board" gorm:"size:50"`
	TargetExam   string                      `json:"target_exam" gorm:"size:50"`
	TargetYear   int                         `json:"target_year"`
	Address      string                      `json:"address" gorm:"size:500"`
	City         string                      `json:"city" gorm:"size:100"`
	State        string                      `json:"state" gorm:"size:100"`
	Pincode      string                      `json:"pincode" gorm:"size:10"`
	ParentName   string                      `json:"parent_name" gorm:"size:255"`
	ParentPhone  string                      `json:"parent_phone" gorm:"size:20"`
	ParentEmail  string                      `json:"parent_email" gorm:"size:255"`
	LearningMode string                      `json:"learning_mode" gorm:"size:20"`
	Subjects     datatypes.JSONSlice[string] `json:"subjects"`
	HearAboutUs  string                      `json:"hear_about_us" gorm:"size:100"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}

// MentorProfile holds the credentials of a MENTOR user.
type MentorProfile struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	UserID         uuid.UUID                   `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Institution    string                      `json:"institution" gorm:"size:255"`
	Degree         string                      `json:"degree" gorm:"size:255"`
	Specialization datatypes.JSONSlice[string] `json:"specialization"`
	GraduationYear int                         `json:"graduation_year"`
	JEERank        *int                        `json:"jee_rank,omitempty"`
	Experience     string                      `json:"experience" gorm:"size:500"`
	Bio            string                      `json:"bio" gorm:"size:2000"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
}

// AdminProfile holds the capability tags of an ADMIN user.
type AdminProfile struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	UserID      uuid.UUID                   `json:"user_id" gorm:"type:char(36);uniqueIndex;not null"`
	Department  string                      `json:"department" gorm:"size:255"`
	Permissions datatypes.JSONSlice[string] `json:"permissions"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// BeforeCreate sets the UUID before inserting the record.
func (p *StudentProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate sets the UUID before inserting the record.
func (p *MentorProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// BeforeCreate sets the UUID before inserting the record.
func (p *AdminProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
