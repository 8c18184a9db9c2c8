package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. A user's role is assigned at
// creation and never changes afterwards.
type Role string

const (
	RoleStudent Role = "STUDENT"
	RoleMentor  Role = "MENTOR"
	RoleAdmin   Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleMentor, RoleAdmin:
		return true
	}
	return false
}

// Gender values mirror the registration form options.
type Gender string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// User represents an authenticable identity. Exactly one of the profile
// relations is populated, matching Role.
type User struct {
	ID            uuid.UUID  `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone         string     `json:"phone" gorm:"size:20"`
	PasswordHash  string     `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	FullName      string     `json:"full_name" gorm:"size:255;not null"`
	Role          Role       `json:"role" gorm:"size:20;not null;index"`
	DateOfBirth   *time.Time `json:"date_of_birth,omitempty"`
	Gender        *Gender    `json:"gender,omitempty" gorm:"size:20"`
	EmailVerified bool       `json:"email_verified" gorm:"default:false"`
	PhoneVerified bool       `json:"phone_verified" gorm:"default:false"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`

	StudentProfile *StudentProfile `json:"student_profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	MentorProfile  *MentorProfile  `json:"mentor_profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	AdminProfile   *AdminProfile   `json:"admin_profile,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID before inserting the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSummary is the trimmed view returned by admin listings.
type UserSummary struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone"`
	Role          Role      `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedAt     time.Time `json:"created_at"`
}

// Summary projects the user into its listing view.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		PhoneVerified: u.PhoneVerified,
		CreatedAt:     u.CreatedAt,
	}
}
