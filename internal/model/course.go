package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course is a catalog entry. Only published courses are visible publicly.
type Course struct {
	ID             uuid.UUID                   `json:"id" gorm:"type:char(36);primaryKey"`
	Title          string                      `json:"title" gorm:"size:255;not null"`
	Slug           string                      `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description    string                      `json:"description" gorm:"size:2000;not null"`
	Subject        string                      `json:"subject" gorm:"size:100;not null"`
	Level          string                      `json:"level" gorm:"size:50;not null"`
	Price          decimal.Decimal             `json:"price" gorm:"type:decimal(10,2);not null"`
	Duration       int                         `json:"duration"`
	TotalLectures  int                         `json:"total_lectures"`
	InstructorName string                      `json:"instructor_name" gorm:"size:255;not null"`
	MentorID       *uuid.UUID                  `json:"mentor_id,omitempty" gorm:"type:char(36);index"`
	ThumbnailURL   string                      `json:"thumbnail_url,omitempty" gorm:"size:500"`
	Tags           datatypes.JSONSlice[string] `json:"tags"`
	IsPublished    bool                        `json:"is_published" gorm:"default:false;index"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`

	Mentor *MentorProfile `json:"mentor,omitempty" gorm:"foreignKey:MentorID"`
}

// BeforeCreate sets the UUID before inserting the record.
func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
