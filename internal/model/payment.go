package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PaymentStatus tracks the lifecycle of a payment order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

// PaymentItemType identifies what a payment buys.
type PaymentItemType string

const (
	PaymentItemCourse PaymentItemType = "COURSE"
)

// Payment is a gateway order placeholder. Gateway integration is pending;
// records move from PENDING to COMPLETED through the verify endpoint.
type Payment struct {
	ID               uuid.UUID       `json:"id" gorm:"type:char(36);primaryKey"`
	StudentID        uuid.UUID       `json:"student_id" gorm:"type:char(36);not null;index"`
	Amount           decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	Currency         string          `json:"currency" gorm:"size:10;default:'INR'"`
	Status           PaymentStatus   `json:"status" gorm:"size:20;not null;index"`
	ItemType         PaymentItemType `json:"item_type" gorm:"size:20;not null"`
	ItemID           uuid.UUID       `json:"item_id" gorm:"type:char(36);not null"`
	Description      string          `json:"description" gorm:"size:500"`
	GatewayOrderID   string          `json:"gateway_order_id,omitempty" gorm:"size:255"`
	GatewayPaymentID string          `json:"gateway_payment_id,omitempty" gorm:"size:255"`
	GatewaySignature string          `json:"-" gorm:"size:255"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// BeforeCreate sets the UUID before inserting the record.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
