// Package domain contains the payment model and lifecycle rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment records money received against an invoice. Multiple payments
// may reference the same invoice; only COMPLETED payments count toward
// the invoice total.
type Payment struct {
	ID        snowflake.ID  `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID  `gorm:"not null;index" json:"owner_id"`
	InvoiceID *snowflake.ID `gorm:"index" json:"invoice_id,omitempty"`

	Amount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Method string          `gorm:"type:text" json:"method,omitempty"`
	Status PaymentStatus   `gorm:"type:text;not null;default:'PENDING'" json:"status"`

	PaidAt *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Payment) TableName() string { return "payments" }
