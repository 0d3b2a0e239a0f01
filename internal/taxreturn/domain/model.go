// Package domain contains the tax return model and lifecycle rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/defterhane/defterhane/internal/rates"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TaxReturn is a periodic declaration for one tax type. One live return
// per owner, type and period: a soft-deleted return frees its slot. The
// postgres schema enforces this with a partial unique index over
// non-deleted rows; the service enforces it transactionally everywhere
// else, so the gorm-level index stays non-unique.
type TaxReturn struct {
	ID      snowflake.ID  `gorm:"primaryKey" json:"id"`
	OwnerID snowflake.ID  `gorm:"not null;index:idx_tax_returns_owner_type_period" json:"owner_id"`
	Type    rates.TaxType `gorm:"type:text;not null;index:idx_tax_returns_owner_type_period" json:"type"`
	Period  string        `gorm:"type:text;not null;index:idx_tax_returns_owner_type_period" json:"period"`

	TaxableAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"taxable_amount"`
	TaxAmount     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"tax_amount"`
	Status        ReturnStatus    `gorm:"type:text;not null;default:'DRAFT'" json:"status"`

	SubmittedAt *time.Time `json:"submitted_at,omitempty"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (TaxReturn) TableName() string { return "tax_returns" }
