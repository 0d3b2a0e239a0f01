package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Customer is an invoice counterparty. TaxNumber holds the VKN (or TCKN
// for individuals) and TaxOffice the registering vergi dairesi.
type Customer struct {
	ID        snowflake.ID      `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID      `gorm:"not null;index" json:"owner_id"`
	Name      string            `gorm:"not null" json:"name"`
	TaxNumber string            `gorm:"column:tax_number" json:"tax_number,omitempty"`
	TaxOffice string            `gorm:"column:tax_office" json:"tax_office,omitempty"`
	Email     string            `gorm:"column:email" json:"email,omitempty"`
	Address   string            `gorm:"column:address" json:"address,omitempty"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb;not null;default:'{}'" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt    `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Customer) TableName() string { return "customers" }
