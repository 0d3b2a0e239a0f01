// Package domain contains the invoice models and lifecycle rules.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invoice represents a sales invoice. Totals are derived from the line
// set and overwritten whenever the lines are replaced.
type Invoice struct {
	ID         snowflake.ID  `gorm:"primaryKey" json:"id"`
	OwnerID    snowflake.ID  `gorm:"not null;index" json:"owner_id"`
	CustomerID snowflake.ID  `gorm:"index" json:"customer_id"`
	Number     string        `gorm:"type:text;not null" json:"number"`
	Status     InvoiceStatus `gorm:"type:text;not null;default:'DRAFT'" json:"status"`
	Currency   string        `gorm:"type:text;not null;default:'TRY'" json:"currency"`

	Subtotal      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"subtotal"`
	DiscountTotal decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"discount_total"`
	VATTotal      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"vat_total"`
	Total         decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`

	IssueDate *time.Time `json:"issue_date,omitempty"`
	DueDate   *time.Time `json:"due_date,omitempty"`

	// Metadata carries opaque upstream identifiers (ETTN, GİB envelope
	// ids) that this service never interprets.
	Metadata datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`

	Lines []InvoiceLine `gorm:"foreignKey:InvoiceID" json:"lines,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the database table name.
func (Invoice) TableName() string { return "invoices" }

// InvoiceLine is one taxable line on an invoice. Derived amounts are
// stored alongside the inputs so the persisted invoice is self-contained.
type InvoiceLine struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	OwnerID   snowflake.ID `gorm:"not null;index" json:"owner_id"`
	InvoiceID snowflake.ID `gorm:"not null;index" json:"invoice_id"`

	Description  string          `gorm:"type:text" json:"description"`
	Quantity     decimal.Decimal `gorm:"type:numeric(18,3);not null" json:"quantity"`
	UnitPrice    decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	VATRate      decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"vat_rate"`
	DiscountRate decimal.Decimal `gorm:"type:numeric(6,4);not null" json:"discount_rate"`

	Subtotal       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"subtotal"`
	DiscountAmount decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"discount_amount"`
	VATAmount      decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"vat_amount"`
	Total          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"total"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (InvoiceLine) TableName() string { return "invoice_lines" }
