// Package repository provides a small generic gorm-backed store shared
// by the domain services.
package repository

import (
	"context"

	"gorm.io/gorm"
)

type Repository[T any] interface {
	// WithTrx rebinds the store to a transaction handle.
	WithTrx(tx *gorm.DB) Repository[T]

	Find(ctx context.Context, query *T) ([]*T, error)
	FindOne(ctx context.Context, query *T) (*T, error)
	Create(ctx context.Context, resource *T) error
	Save(ctx context.Context, resource *T) error
	Update(ctx context.Context, resourceID string, resource any) error
	Delete(ctx context.Context, resourceID string) error
	Count(ctx context.Context, query *T) (int64, error)
}
