package repository

import (
	"context"

	"gorm.io/gorm"
)

// Transactor hands out request-scoped handles to the store. Repositories take
// the handle as their first argument so a usecase decides what runs inside one
// transaction.
type Transactor interface {
	Conn(ctx context.Context) *gorm.DB
	WithinTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}
