package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/delivery/backend/internal/domain/catalog"
	"github.com/delivery/backend/internal/domain/ordering"
)

// GormCheckoutUnitOfWork runs checkout mutations inside a single database
// transaction. Every repository handed to fn is bound to that transaction,
// so a returned error rolls back stock, order and cart writes together
type GormCheckoutUnitOfWork struct {
	db *Database
}

// NewGormCheckoutUnitOfWork creates a new GormCheckoutUnitOfWork
func NewGormCheckoutUnitOfWork(db *Database) *GormCheckoutUnitOfWork {
	return &GormCheckoutUnitOfWork{db: db}
}

// Execute runs fn atomically with transaction-bound repositories
func (u *GormCheckoutUnitOfWork) Execute(ctx context.Context, fn func(repos ordering.CheckoutRepositories) error) error {
	return u.db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := ordering.CheckoutRepositories{
			Products:  &lockedProductRepository{tx: tx},
			Orders:    NewGormOrderRepository(tx),
			CartItems: NewGormCartItemRepository(tx),
		}
		return fn(repos)
	})
}

var _ ordering.CheckoutUnitOfWork = (*GormCheckoutUnitOfWork)(nil)

// lockedProductRepository reads product rows under FOR UPDATE so concurrent
// checkouts serialize on the same stock. Only valid inside a transaction
type lockedProductRepository struct {
	tx *gorm.DB
}

// FindByIDsForUpdate loads products by ID with row-level locks.
// SQLite has no row locks; its single-writer transactions give the same
// guarantee, so the locking clause is applied on PostgreSQL only
func (r *lockedProductRepository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}

	query := r.tx.WithContext(ctx)
	if r.tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var products []catalog.Product
	if err := query.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Save persists a locked product's mutated stock
func (r *lockedProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	return r.tx.WithContext(ctx).Save(product).Error
}

var _ ordering.LockedProductRepository = (*lockedProductRepository)(nil)
