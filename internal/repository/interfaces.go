package repository

import (
	"context"

	"github.com/rcoelho/marketplace-api/internal/domain"
)

// ProductFilter holds the optional list predicates. Zero values impose no
// constraint; set fields are AND-composed.
type ProductFilter struct {
	Search string
	Status string
}

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	// ListByOwner returns the owner's products with the category name joined,
	// newest first.
	ListByOwner(ctx context.Context, ownerID uint, filter ProductFilter) ([]*domain.Product, error)
	// GetOwned fetches a product only when it belongs to ownerID.
	GetOwned(ctx context.Context, id, ownerID uint) (*domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	// DeleteOwned removes the product when owned by ownerID and reports the
	// number of rows affected.
	DeleteOwned(ctx context.Context, id, ownerID uint) (int64, error)
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]*domain.Category, error)
}

type Repositories struct {
	User     UserRepository
	Product  ProductRepository
	Category CategoryRepository
}
