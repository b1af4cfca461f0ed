package service

import (
	"github.com/rcoelho/marketplace-api/internal/config"
	"github.com/rcoelho/marketplace-api/internal/events"
	"github.com/rcoelho/marketplace-api/internal/repository"
)

type Services struct {
	Auth     *AuthService
	Product  *ProductService
	Category *CategoryService
}

func NewServices(repos *repository.Repositories, publisher *events.Publisher, cfg *config.Config) *Services {
	return &Services{
		Auth:     NewAuthService(repos.User, cfg),
		Product:  NewProductService(repos.Product, publisher),
		Category: NewCategoryService(repos.Category),
	}
}
