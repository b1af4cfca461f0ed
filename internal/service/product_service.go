package service

import (
	"context"
	"errors"
	"log"

	"github.com/rcoelho/marketplace-api/internal/domain"
	"github.com/rcoelho/marketplace-api/internal/events"
	"github.com/rcoelho/marketplace-api/internal/repository"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned both when the product does not exist and
// when it belongs to another user, so ownership is never leaked.
var ErrProductNotFound = errors.New("product not found")

type ProductService struct {
	productRepo repository.ProductRepository
	publisher   *events.Publisher
}

func NewProductService(productRepo repository.ProductRepository, publisher *events.Publisher) *ProductService {
	return &ProductService{productRepo: productRepo, publisher: publisher}
}

type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Status      string
	CategoryID  uint
	ImageURL    *string
}

type UpdateProductInput struct {
	Name        string
	Description string
	Price       float64
	Status      string
	CategoryID  uint
	// ImageURL is nil when no new image was uploaded; the stored reference is
	// kept in that case.
	ImageURL *string
}

func (s *ProductService) Create(ctx context.Context, identity *domain.Identity, input CreateProductInput) (*domain.Product, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusActive
	}

	product := &domain.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Status:      status,
		ImageURL:    input.ImageURL,
		UserID:      identity.UserID,
		CategoryID:  input.CategoryID,
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ProductCreated, product)
	return product, nil
}

func (s *ProductService) List(ctx context.Context, identity *domain.Identity, filter repository.ProductFilter) ([]*domain.Product, error) {
	return s.productRepo.ListByOwner(ctx, identity.UserID, filter)
}

func (s *ProductService) Get(ctx context.Context, identity *domain.Identity, id uint) (*domain.Product, error) {
	product, err := s.productRepo.GetOwned(ctx, id, identity.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *ProductService) Update(ctx context.Context, identity *domain.Identity, id uint, input UpdateProductInput) (*domain.Product, error) {
	product, err := s.Get(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.Description = input.Description
	product.Price = input.Price
	product.Status = input.Status
	product.CategoryID = input.CategoryID
	if input.ImageURL != nil {
		product.ImageURL = input.ImageURL
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	s.publish(ctx, events.ProductUpdated, product)
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, identity *domain.Identity, id uint) error {
	affected, err := s.productRepo.DeleteOwned(ctx, id, identity.UserID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}

	s.publish(ctx, events.ProductDeleted, &domain.Product{ID: id, UserID: identity.UserID})
	return nil
}

// publish is best-effort: event delivery never fails the request.
func (s *ProductService) publish(ctx context.Context, eventType string, product *domain.Product) {
	event := events.ProductEvent{
		Type:      eventType,
		ProductID: product.ID,
		UserID:    product.UserID,
		Name:      product.Name,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("ERROR [product.publish] failed to publish %s event: %v", eventType, err)
	}
}
