package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/rcoelho/marketplace-api/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name     string
	email    string
	password string
	phone    string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:     fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("user_%s@test.local", suffix),
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

func (b *UserBuilder) WithPhone(phone string) *UserBuilder {
	b.phone = phone
	return b
}

// Build creates the user in the database and returns it with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Phone:        b.phone,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// CategoryBuilder creates test categories
type CategoryBuilder struct {
	name string
}

func NewCategoryBuilder() *CategoryBuilder {
	return &CategoryBuilder{
		name: fmt.Sprintf("category_%s", uuid.New().String()[:8]),
	}
}

func (b *CategoryBuilder) WithName(name string) *CategoryBuilder {
	b.name = name
	return b
}

func (b *CategoryBuilder) Build(t *testing.T, db *gorm.DB) *domain.Category {
	t.Helper()

	category := &domain.Category{Name: b.name}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create category: %v", err)
	}
	return category
}

// ProductBuilder creates test products
type ProductBuilder struct {
	name        string
	description string
	price       float64
	status      string
	imageURL    *string
	owner       *domain.User
	category    *domain.Category
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		name:        fmt.Sprintf("product_%s", uuid.New().String()[:8]),
		description: "test description",
		price:       99.90,
		status:      domain.StatusActive,
	}
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.name = name
	return b
}

func (b *ProductBuilder) WithPrice(price float64) *ProductBuilder {
	b.price = price
	return b
}

func (b *ProductBuilder) WithStatus(status string) *ProductBuilder {
	b.status = status
	return b
}

func (b *ProductBuilder) WithImageURL(url string) *ProductBuilder {
	b.imageURL = &url
	return b
}

func (b *ProductBuilder) WithOwner(owner *domain.User) *ProductBuilder {
	b.owner = owner
	return b
}

func (b *ProductBuilder) WithCategory(category *domain.Category) *ProductBuilder {
	b.category = category
	return b
}

func (b *ProductBuilder) Build(t *testing.T, db *gorm.DB) *domain.Product {
	t.Helper()

	if b.owner == nil {
		b.owner, _ = NewUserBuilder().Build(t, db)
	}
	if b.category == nil {
		b.category = NewCategoryBuilder().Build(t, db)
	}

	product := &domain.Product{
		Name:        b.name,
		Description: b.description,
		Price:       b.price,
		Status:      b.status,
		ImageURL:    b.imageURL,
		UserID:      b.owner.ID,
		CategoryID:  b.category.ID,
	}

	if err := db.Create(product).Error; err != nil {
		t.Fatalf("failed to create product: %v", err)
	}

	return product
}
