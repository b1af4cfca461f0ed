package postgres

import (
	"github.com/rcoelho/marketplace-api/internal/domain"
	"github.com/rcoelho/marketplace-api/internal/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// defaultCategories seeds the read-only category table on first start. The
// API exposes no way to create categories.
var defaultCategories = []string{
	"Eletrônicos",
	"Móveis",
	"Roupas",
	"Livros",
	"Esportes",
	"Outros",
}

func NewConnection(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
		// Surface unique-constraint violations as gorm.ErrDuplicatedKey so
		// duplicate emails are detected at insert time, not by a racy
		// pre-check.
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	if err := seedCategories(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Product{},
	)
}

func seedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&domain.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := make([]domain.Category, 0, len(defaultCategories))
	for _, name := range defaultCategories {
		categories = append(categories, domain.Category{Name: name})
	}
	return db.Create(&categories).Error
}

func NewRepositories(db *gorm.DB) *repository.Repositories {
	return &repository.Repositories{
		User:     NewUserRepository(db),
		Product:  NewProductRepository(db),
		Category: NewCategoryRepository(db),
	}
}
