package handlers

import (
	"log"
	"net/http"

	"github.com/rcoelho/marketplace-api/internal/api/httpjson"
	"github.com/rcoelho/marketplace-api/internal/domain"
	"github.com/rcoelho/marketplace-api/internal/service"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context())
	if err != nil {
		log.Printf("ERROR [category.List] failed to list categories: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to list categories")
		return
	}

	if categories == nil {
		categories = []*domain.Category{}
	}
	httpjson.Write(w, http.StatusOK, categories)
}
