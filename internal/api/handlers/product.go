package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rcoelho/marketplace-api/internal/api/httpjson"
	"github.com/rcoelho/marketplace-api/internal/api/middleware"
	"github.com/rcoelho/marketplace-api/internal/domain"
	"github.com/rcoelho/marketplace-api/internal/repository"
	"github.com/rcoelho/marketplace-api/internal/service"
	"github.com/rcoelho/marketplace-api/internal/storage"
)

// maxUploadMemory caps the in-memory part of multipart parsing; larger image
// files spill to temp files.
const maxUploadMemory = 10 << 20

type ProductHandler struct {
	productService *service.ProductService
	store          *storage.DiskStore
}

func NewProductHandler(productService *service.ProductService, store *storage.DiskStore) *ProductHandler {
	return &ProductHandler{productService: productService, store: store}
}

// productForm is the multipart field set shared by create and update.
type productForm struct {
	Name        string
	Description string
	PriceRaw    string
	Price       float64
	Status      string
	CategoryRaw string
	CategoryID  uint
	ImageURL    *string
}

func (h *ProductHandler) parseForm(w http.ResponseWriter, r *http.Request) (*productForm, bool) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid multipart form")
		return nil, false
	}

	form := &productForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		PriceRaw:    r.FormValue("price"),
		Status:      r.FormValue("status"),
		CategoryRaw: r.FormValue("categoryId"),
	}
	form.Price, _ = strconv.ParseFloat(form.PriceRaw, 64)
	if categoryID, err := strconv.ParseUint(form.CategoryRaw, 10, 64); err == nil {
		form.CategoryID = uint(categoryID)
	}

	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		imageURL, err := h.store.Save(file, header.Filename)
		if err != nil {
			log.Printf("ERROR [product.parseForm] failed to store image: %v", err)
			httpjson.Error(w, http.StatusInternalServerError, "Failed to store image")
			return nil, false
		}
		form.ImageURL = &imageURL
	} else if !errors.Is(err, http.ErrMissingFile) {
		httpjson.Error(w, http.StatusBadRequest, "Invalid image upload")
		return nil, false
	}

	return form, true
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	if form.Name == "" || form.PriceRaw == "" || form.CategoryRaw == "" {
		httpjson.Error(w, http.StatusBadRequest, "Name, price and category are required")
		return
	}

	product, err := h.productService.Create(r.Context(), identity, service.CreateProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Status:      form.Status,
		CategoryID:  form.CategoryID,
		ImageURL:    form.ImageURL,
	})
	if err != nil {
		log.Printf("ERROR [product.Create] failed to create product: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	httpjson.Write(w, http.StatusCreated, product)
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	filter := repository.ProductFilter{
		Search: r.URL.Query().Get("search"),
		Status: r.URL.Query().Get("status"),
	}

	products, err := h.productService.List(r.Context(), identity, filter)
	if err != nil {
		log.Printf("ERROR [product.List] failed to list products: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to list products")
		return
	}

	if products == nil {
		products = []*domain.Product{}
	}
	httpjson.Write(w, http.StatusOK, products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Get(r.Context(), identity, id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("ERROR [product.Get] failed to get product: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to get product")
		return
	}

	httpjson.Write(w, http.StatusOK, product)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	form, ok := h.parseForm(w, r)
	if !ok {
		return
	}

	product, err := h.productService.Update(r.Context(), identity, id, service.UpdateProductInput{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Status:      form.Status,
		CategoryID:  form.CategoryID,
		ImageURL:    form.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("ERROR [product.Update] failed to update product: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	httpjson.Write(w, http.StatusOK, product)
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.productService.Delete(r.Context(), identity, id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			httpjson.Error(w, http.StatusNotFound, "Product not found")
			return
		}
		log.Printf("ERROR [product.Delete] failed to delete product: %v", err)
		httpjson.Error(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseID reads the {id} URL param. A non-numeric id can never match a
// product, so it gets the same 404 as a missing one.
func parseID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpjson.Error(w, http.StatusNotFound, "Product not found")
		return 0, false
	}
	return uint(id), true
}
