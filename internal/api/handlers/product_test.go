package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/rcoelho/marketplace-api/internal/domain"
	"github.com/rcoelho/marketplace-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type productResponse struct {
	ID           uint    `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	ImageURL     *string `json:"imageUrl"`
	UserID       uint    `json:"userId"`
	CategoryID   uint    `json:"categoryId"`
	CategoryName string  `json:"categoryName"`
}

func productURL(ts *testutil.TestServer, id uint) string {
	return ts.URL(fmt.Sprintf("/products/%d", id))
}

func TestProductHandler_Create(t *testing.T) {
	ts := testutil.NewTestServer(t)
	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)
	token := testutil.RegisterAndLogin(t, ts, "Ana", testutil.UniqueEmail("create"), "Secret1!")

	t.Run("with image", func(t *testing.T) {
		fields := map[string]string{
			"name":        "Violão Yamaha",
			"description": "cordas novas",
			"price":       "450.00",
			"categoryId":  fmt.Sprint(category.ID),
		}
		resp := testutil.DoMultipart(t, http.MethodPost, ts.URL("/products"), fields, "violao.jpg", []byte("fake-jpeg-bytes"), token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var product productResponse
		testutil.AssertJSONResponse(t, resp, &product)
		assert.NotZero(t, product.ID)
		assert.Equal(t, "Violão Yamaha", product.Name)
		assert.Equal(t, 450.00, product.Price)
		assert.Equal(t, domain.StatusActive, product.Status, "status defaults to ativo")
		require.NotNil(t, product.ImageURL)
		assert.Regexp(t, `^/uploads/\d+\.jpg$`, *product.ImageURL)

		// The stored image is served back without auth.
		imgResp, err := http.Get(ts.URL(*product.ImageURL))
		require.NoError(t, err)
		defer imgResp.Body.Close()
		require.Equal(t, http.StatusOK, imgResp.StatusCode)
		data, err := io.ReadAll(imgResp.Body)
		require.NoError(t, err)
		assert.Equal(t, []byte("fake-jpeg-bytes"), data)
	})

	t.Run("without image", func(t *testing.T) {
		fields := map[string]string{
			"name":       "Cadeira",
			"price":      "80",
			"status":     domain.StatusInactive,
			"categoryId": fmt.Sprint(category.ID),
		}
		resp := testutil.DoMultipart(t, http.MethodPost, ts.URL("/products"), fields, "", nil, token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var product productResponse
		testutil.AssertJSONResponse(t, resp, &product)
		assert.Nil(t, product.ImageURL)
		assert.Equal(t, domain.StatusInactive, product.Status)
	})

	t.Run("missing required fields", func(t *testing.T) {
		for _, fields := range []map[string]string{
			{"price": "10", "categoryId": fmt.Sprint(category.ID)},
			{"name": "x", "categoryId": fmt.Sprint(category.ID)},
			{"name": "x", "price": "10"},
		} {
			resp := testutil.DoMultipart(t, http.MethodPost, ts.URL("/products"), fields, "", nil, token)
			resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		resp := testutil.DoMultipart(t, http.MethodPost, ts.URL("/products"), map[string]string{"name": "x"}, "", nil, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		resp := testutil.DoMultipart(t, http.MethodPost, ts.URL("/products"), map[string]string{"name": "x"}, "", nil, "garbage.token.here")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestProductHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)
	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)

	ownerA, passwordA := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	ownerB, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	bike := testutil.NewProductBuilder().
		WithOwner(ownerA).WithCategory(category).
		WithName("Bicicleta Caloi").WithStatus(domain.StatusActive).
		Build(t, ts.DB.DB)
	sold := testutil.NewProductBuilder().
		WithOwner(ownerA).WithCategory(category).
		WithName("bicicleta infantil").WithStatus(domain.StatusSold).
		Build(t, ts.DB.DB)
	testutil.NewProductBuilder().
		WithOwner(ownerB).WithCategory(category).
		WithName("Bicicleta alheia").
		Build(t, ts.DB.DB)

	token := loginAs(t, ts, ownerA.Email, passwordA)

	list := func(t *testing.T, query string) []productResponse {
		t.Helper()
		resp := testutil.DoJSON(t, http.MethodGet, ts.URL("/products"+query), nil, token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var products []productResponse
		testutil.AssertJSONResponse(t, resp, &products)
		return products
	}

	t.Run("owner sees only their products, newest first", func(t *testing.T) {
		products := list(t, "")
		require.Len(t, products, 2)
		assert.Equal(t, sold.ID, products[0].ID)
		assert.Equal(t, bike.ID, products[1].ID)
		assert.Equal(t, category.Name, products[0].CategoryName)
	})

	t.Run("search and status filters compose", func(t *testing.T) {
		products := list(t, "?search=BICICLETA&status="+domain.StatusSold)
		require.Len(t, products, 1)
		assert.Equal(t, sold.ID, products[0].ID)
	})

	t.Run("no match yields an empty array", func(t *testing.T) {
		products := list(t, "?search=piano")
		assert.Empty(t, products)
	})
}

func TestProductHandler_GetUpdateDelete(t *testing.T) {
	ts := testutil.NewTestServer(t)
	category := testutil.NewCategoryBuilder().Build(t, ts.DB.DB)

	owner, ownerPassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	intruder, intruderPassword := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	product := testutil.NewProductBuilder().
		WithOwner(owner).WithCategory(category).
		WithName("Mesa de jantar").
		WithImageURL("/uploads/1700000000000.png").
		Build(t, ts.DB.DB)

	ownerToken := loginAs(t, ts, owner.Email, ownerPassword)
	intruderToken := loginAs(t, ts, intruder.Email, intruderPassword)

	t.Run("owner gets the product", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, productURL(ts, product.ID), nil, ownerToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got productResponse
		testutil.AssertJSONResponse(t, resp, &got)
		assert.Equal(t, product.Name, got.Name)
	})

	t.Run("another account gets 404, never 403", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, productURL(ts, product.ID), nil, intruderToken)
		defer resp.Body.Close()
		testutil.AssertErrorResponse(t, resp, http.StatusNotFound, "Product not found")
	})

	t.Run("update without new image keeps the old one", func(t *testing.T) {
		fields := map[string]string{
			"name":       "Mesa de jantar 6 lugares",
			"price":      "600",
			"status":     domain.StatusActive,
			"categoryId": fmt.Sprint(category.ID),
		}
		resp := testutil.DoMultipart(t, http.MethodPut, productURL(ts, product.ID), fields, "", nil, ownerToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated productResponse
		testutil.AssertJSONResponse(t, resp, &updated)
		assert.Equal(t, "Mesa de jantar 6 lugares", updated.Name)
		require.NotNil(t, updated.ImageURL)
		assert.Equal(t, "/uploads/1700000000000.png", *updated.ImageURL)
	})

	t.Run("update with new image replaces it", func(t *testing.T) {
		fields := map[string]string{
			"name":       "Mesa de jantar 6 lugares",
			"price":      "600",
			"status":     domain.StatusActive,
			"categoryId": fmt.Sprint(category.ID),
		}
		resp := testutil.DoMultipart(t, http.MethodPut, productURL(ts, product.ID), fields, "mesa.png", []byte("new-image"), ownerToken)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var updated productResponse
		testutil.AssertJSONResponse(t, resp, &updated)
		require.NotNil(t, updated.ImageURL)
		assert.NotEqual(t, "/uploads/1700000000000.png", *updated.ImageURL)
	})

	t.Run("update by another account is 404", func(t *testing.T) {
		fields := map[string]string{
			"name":       "hijack",
			"price":      "1",
			"categoryId": fmt.Sprint(category.ID),
		}
		resp := testutil.DoMultipart(t, http.MethodPut, productURL(ts, product.ID), fields, "", nil, intruderToken)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("delete by another account is 404", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodDelete, productURL(ts, product.ID), nil, intruderToken)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("owner delete is 204, repeat is 404", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodDelete, productURL(ts, product.ID), nil, ownerToken)
		resp.Body.Close()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)

		again := testutil.DoJSON(t, http.MethodDelete, productURL(ts, product.ID), nil, ownerToken)
		defer again.Body.Close()
		assert.Equal(t, http.StatusNotFound, again.StatusCode)

		gone := testutil.DoJSON(t, http.MethodGet, productURL(ts, product.ID), nil, ownerToken)
		defer gone.Body.Close()
		assert.Equal(t, http.StatusNotFound, gone.StatusCode)
	})
}

func TestCategoryHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewCategoryBuilder().WithName("Roupas").Build(t, ts.DB.DB)
	testutil.NewCategoryBuilder().WithName("Eletrônicos").Build(t, ts.DB.DB)

	t.Run("requires authentication", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodGet, ts.URL("/categories"), nil, "")
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ordered by name for any authenticated account", func(t *testing.T) {
		token := testutil.RegisterAndLogin(t, ts, "Ana", testutil.UniqueEmail("cat"), "Secret1!")

		resp := testutil.DoJSON(t, http.MethodGet, ts.URL("/categories"), nil, token)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var categories []struct {
			ID   uint   `json:"id"`
			Name string `json:"name"`
		}
		testutil.AssertJSONResponse(t, resp, &categories)
		require.Len(t, categories, 2)
		assert.Equal(t, "Eletrônicos", categories[0].Name)
		assert.Equal(t, "Roupas", categories[1].Name)
	})
}

func loginAs(t *testing.T, ts *testutil.TestServer, email, password string) string {
	t.Helper()

	resp := testutil.DoJSON(t, http.MethodPost, ts.URL("/login"), map[string]string{
		"email":    email,
		"password": password,
	}, "")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "login failed")

	var result struct {
		Token string `json:"token"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	return result.Token
}
