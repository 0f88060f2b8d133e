package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/productr/internal/models"
)

func TestCreateProduct(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodPost, "/api/products/", map[string]interface{}{
		"name":        "Wireless Headphones",
		"description": "Noise cancelling",
		"price":       "99.99",
		"category":    "Electronics",
		"stock":       50,
		"images":      []string{"https://img.example/1.jpg", "https://img.example/2.jpg"},
		"featured":    true,
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)

	var product models.Product
	require.NoError(t, env.db.First(&product, "name = ?", "Wireless Headphones").Error)
	assert.True(t, product.Price.Equal(decimal.RequireFromString("99.99")))
	assert.Equal(t, 50, product.Stock)
	assert.True(t, product.Featured)
	// First image doubles as the cover image.
	assert.Equal(t, "https://img.example/1.jpg", product.Image)
	assert.Len(t, product.Images, 2)
}

func TestCreateProduct_Validation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name string
		body map[string]interface{}
	}{
		{"missing name", map[string]interface{}{
			"description": "d", "price": "1.00", "category": "c", "stock": 1}},
		{"missing description", map[string]interface{}{
			"name": "n", "price": "1.00", "category": "c", "stock": 1}},
		{"missing price", map[string]interface{}{
			"name": "n", "description": "d", "category": "c", "stock": 1}},
		{"negative stock", map[string]interface{}{
			"name": "n", "description": "d", "price": "1.00", "category": "c", "stock": -1}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, _ := env.request(t, http.MethodPost, "/api/products/", tc.body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestListProducts_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	env.seedProduct(t, "Older", "1.00", 1)
	newest := env.seedProduct(t, "Newer", "2.00", 2)
	require.NoError(t, env.db.Model(&newest).UpdateColumn("created_at", newest.CreatedAt.Add(time.Second)).Error)

	status, body := env.request(t, http.MethodGet, "/api/products/", nil)
	require.Equal(t, http.StatusOK, status)

	data := body["data"].([]interface{})
	require.Len(t, data, 2)
	assert.Equal(t, "Newer", data[0].(map[string]interface{})["name"])
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Mouse", "10.00", 5)

	status, body := env.request(t, http.MethodGet, "/api/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Mouse", body["data"].(map[string]interface{})["name"])

	status, _ = env.request(t, http.MethodGet, "/api/products/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestUpdateProduct_PartialPatch(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Mouse", "10.00", 5)

	status, _ := env.request(t, http.MethodPut, "/api/products/"+product.ID.String(), map[string]interface{}{
		"price":     "12.50",
		"published": true,
	})
	require.Equal(t, http.StatusOK, status)

	var updated models.Product
	require.NoError(t, env.db.First(&updated, "id = ?", product.ID).Error)
	assert.True(t, updated.Price.Equal(decimal.RequireFromString("12.50")))
	assert.True(t, updated.Published)
	// Untouched fields keep their values.
	assert.Equal(t, "Mouse", updated.Name)
	assert.Equal(t, 5, updated.Stock)
}

func TestDeleteProduct(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Mouse", "10.00", 5)

	status, _ := env.request(t, http.MethodDelete, "/api/products/"+product.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)

	var count int64
	require.NoError(t, env.db.Model(&models.Product{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	status, _ = env.request(t, http.MethodDelete, "/api/products/"+product.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}
