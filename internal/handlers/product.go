package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/productr/internal/models"
	"github.com/example/productr/internal/utils"
)

// ProductHandler manages product catalog endpoints.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

type productRequest struct {
	Name             *string          `json:"name"`
	Description      *string          `json:"description"`
	Price            *decimal.Decimal `json:"price"`
	MRP              *decimal.Decimal `json:"mrp"`
	SellingPrice     *decimal.Decimal `json:"sellingPrice"`
	Category         *string          `json:"category"`
	Brand            *string          `json:"brand"`
	Image            *string          `json:"image"`
	Images           []string         `json:"images"`
	Stock            *int             `json:"stock"`
	ExchangeEligible *bool            `json:"exchangeEligible"`
	Published        *bool            `json:"published"`
	Rating           *float64         `json:"rating"`
	NumReviews       *int             `json:"numReviews"`
	Featured         *bool            `json:"featured"`
}

// ListProducts returns the catalog newest-first.
func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)

	var total int64
	if err := h.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return err
	}

	var products []models.Product
	if err := h.db.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&products).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    products,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetProduct returns a single product by id.
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": product})
}

// CreateProduct adds a product to the catalog.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name == nil || *req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Product name is required")
	}
	if req.Description == nil || *req.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Description is required")
	}
	if req.Price == nil || req.Price.IsNegative() {
		return fiber.NewError(fiber.StatusBadRequest, "Price is required")
	}
	if req.Category == nil || *req.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Category is required")
	}
	if req.Stock == nil || *req.Stock < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Stock is required")
	}

	product := models.Product{
		Name:        *req.Name,
		Description: *req.Description,
		Price:       *req.Price,
		Category:    *req.Category,
		Stock:       *req.Stock,
		Images:      req.Images,
	}
	applyOptionalFields(&product, &req)
	if product.Image == "" && len(product.Images) > 0 {
		product.Image = product.Images[0]
	}

	if err := h.db.Create(&product).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct applies a partial update to an existing product.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return fiber.NewError(fiber.StatusBadRequest, "Price must not be negative")
		}
		product.Price = *req.Price
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stock must not be negative")
		}
		product.Stock = *req.Stock
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	applyOptionalFields(&product, &req)

	if err := h.db.Save(&product).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// DeleteProduct removes a product from the catalog.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	result := h.db.Delete(&models.Product{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Product deleted successfully",
	})
}

func applyOptionalFields(product *models.Product, req *productRequest) {
	if req.MRP != nil {
		product.MRP = *req.MRP
	}
	if req.SellingPrice != nil {
		product.SellingPrice = *req.SellingPrice
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Image != nil {
		product.Image = *req.Image
	}
	if req.ExchangeEligible != nil {
		product.ExchangeEligible = *req.ExchangeEligible
	}
	if req.Published != nil {
		product.Published = *req.Published
	}
	if req.Rating != nil {
		product.Rating = *req.Rating
	}
	if req.NumReviews != nil {
		product.NumReviews = *req.NumReviews
	}
	if req.Featured != nil {
		product.Featured = *req.Featured
	}
}
