package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/example/productr/internal/models"
	"github.com/example/productr/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db *gorm.DB
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(db *gorm.DB) *OrderHandler {
	return &OrderHandler{db: db}
}

type orderItemRequest struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

type createOrderRequest struct {
	User            string             `json:"user"`
	Items           []orderItemRequest `json:"items"`
	ShippingAddress string             `json:"shippingAddress"`
	PaymentMethod   string             `json:"paymentMethod"`
}

// CreateOrder validates every line item against current stock, captures unit
// prices, decrements stock and persists the order. Validation happens for all
// items before any stock is touched; the per-item decrements themselves are
// independent writes with no cross-item atomicity.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.User == "" {
		return fiber.NewError(fiber.StatusBadRequest, "User ID is required")
	}
	userID, err := uuid.Parse(req.User)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "User ID is invalid")
	}
	if len(req.Items) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "At least one item is required")
	}
	for _, item := range req.Items {
		if item.Product == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Product ID is required")
		}
		if item.Quantity < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Quantity must be at least 1")
		}
	}

	// Validate all items and compute the total before mutating stock.
	totalAmount := decimal.Zero
	items := make([]models.OrderItem, 0, len(req.Items))
	for _, item := range req.Items {
		productID, err := uuid.Parse(item.Product)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Product %s not found", item.Product))
		}

		var product models.Product
		if err := h.db.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("Product %s not found", item.Product))
			}
			return err
		}

		if product.Stock < item.Quantity {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Insufficient stock for %s", product.Name))
		}

		lineTotal := product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		totalAmount = totalAmount.Add(lineTotal)

		items = append(items, models.OrderItem{
			ProductID: productID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	// Decrement stock per item. These are separate writes; a failure part way
	// through leaves earlier decrements applied (no compensation).
	for _, item := range items {
		if err := h.db.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity)).Error; err != nil {
			return err
		}
	}

	order := models.Order{
		UserID:          userID,
		Items:           items,
		TotalAmount:     totalAmount,
		OrderStatus:     models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	}
	if order.PaymentMethod == "" {
		order.PaymentMethod = "cod"
	}

	if err := h.db.Create(&order).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Order created successfully",
		"order":   order,
	})
}

// ListOrders returns orders newest-first, optionally filtered by owning user,
// with referenced user and product fields resolved.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{})

	if user := c.Query("user"); user != "" {
		userID, err := uuid.Parse(user)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid user filter")
		}
		query = query.Where("user_id = ?", userID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("User").Preload("Items.Product").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order with full user and product records.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("User").Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateOrderRequest struct {
	OrderStatus   string `json:"orderStatus"`
	PaymentStatus string `json:"paymentStatus"`
}

// UpdateOrder applies a partial patch restricted to the two status fields.
func (h *OrderHandler) UpdateOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if req.OrderStatus != "" {
		if !models.ValidOrderStatus(req.OrderStatus) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid order status")
		}
		updates["order_status"] = req.OrderStatus
	}
	if req.PaymentStatus != "" {
		if !models.ValidPaymentStatus(req.PaymentStatus) {
			return fiber.NewError(fiber.StatusBadRequest, "invalid payment status")
		}
		updates["payment_status"] = req.PaymentStatus
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return err
	}

	if len(updates) > 0 {
		if err := h.db.Model(&order).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := h.db.Preload("User").Preload("Items.Product").
		First(&order, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order updated successfully",
		"order":   order,
	})
}

// DeleteOrder removes an order. Unless the order was already cancelled, each
// line item's quantity is restored to its product's stock first; cancelled
// orders are assumed restocked and are deleted as-is.
func (h *OrderHandler) DeleteOrder(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return err
	}

	if order.OrderStatus != models.OrderStatusCancelled {
		for _, item := range order.Items {
			if err := h.db.Model(&models.Product{}).
				Where("id = ?", item.ProductID).
				UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
				return err
			}
		}
	}

	if err := h.db.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if err := h.db.Delete(&order).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}
