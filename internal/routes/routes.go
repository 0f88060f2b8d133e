package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/productr/internal/config"
	"github.com/example/productr/internal/handlers"
	"github.com/example/productr/internal/middleware"
	"github.com/example/productr/internal/otp"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, otpService *otp.Service) {
	userHandler := handlers.NewUserHandler(db, cfg, otpService)
	productHandler := handlers.NewProductHandler(db)
	orderHandler := handlers.NewOrderHandler(db)

	api := app.Group("/api")

	api.Get("/health", handlers.Health)

	users := api.Group("/users")
	users.Post("/register", userHandler.Register)
	users.Post("/send-otp", userHandler.SendOTP)
	users.Post("/verify-otp", userHandler.VerifyOTP)
	users.Get("/me", middleware.AuthMiddleware(cfg), userHandler.Me)

	products := api.Group("/products")
	products.Get("/", productHandler.ListProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	orders := api.Group("/orders")
	orders.Post("/", orderHandler.CreateOrder)
	orders.Get("/", orderHandler.ListOrders)
	orders.Get("/:id", orderHandler.GetOrder)
	orders.Put("/:id", orderHandler.UpdateOrder)
	orders.Delete("/:id", orderHandler.DeleteOrder)
}
