package main

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	"github.com/example/productr/internal/config"
	"github.com/example/productr/internal/database"
	"github.com/example/productr/internal/mailer"
	"github.com/example/productr/internal/otp"
	"github.com/example/productr/internal/routes"
)

func main() {
	cfg := config.Load()
	db := database.Connect(cfg.DatabaseURL)

	var mail mailer.Mailer = mailer.LogMailer{}
	if cfg.SMTPUsername != "" {
		mail = mailer.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	}

	// Pending OTP codes live in-process unless a shared Redis is configured.
	var store otp.Store = otp.NewMemoryStore()
	if cfg.RedisAddr != "" {
		store = otp.NewRedisStore(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		log.Printf("using redis OTP store at %s", cfg.RedisAddr)
	}
	otpService := otp.NewService(store, mail, cfg.OTPExpires)

	app := fiber.New(fiber.Config{
		AppName: "Productr Backend",
	})

	app.Use(recover.New())
	app.Use(logger.New())

	routes.Register(app, db, cfg, otpService)

	log.Printf("Starting server on :%s", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("fiber.Listen error: %v", err)
	}
}
