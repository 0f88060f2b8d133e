package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/productr/internal/config"
	"github.com/example/productr/internal/middleware"
	"github.com/example/productr/internal/models"
	"github.com/example/productr/internal/otp"
	"github.com/example/productr/internal/utils"
)

// UserHandler bundles dependencies for registration and OTP authentication.
type UserHandler struct {
	db  *gorm.DB
	cfg *config.Config
	otp *otp.Service
}

// NewUserHandler constructs a UserHandler.
func NewUserHandler(db *gorm.DB, cfg *config.Config, otpService *otp.Service) *UserHandler {
	return &UserHandler{db: db, cfg: cfg, otp: otpService}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Address  string `json:"address"`
}

// Register creates a new user account bound to an email or phone.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	phone := strings.TrimSpace(req.Phone)
	if email == "" && phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email or phone number is required")
	}

	var existing models.User
	err := h.db.Where("email = ? AND email <> ''", email).
		Or("phone = ? AND phone <> ''", phone).
		First(&existing).Error
	if err == nil {
		return fiber.NewError(fiber.StatusBadRequest, "User already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	user := models.User{
		Name:    req.Name,
		Email:   email,
		Phone:   phone,
		Address: req.Address,
		Role:    "user",
	}
	if user.Name == "" {
		user.Name = "User"
	}

	if req.Password != "" {
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to hash password")
		}
		user.PasswordHash = hash
	}

	if err := h.db.Create(&user).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"user":    user.Summary(),
	})
}

type sendOTPRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SendOTP generates a one-time code for the provided email or phone and
// dispatches it out-of-band.
func (h *UserHandler) SendOTP(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Email == "" && req.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email or phone number is required")
	}

	identifier, channel := req.Email, otp.ChannelEmail
	if identifier == "" {
		identifier, channel = req.Phone, otp.ChannelPhone
	}

	if err := h.otp.Send(c.Context(), identifier, channel); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send OTP")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "OTP sent successfully to " + channel,
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// VerifyOTP validates a submitted code, resolving (or creating) the user for
// the identifier and issuing a session token on success.
func (h *UserHandler) VerifyOTP(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.OTP == "" {
		return fiber.NewError(fiber.StatusBadRequest, "OTP is required")
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Phone
	}
	if identifier == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Email or phone is required")
	}

	if err := h.otp.Verify(c.Context(), identifier, req.OTP); err != nil {
		switch {
		case errors.Is(err, otp.ErrNotFound):
			return fiber.NewError(fiber.StatusBadRequest, "OTP not found or expired")
		case errors.Is(err, otp.ErrExpired):
			return fiber.NewError(fiber.StatusBadRequest, "OTP expired")
		case errors.Is(err, otp.ErrInvalidCode):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid OTP")
		default:
			return err
		}
	}

	user, err := h.resolveUser(req.Email, req.Phone)
	if err != nil {
		return err
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, user.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user.Summary(),
	})
}

// Me returns the authenticated user's public summary.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	var user models.User
	if err := h.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "user not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "user": user.Summary()})
}

// resolveUser looks up the user for a verified identifier, creating a minimal
// account on first login.
func (h *UserHandler) resolveUser(email, phone string) (*models.User, error) {
	var user models.User
	var err error

	if email != "" {
		err = h.db.Where("email = ?", email).First(&user).Error
	} else {
		err = h.db.Where("phone = ?", phone).First(&user).Error
	}
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user = models.User{Email: email, Phone: phone, Role: "user"}
	if email != "" {
		user.Name = strings.SplitN(email, "@", 2)[0]
	}
	if user.Name == "" {
		user.Name = "User"
	}

	if err := h.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
