package handlers

import (
	"context"
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/productr/internal/models"
	"github.com/example/productr/internal/otp"
)

func TestRegister(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodPost, "/api/users/register", map[string]interface{}{
		"name":     "John Doe",
		"email":    "john@example.com",
		"password": "password123",
		"address":  "123 Main St",
	})
	require.Equal(t, http.StatusCreated, status, "body: %v", body)

	var user models.User
	require.NoError(t, env.db.First(&user, "email = ?", "john@example.com").Error)
	assert.Equal(t, "John Doe", user.Name)
	assert.Equal(t, "user", user.Role)

	// Password is stored only as a hash.
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)
}

func TestRegister_RequiresEmailOrPhone(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodPost, "/api/users/register", map[string]interface{}{
		"name": "Nobody",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "Email or phone number is required")
}

func TestRegister_DuplicateIdentifier(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "John", "john@example.com", "")

	status, body := env.request(t, http.MethodPost, "/api/users/register", map[string]interface{}{
		"email": "john@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "User already exists")
}

func TestRegister_PhoneOnly(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodPost, "/api/users/register", map[string]interface{}{
		"phone": "1234567890",
	})
	require.Equal(t, http.StatusCreated, status)

	var user models.User
	require.NoError(t, env.db.First(&user, "phone = ?", "1234567890").Error)
	assert.Equal(t, "User", user.Name)
}

func TestSendOTP_CreatesRecord(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodPost, "/api/users/send-otp", map[string]interface{}{
		"email": "a@b.com",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["message"], "email")

	rec, err := env.store.Get(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), rec.Code)
}

func TestSendOTP_RequiresIdentifier(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodPost, "/api/users/send-otp", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestVerifyOTP_FullFlow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	status, _ := env.request(t, http.MethodPost, "/api/users/send-otp", map[string]interface{}{
		"email": "a@b.com",
	})
	require.Equal(t, http.StatusOK, status)

	rec, err := env.store.Get(ctx, "a@b.com")
	require.NoError(t, err)

	// Wrong code fails and the record survives.
	status, body := env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"email": "a@b.com",
		"otp":   wrongCode(rec.Code),
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "Invalid OTP")
	_, err = env.store.Get(ctx, "a@b.com")
	require.NoError(t, err)

	// The right code succeeds, consumes the record and issues a token.
	status, body = env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"email": "a@b.com",
		"otp":   rec.Code,
	})
	require.Equal(t, http.StatusOK, status, "body: %v", body)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	user := body["user"].(map[string]interface{})
	assert.Equal(t, "a@b.com", user["email"])
	assert.Equal(t, "a", user["name"], "name derived from email local part")

	_, err = env.store.Get(ctx, "a@b.com")
	assert.ErrorIs(t, err, otp.ErrNoRecord)

	// Replaying the consumed code fails.
	status, body = env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"email": "a@b.com",
		"otp":   rec.Code,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "OTP not found or expired")

	// The token authenticates against the protected profile endpoint.
	status, body = env.request(t, http.MethodGet, "/api/users/me", nil,
		map[string]string{"Authorization": "Bearer " + token})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "a@b.com", body["user"].(map[string]interface{})["email"])
}

func TestVerifyOTP_ExistingUserIsReused(t *testing.T) {
	env := newTestEnv(t)
	existing := env.seedUser(t, "Jane", "jane@example.com", "")

	require.NoError(t, env.store.Put(context.Background(), "jane@example.com", otp.Record{
		Code:      "123456",
		ExpiresAt: time.Now().Add(time.Minute),
		Channel:   otp.ChannelEmail,
	}, time.Minute))

	status, body := env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"email": "jane@example.com",
		"otp":   "123456",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, existing.ID.String(), body["user"].(map[string]interface{})["id"])

	var count int64
	require.NoError(t, env.db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestVerifyOTP_PhoneCreatesDefaultNamedUser(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.store.Put(context.Background(), "1234567890", otp.Record{
		Code:      "654321",
		ExpiresAt: time.Now().Add(time.Minute),
		Channel:   otp.ChannelPhone,
	}, time.Minute))

	status, body := env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"phone": "1234567890",
		"otp":   "654321",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User", body["user"].(map[string]interface{})["name"])
}

func TestVerifyOTP_Expired(t *testing.T) {
	env := newTestEnv(t)

	// Record past its expiry but still present in the store.
	require.NoError(t, env.store.Put(context.Background(), "a@b.com", otp.Record{
		Code:      "123456",
		ExpiresAt: time.Now().Add(-time.Minute),
		Channel:   otp.ChannelEmail,
	}, time.Minute))

	status, body := env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"email": "a@b.com",
		"otp":   "123456",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "OTP expired")

	// The stale record was removed.
	_, err := env.store.Get(context.Background(), "a@b.com")
	assert.ErrorIs(t, err, otp.ErrNoRecord)
}

func TestVerifyOTP_Validation(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"email": "a@b.com",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "OTP is required")

	status, body = env.request(t, http.MethodPost, "/api/users/verify-otp", map[string]interface{}{
		"otp": "123456",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["message"], "Email or phone is required")
}

func TestMe_RequiresToken(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.request(t, http.MethodGet, "/api/users/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = env.request(t, http.MethodGet, "/api/users/me", nil,
		map[string]string{"Authorization": "Bearer not-a-token"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

// wrongCode returns a 6-digit code guaranteed to differ from the given one.
func wrongCode(code string) string {
	if code == "000000" {
		return "000001"
	}
	return "000000"
}
