package models

// User represents a storefront account. Accounts are created either by
// explicit registration or implicitly by a first successful OTP login, so
// everything except the email/phone identifier is optional.
type User struct {
	BaseModel
	Name         string `json:"name"`
	Email        string `gorm:"index" json:"email,omitempty"`
	Phone        string `gorm:"index" json:"phone,omitempty"`
	PasswordHash string `json:"-"`
	Address      string `json:"address,omitempty"`
	Role         string `gorm:"default:user" json:"role"`
}

// HasIdentifier reports whether the user carries at least one of the
// email/phone contact fields required before persistence.
func (u *User) HasIdentifier() bool {
	return u.Email != "" || u.Phone != ""
}

// Summary returns the public-safe view of the user returned by the auth
// endpoints. The password hash is never included.
func (u *User) Summary() map[string]interface{} {
	return map[string]interface{}{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"phone": u.Phone,
	}
}
