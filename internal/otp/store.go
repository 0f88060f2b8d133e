package otp

import (
	"context"
	"errors"
	"time"
)

// Delivery channels for one-time codes.
const (
	ChannelEmail = "email"
	ChannelPhone = "phone"
)

// Record is the transient state kept per identifier between send and verify.
type Record struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Channel   string    `json:"channel"`
}

// ErrNoRecord is returned by Store.Get when no record exists for the key.
var ErrNoRecord = errors.New("otp: no record for key")

// Store is an expiring key-value table holding at most one pending code per
// identifier. Implementations may evict entries any time after their TTL.
type Store interface {
	Put(ctx context.Context, key string, rec Record, ttl time.Duration) error
	Get(ctx context.Context, key string) (Record, error)
	Delete(ctx context.Context, key string) error
}
