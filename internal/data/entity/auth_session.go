package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuthSession is a server-side auth token record (browser cookie or API
// bearer token), distinct from the cinema Session entity.
type AuthSession struct {
	BaseSimple
	UserID         uuid.UUID  `db:"user_id"`
	Token          uuid.UUID  `db:"token"`
	UserAgent      *string    `db:"user_agent"`
	IPAddress      *string    `db:"ip_address"`
	ExpiresAt      time.Time  `db:"expires_at"`
	RevokedAt      *time.Time `db:"revoked_at"`
	LastActivityAt time.Time  `db:"last_activity_at"`
}
