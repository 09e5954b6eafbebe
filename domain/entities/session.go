package entities

import "time"

// Session is a server-side authentication session. The token travels in a
// cookie (or bearer header); the row here is the authoritative state, so
// logout is a hard revocation.
type Session struct {
	Token     string    `db:"token"`
	UserID    int64     `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

// IsExpired returns true once the session TTL has elapsed
func (s *Session) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
