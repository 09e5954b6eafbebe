package entities

import "time"

// ScrollType classifies an unlockable content item
type ScrollType string

const (
	ScrollTypeScroll   ScrollType = "scroll"
	ScrollTypeTablet   ScrollType = "tablet"
	ScrollTypeBook     ScrollType = "book"
	ScrollTypeArtifact ScrollType = "artifact"
)

// IsValid returns true for a known scroll type
func (st ScrollType) IsValid() bool {
	switch st {
	case ScrollTypeScroll, ScrollTypeTablet, ScrollTypeBook, ScrollTypeArtifact:
		return true
	}
	return false
}

// Scroll represents an unlockable content item. UnlockKey is a server-side
// secret: repositories only load it for unlock attempts and it must never
// reach a response body, an error message or a log line.
type Scroll struct {
	ID        int64      `db:"id"`
	Title     string     `db:"title"`
	Content   string     `db:"content"`
	ImageURL  string     `db:"image_url"`
	Type      ScrollType `db:"scroll_type"`
	IsLocked  bool       `db:"is_locked"`
	UnlockKey string     `db:"unlock_key"`
	CreatedAt time.Time  `db:"created_at"`
}

// ScrollUnlock associates a user with a scroll they have unlocked.
// At most one row exists per (user, scroll) pair; rows are never deleted.
type ScrollUnlock struct {
	ID        int64     `db:"id"`
	UserID    int64     `db:"user_id"`
	ScrollID  int64     `db:"scroll_id"`
	CreatedAt time.Time `db:"created_at"`
}
