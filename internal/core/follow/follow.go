package follow

import (
	"time"

	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Follow is a directed edge: Follower reads Author's posts in the following feed.
// The unique index is what keeps concurrent follows down to one row.
type Follow struct {
	ID         uuid.UUID `gorm:"primary_key;type:char(36)"`
	FollowerID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follower_author"`
	Follower   user.User `gorm:"foreignkey:FollowerID"`
	AuthorID   uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:uniq_follower_author;index"`
	Author     user.User `gorm:"foreignkey:AuthorID"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (f *Follow) BeforeCreate(*gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}
