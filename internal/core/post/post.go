package post

import (
	"time"

	"inkwell/internal/core/group"
	"inkwell/internal/core/user"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// TitleLength is how much of the text String shows.
const TitleLength = 15

type Post struct {
	ID        uuid.UUID    `gorm:"primary_key;type:char(36)"`
	Text      string       `gorm:"type:text;not null"`
	AuthorID  uuid.UUID    `gorm:"type:char(36);not null;index"`
	Author    user.User    `gorm:"foreignkey:AuthorID"`
	GroupID   *uuid.UUID   `gorm:"type:char(36);index"`
	Group     *group.Group `gorm:"foreignkey:GroupID"`
	Image     string       `gorm:"type:varchar(255)"`
	CreatedAt time.Time    `gorm:"autoCreateTime;index"`
	UpdatedAt time.Time    `gorm:"autoUpdateTime"`
}

func (p *Post) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (p Post) String() string {
	r := []rune(p.Text)
	if len(r) > TitleLength {
		r = r[:TitleLength]
	}
	return string(r)
}
