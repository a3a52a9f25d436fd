package group

import (
	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Group is a topic posts can be filed under; Slug is its public key.
type Group struct {
	ID          uuid.UUID `gorm:"primary_key;type:char(36)"`
	Title       string    `gorm:"type:varchar(200);not null"`
	Slug        string    `gorm:"type:varchar(100);unique;not null"`
	Description string    `gorm:"type:text"`
}

func (g *Group) BeforeCreate(*gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.Must(uuid.NewV4())
	}
	return nil
}

func (g Group) String() string { return g.Title }
