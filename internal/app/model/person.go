package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person is an author or contributor creditable on recommendations and blog
// posts. Unlike the other content types the ID is assigned server-side.
type Person struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Bio       string    `gorm:"type:text" json:"bio"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Person) TableName() string {
	return "people"
}

func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
