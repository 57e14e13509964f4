package model

import (
	"time"

	"github.com/lib/pq"
)

// Recommendation is a single reviewed venue tied to exactly one destination.
// IDs are generated client-side so join rows can reference a recommendation
// before its row exists remotely.
type Recommendation struct {
	ID            string         `gorm:"type:varchar(36);primarykey" json:"id"`
	Name          string         `gorm:"not null" json:"name"`
	Type          string         `gorm:"type:varchar(100);not null;default:'Restaurant'" json:"type"`
	Cuisine       string         `gorm:"not null" json:"cuisine"`
	Rating        float64        `gorm:"not null" json:"rating"`
	PriceLevel    string         `gorm:"type:varchar(10);not null" json:"price_level"`
	Description   string         `gorm:"type:text" json:"description"`
	Image         string         `gorm:"not null" json:"image"`
	Images        pq.StringArray `gorm:"type:text[]" json:"images"`
	Address       string         `json:"address"`
	Neighborhood  string         `json:"neighborhood"`
	Hours         string         `json:"hours"`
	Phone         string         `json:"phone"`
	Website       string         `json:"website"`
	Instagram     string         `json:"instagram"`
	Latitude      *float64       `json:"latitude"`
	Longitude     *float64       `json:"longitude"`
	OurReview     string         `gorm:"type:text" json:"our_review"`
	DestinationID string         `gorm:"type:varchar(36);not null;index" json:"destination_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`

	Destination *Destination `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Recommendation) TableName() string {
	return "recommendations"
}

// PersonRecommendation links a person to a recommendation they are credited
// for. Formerly expert_recommendations; the table was renamed when experts
// became people.
type PersonRecommendation struct {
	PersonID         string    `gorm:"type:varchar(36);primaryKey" json:"person_id"`
	RecommendationID string    `gorm:"type:varchar(36);primaryKey;index" json:"recommendation_id"`
	CreatedAt        time.Time `json:"created_at"`

	Person         Person         `gorm:"foreignKey:PersonID;constraint:OnDelete:CASCADE" json:"-"`
	Recommendation Recommendation `gorm:"foreignKey:RecommendationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (PersonRecommendation) TableName() string {
	return "person_recommendations"
}
