package model

// Destination represents a city or region that groups recommendations.
// The region label drives the grouped listing on the public site; rows
// without an explicit region fall into "Other".
type Destination struct {
	ID          string `gorm:"type:varchar(36);primarykey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Country     string `gorm:"not null;default:''" json:"country"`
	Region      string `gorm:"type:varchar(100);not null;default:'Other'" json:"region"`
	Description string `gorm:"type:text;not null" json:"description"`
	Image       string `gorm:"not null" json:"image"`

	Recommendations []Recommendation `gorm:"foreignKey:DestinationID" json:"-"`
}

func (Destination) TableName() string {
	return "destinations"
}

// DefaultRegion is used when a destination carries no region label.
const DefaultRegion = "Other"
