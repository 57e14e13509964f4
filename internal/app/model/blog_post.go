package model

import "time"

// BlogPost holds an editorial article. Content is rich HTML produced by the
// dashboard editor. A nil PublishedAt means the post is still a draft.
type BlogPost struct {
	ID          string     `gorm:"type:varchar(36);primarykey" json:"id"`
	Title       string     `gorm:"not null" json:"title"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Content     string     `gorm:"type:text;not null" json:"content"`
	Excerpt     string     `gorm:"type:text" json:"excerpt"`
	CoverImage  string     `json:"cover_image"`
	PublishedAt *time.Time `json:"published_at"`
	AuthorID    *string    `gorm:"type:varchar(36);index" json:"author_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Author *Person `gorm:"foreignKey:AuthorID" json:"-"`
}

func (BlogPost) TableName() string {
	return "blog_posts"
}

// BlogPostDestination links a blog post to a destination it covers.
type BlogPostDestination struct {
	BlogPostID    string    `gorm:"type:varchar(36);primaryKey;index" json:"blog_post_id"`
	DestinationID string    `gorm:"type:varchar(36);primaryKey" json:"destination_id"`
	CreatedAt     time.Time `json:"created_at"`

	BlogPost    BlogPost    `gorm:"foreignKey:BlogPostID;constraint:OnDelete:CASCADE" json:"-"`
	Destination Destination `gorm:"foreignKey:DestinationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlogPostDestination) TableName() string {
	return "blog_post_destinations"
}

// BlogPostRecommendation links a blog post to a recommendation it mentions.
type BlogPostRecommendation struct {
	BlogPostID       string    `gorm:"type:varchar(36);primaryKey;index" json:"blog_post_id"`
	RecommendationID string    `gorm:"type:varchar(36);primaryKey" json:"recommendation_id"`
	CreatedAt        time.Time `json:"created_at"`

	BlogPost       BlogPost       `gorm:"foreignKey:BlogPostID;constraint:OnDelete:CASCADE" json:"-"`
	Recommendation Recommendation `gorm:"foreignKey:RecommendationID;constraint:OnDelete:CASCADE" json:"-"`
}

func (BlogPostRecommendation) TableName() string {
	return "blog_post_recommendations"
}
