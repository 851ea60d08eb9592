package models

// Service is a diagnostic service offered by the centre.
type Service struct {
	BaseModel
	Title         string   `gorm:"not null" json:"title"`
	Description   string   `json:"description"`
	Category      string   `gorm:"index" json:"category"`
	Price         float64  `json:"price"`
	Duration      string   `json:"duration"`
	ImageURL      string   `json:"imageUrl"`
	ImagePublicID string   `json:"imagePublicId"`
	Features      []string `gorm:"type:text;serializer:json" json:"features"`
	IsActive      bool     `gorm:"index" json:"isActive"`
}
