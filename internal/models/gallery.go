package models

// GalleryImage is a picture shown on the public gallery page. The binary
// lives on the media CDN; only its URL and public id are stored here.
type GalleryImage struct {
	BaseModel
	Title         string `json:"title"`
	ImageURL      string `gorm:"not null" json:"imageUrl"`
	ImagePublicID string `json:"imagePublicId"`
	AltText       string `json:"altText"`
	Caption       string `json:"caption"`
	Category      string `gorm:"index" json:"category"`
	IsActive      bool   `gorm:"index" json:"isActive"`
}
