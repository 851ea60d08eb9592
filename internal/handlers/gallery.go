package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
)

// GalleryHandler manages gallery images.
type GalleryHandler struct {
	db    *gorm.DB
	media mediaDestroyer
	log   *zap.Logger
}

// NewGalleryHandler constructs GalleryHandler.
func NewGalleryHandler(db *gorm.DB, media mediaDestroyer, log *zap.Logger) *GalleryHandler {
	return &GalleryHandler{db: db, media: media, log: log}
}

func validateGalleryImage(item *models.GalleryImage) error {
	item.ImageURL = strings.TrimSpace(item.ImageURL)
	return requiredField("imageUrl", item.ImageURL)
}

// ListPublicImages returns active images, optionally for one category (public endpoint).
func (h *GalleryHandler) ListPublicImages(c *fiber.Ctx) error {
	items := make([]models.GalleryImage, 0)
	query := h.db.Where("is_active = ?", true)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}
	return ok(c, items)
}

// ListImages returns every gallery image (admin endpoint).
func (h *GalleryHandler) ListImages(c *fiber.Ctx) error {
	items, err := listAll[models.GalleryImage](h.db)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// GetImage returns a single gallery image by ID.
func (h *GalleryHandler) GetImage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.GalleryImage](h.db, id, "gallery image")
	if err != nil {
		return err
	}
	return ok(c, item)
}

// CreateImage persists a new gallery entry for an already uploaded image.
func (h *GalleryHandler) CreateImage(c *fiber.Ctx) error {
	item := models.GalleryImage{IsActive: true}
	if err := parseBody(c, &item); err != nil {
		return err
	}
	item.BaseModel = models.BaseModel{}
	if err := validateGalleryImage(&item); err != nil {
		return err
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return created(c, item)
}

// UpdateImage merges the provided fields into an existing gallery entry.
func (h *GalleryHandler) UpdateImage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.GalleryImage](h.db, id, "gallery image")
	if err != nil {
		return err
	}
	base := item.BaseModel
	if err := parseBody(c, item); err != nil {
		return err
	}
	item.BaseModel = base
	if err := validateGalleryImage(item); err != nil {
		return err
	}
	if err := h.db.Save(item).Error; err != nil {
		return err
	}
	return ok(c, item)
}

// DeleteImage removes a gallery entry and the hosted image.
func (h *GalleryHandler) DeleteImage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.GalleryImage](h.db, id, "gallery image")
	if err != nil {
		return err
	}
	if err := deleteByID[models.GalleryImage](h.db, id, "gallery image"); err != nil {
		return err
	}
	destroyImage(c.UserContext(), h.media, h.log, item.ImagePublicID)
	return deleted(c, id)
}
