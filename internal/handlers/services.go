package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
)

// ServiceHandler manages the diagnostic services catalogue.
type ServiceHandler struct {
	db    *gorm.DB
	media mediaDestroyer
	log   *zap.Logger
}

// NewServiceHandler constructs ServiceHandler.
func NewServiceHandler(db *gorm.DB, media mediaDestroyer, log *zap.Logger) *ServiceHandler {
	return &ServiceHandler{db: db, media: media, log: log}
}

func validateService(item *models.Service) error {
	item.Title = strings.TrimSpace(item.Title)
	if err := requiredField("title", item.Title); err != nil {
		return err
	}
	if item.Price < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "price must not be negative")
	}
	if item.Features == nil {
		item.Features = []string{}
	}
	return nil
}

// ListPublicServices returns active services (public endpoint).
func (h *ServiceHandler) ListPublicServices(c *fiber.Ctx) error {
	items := make([]models.Service, 0)
	query := h.db.Where("is_active = ?", true)
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Order("created_at desc").Find(&items).Error; err != nil {
		return err
	}
	return ok(c, items)
}

// ListServices returns every service (admin endpoint).
func (h *ServiceHandler) ListServices(c *fiber.Ctx) error {
	items, err := listAll[models.Service](h.db)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// GetService returns a single service by ID.
func (h *ServiceHandler) GetService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.Service](h.db, id, "service")
	if err != nil {
		return err
	}
	return ok(c, item)
}

// CreateService persists a new service. Services are active unless the body says otherwise.
func (h *ServiceHandler) CreateService(c *fiber.Ctx) error {
	item := models.Service{IsActive: true}
	if err := parseBody(c, &item); err != nil {
		return err
	}
	item.BaseModel = models.BaseModel{}
	if err := validateService(&item); err != nil {
		return err
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return created(c, item)
}

// UpdateService merges the provided fields into an existing service.
func (h *ServiceHandler) UpdateService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.Service](h.db, id, "service")
	if err != nil {
		return err
	}
	base := item.BaseModel
	if err := parseBody(c, item); err != nil {
		return err
	}
	item.BaseModel = base
	if err := validateService(item); err != nil {
		return err
	}
	if err := h.db.Save(item).Error; err != nil {
		return err
	}
	return ok(c, item)
}

// DeleteService removes a service and its image.
func (h *ServiceHandler) DeleteService(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.Service](h.db, id, "service")
	if err != nil {
		return err
	}
	if err := deleteByID[models.Service](h.db, id, "service"); err != nil {
		return err
	}
	destroyImage(c.UserContext(), h.media, h.log, item.ImagePublicID)
	return deleted(c, id)
}
