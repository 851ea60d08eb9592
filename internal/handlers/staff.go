package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
)

// StaffHandler manages doctors and other staff members.
type StaffHandler struct {
	db    *gorm.DB
	media mediaDestroyer
	log   *zap.Logger
}

// NewStaffHandler constructs StaffHandler.
func NewStaffHandler(db *gorm.DB, media mediaDestroyer, log *zap.Logger) *StaffHandler {
	return &StaffHandler{db: db, media: media, log: log}
}

func validateStaff(item *models.StaffMember) error {
	item.Name = strings.TrimSpace(item.Name)
	if err := requiredField("name", item.Name); err != nil {
		return err
	}
	if err := requiredField("role", string(item.Role)); err != nil {
		return err
	}
	role, err := models.ParseStaffRole(string(item.Role))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	item.Role = role
	if item.ExperienceYears < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "experienceYears must not be negative")
	}
	return nil
}

func (h *StaffHandler) listActive(category models.StaffCategory) ([]models.StaffMember, error) {
	items := make([]models.StaffMember, 0)
	err := h.db.Where("is_active = ? AND role IN ?", true, models.RolesIn(category)).
		Order("created_at asc").
		Find(&items).Error
	return items, err
}

// ListDoctors returns active staff whose role is a doctor role (public endpoint).
func (h *StaffHandler) ListDoctors(c *fiber.Ctx) error {
	items, err := h.listActive(models.CategoryDoctor)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// ListStaffs returns active non-doctor staff without doctor-only fields (public endpoint).
func (h *StaffHandler) ListStaffs(c *fiber.Ctx) error {
	items, err := h.listActive(models.CategoryStaff)
	if err != nil {
		return err
	}
	for i := range items {
		items[i] = items[i].WithoutDoctorFields()
	}
	return ok(c, items)
}

// ListStaffMembers returns every staff member (admin endpoint).
func (h *StaffHandler) ListStaffMembers(c *fiber.Ctx) error {
	items, err := listAll[models.StaffMember](h.db)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// GetStaffMember returns a single staff member by ID.
func (h *StaffHandler) GetStaffMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.StaffMember](h.db, id, "staff member")
	if err != nil {
		return err
	}
	return ok(c, item)
}

// CreateStaffMember persists a new staff member.
func (h *StaffHandler) CreateStaffMember(c *fiber.Ctx) error {
	item := models.StaffMember{IsActive: true}
	if err := parseBody(c, &item); err != nil {
		return err
	}
	item.BaseModel = models.BaseModel{}
	if err := validateStaff(&item); err != nil {
		return err
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return created(c, item)
}

// UpdateStaffMember merges the provided fields into an existing staff member.
func (h *StaffHandler) UpdateStaffMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.StaffMember](h.db, id, "staff member")
	if err != nil {
		return err
	}
	base := item.BaseModel
	if err := parseBody(c, item); err != nil {
		return err
	}
	item.BaseModel = base
	if err := validateStaff(item); err != nil {
		return err
	}
	if err := h.db.Save(item).Error; err != nil {
		return err
	}
	return ok(c, item)
}

// DeleteStaffMember removes a staff member and their photo.
func (h *StaffHandler) DeleteStaffMember(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.StaffMember](h.db, id, "staff member")
	if err != nil {
		return err
	}
	if err := deleteByID[models.StaffMember](h.db, id, "staff member"); err != nil {
		return err
	}
	destroyImage(c.UserContext(), h.media, h.log, item.ImagePublicID)
	return deleted(c, id)
}
