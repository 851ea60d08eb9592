package handlers

import (
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
	"github.com/example/purnachandra/internal/services"
)

// ContactHandler manages contact form submissions.
type ContactHandler struct {
	db       *gorm.DB
	notifier adminNotifier
	log      *zap.Logger
}

// NewContactHandler constructs ContactHandler.
func NewContactHandler(db *gorm.DB, notifier adminNotifier, log *zap.Logger) *ContactHandler {
	return &ContactHandler{db: db, notifier: notifier, log: log}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// SubmitContact stores a contact form submission and forwards it to the admins.
func (h *ContactHandler) SubmitContact(c *fiber.Ctx) error {
	var req contactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if err := requiredField("name", req.Name); err != nil {
		return err
	}
	if err := requiredField("message", req.Message); err != nil {
		return err
	}
	if email := strings.TrimSpace(req.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid email format")
		}
	}

	item := models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}

	if h.notifier != nil {
		err := h.notifier.NotifyContactMessage(services.ContactNotification{
			Name:    item.Name,
			Email:   item.Email,
			Phone:   item.Phone,
			Subject: item.Subject,
			Message: item.Message,
		})
		if err != nil {
			h.log.Warn("contact notification failed", zap.String("message_id", item.ID.String()), zap.Error(err))
		}
	}

	return created(c, item)
}

// ListMessages returns every contact message (admin endpoint).
func (h *ContactHandler) ListMessages(c *fiber.Ctx) error {
	items, err := listAll[models.ContactMessage](h.db)
	if err != nil {
		return err
	}
	return ok(c, items)
}

type markReadRequest struct {
	IsRead *bool `json:"isRead"`
}

// MarkMessage sets the read flag of a contact message.
func (h *ContactHandler) MarkMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.ContactMessage](h.db, id, "message")
	if err != nil {
		return err
	}
	var req markReadRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	if req.IsRead == nil {
		return fiber.NewError(fiber.StatusBadRequest, "isRead is required")
	}
	item.IsRead = *req.IsRead
	if err := h.db.Save(item).Error; err != nil {
		return err
	}
	return ok(c, item)
}

// DeleteMessage removes a contact message.
func (h *ContactHandler) DeleteMessage(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID[models.ContactMessage](h.db, id, "message"); err != nil {
		return err
	}
	return deleted(c, id)
}
