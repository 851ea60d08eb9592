package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/services"
)

// mediaDestroyer is the part of the media client the record handlers need.
type mediaDestroyer interface {
	Destroy(ctx context.Context, publicID string) error
}

// adminNotifier delivers public form submissions to the back office.
type adminNotifier interface {
	NotifyNewAppointment(services.AppointmentNotification) error
	NotifyContactMessage(services.ContactNotification) error
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("id"))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return nil
}

func requiredField(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fiber.NewError(fiber.StatusBadRequest, name+" is required")
	}
	return nil
}

// findByID loads a record or returns a 404 naming what was missing.
func findByID[T any](db *gorm.DB, id uuid.UUID, what string) (*T, error) {
	var item T
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusNotFound, what+" not found")
		}
		return nil, err
	}
	return &item, nil
}

// listAll returns every record, newest first.
func listAll[T any](db *gorm.DB) ([]T, error) {
	items := make([]T, 0)
	if err := db.Order("created_at desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// deleteByID removes a record and reports 404 when nothing matched.
func deleteByID[T any](db *gorm.DB, id uuid.UUID, what string) error {
	result := db.Delete(new(T), "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, what+" not found")
	}
	return nil
}

// destroyImage removes a record's image from the CDN. Failures are logged only.
func destroyImage(ctx context.Context, media mediaDestroyer, log *zap.Logger, publicID string) {
	if media == nil || strings.TrimSpace(publicID) == "" {
		return
	}
	if err := media.Destroy(ctx, publicID); err != nil && !errors.Is(err, services.ErrMediaNotConfigured) {
		log.Warn("media cleanup failed", zap.String("public_id", publicID), zap.Error(err))
	}
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

func created(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": data})
}

func deleted(c *fiber.Ctx, id uuid.UUID) error {
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{"id": id}})
}
