package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/purnachandra/internal/settings"
)

// SettingsHandler manages the site settings endpoints.
type SettingsHandler struct {
	store *settings.Store
	now   func() time.Time
}

// NewSettingsHandler constructs SettingsHandler.
func NewSettingsHandler(store *settings.Store) *SettingsHandler {
	return &SettingsHandler{store: store, now: time.Now}
}

// GetSettings returns the stored settings, or the defaults when none were
// saved yet. The copyright text keeps its {year} placeholder.
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	return ok(c, h.store.Load(c.UserContext()))
}

// GetPublicView returns the settings as the public pages render them.
func (h *SettingsHandler) GetPublicView(c *fiber.Ctx) error {
	current := h.store.Load(c.UserContext())
	return ok(c, settings.NewPublicView(current, h.now()))
}

// GetAdminSettings returns the settings together with where they came from.
func (h *SettingsHandler) GetAdminSettings(c *fiber.Ctx) error {
	return ok(c, h.store.Reload(c.UserContext()))
}

// UpdateSettings merges the submitted settings into the stored document.
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var patch settings.Patch
	if err := parseBody(c, &patch); err != nil {
		return err
	}

	saved, err := h.store.Save(c.UserContext(), patch)
	if err != nil {
		var validationErr *settings.ValidationError
		if errors.As(err, &validationErr) {
			return fiber.NewError(fiber.StatusBadRequest, validationErr.Error())
		}
		return err
	}

	return ok(c, saved)
}

// ReloadSettings refreshes the cached copy from storage.
func (h *SettingsHandler) ReloadSettings(c *fiber.Ctx) error {
	return ok(c, h.store.Reload(c.UserContext()))
}
