package handlers

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/config"
	"github.com/example/purnachandra/internal/middleware"
	"github.com/example/purnachandra/internal/models"
	"github.com/example/purnachandra/internal/utils"
)

// AuthHandler bundles dependencies for authentication endpoints.
type AuthHandler struct {
	db            *gorm.DB
	cfg           *config.Config
	log           *zap.Logger
	now           func() time.Time
	checkPassword func(hash, password string) bool
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, log: log, now: time.Now, checkPassword: utils.CheckPassword}
}

// dummyPasswordHash is compared against when the email is unknown so both
// paths pay for a bcrypt comparison.
var dummyPasswordHash = sync.OnceValue(func() string {
	hash, _ := utils.HashPassword("purna-chandra-no-such-account")
	return hash
})

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates an admin account. Repeated failures lock the account
// for the configured lockout period.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email and password are required")
	}

	var account models.AdminAccount
	if err := h.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.checkPassword(dummyPasswordHash(), req.Password)
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	now := h.now()
	if account.IsLocked(now) {
		return fiber.NewError(fiber.StatusLocked, "too many failed attempts, try again later")
	}

	if !h.checkPassword(account.PasswordHash, req.Password) {
		return h.recordFailure(&account, now)
	}

	if err := h.accountRow(account.ID).Updates(map[string]any{
		"failed_attempts": 0,
		"locked_until":    nil,
		"last_login_at":   now,
	}).Error; err != nil {
		return err
	}
	account.FailedAttempts = 0
	account.LockedUntil = nil
	account.LastLoginAt = &now

	principal := utils.Principal{UserID: account.ID.String(), Email: account.Email, Roles: account.Roles}
	token, err := utils.GenerateToken(h.cfg.AuthJWTSecret, h.cfg.AuthIssuer, principal, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    account,
		"token":   token,
	})
}

func (h *AuthHandler) accountRow(id uuid.UUID) *gorm.DB {
	return h.db.Model(&models.AdminAccount{}).Where("id = ?", id)
}

// recordFailure counts a failed attempt in the database and locks the account
// once the count reaches the limit. The counter is only incremented in SQL.
func (h *AuthHandler) recordFailure(account *models.AdminAccount, now time.Time) error {
	if account.LockedUntil != nil {
		// An expired lock starts a fresh run of failures.
		if err := h.accountRow(account.ID).
			Where("locked_until IS NOT NULL AND locked_until <= ?", now).
			Updates(map[string]any{"failed_attempts": 0, "locked_until": nil}).Error; err != nil {
			return err
		}
	}

	if err := h.accountRow(account.ID).
		UpdateColumn("failed_attempts", gorm.Expr("failed_attempts + 1")).Error; err != nil {
		return err
	}

	var attempts int
	if err := h.accountRow(account.ID).Select("failed_attempts").Row().Scan(&attempts); err != nil {
		return err
	}
	if attempts < h.cfg.LoginMaxAttempts {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	until := now.Add(h.cfg.LoginLockout)
	result := h.accountRow(account.ID).
		Where("(locked_until IS NULL OR locked_until <= ?)", now).
		UpdateColumn("locked_until", until)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		h.log.Warn("admin account locked", zap.String("email", account.Email), zap.Time("until", until))
	}
	return fiber.NewError(fiber.StatusLocked, "too many failed attempts, try again later")
}

// Me returns the authenticated principal.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	principal, found := middleware.GetPrincipal(c)
	if !found {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}
	return ok(c, principal)
}
