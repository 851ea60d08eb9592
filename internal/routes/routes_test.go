package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/purnachandra/internal/config"
	"github.com/example/purnachandra/internal/database"
	"github.com/example/purnachandra/internal/middleware"
	"github.com/example/purnachandra/internal/models"
	"github.com/example/purnachandra/internal/services"
	"github.com/example/purnachandra/internal/settings"
	"github.com/example/purnachandra/internal/utils"
)

type testEnv struct {
	app   *fiber.App
	db    *gorm.DB
	cfg   *config.Config
	admin string
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Token   string          `json:"token"`
	Error   string          `json:"error"`
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := setupTestDB(t)
	log := zap.NewNop()
	cfg := &config.Config{
		AuthJWTSecret:     "test-secret",
		AdminRole:         "admin",
		TokenExpires:      time.Hour,
		LoginMaxAttempts:  3,
		LoginLockout:      time.Minute,
		ActivityWindow:    48 * time.Hour,
		ActivityFeedLimit: 10,
	}

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler(log)})
	Register(app, Dependencies{
		DB:       db,
		Config:   cfg,
		Log:      log,
		Settings: settings.NewStore(db, log),
		Media:    services.NewMediaService(services.MediaConfig{}),
		Telegram: services.NewTelegramService("", "", log),
	})

	return &testEnv{app: app, db: db, cfg: cfg, admin: tokenFor(t, cfg, "admin")}
}

func tokenFor(t *testing.T, cfg *config.Config, roles ...string) string {
	t.Helper()
	token, err := utils.GenerateToken(cfg.AuthJWTSecret, "", utils.Principal{UserID: "user_test", Roles: roles}, time.Hour)
	require.NoError(t, err)
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, envelope) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &env), string(raw))
	}
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func TestPublicSettingsServeDefaults(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodGet, "/api/settings", "", nil)
	require.Equal(t, fiber.StatusOK, status)

	got := decode[models.SiteSettings](t, body)
	assert.Equal(t, "Purna Chandra Diagnostic", got.Title)
	assert.Len(t, got.HeaderLinks, 5)
	assert.Contains(t, got.CopyrightText, settings.YearPlaceholder)
}

func TestSettingsViewRendersYear(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodGet, "/api/settings/view", "", nil)
	require.Equal(t, fiber.StatusOK, status)

	view := decode[settings.PublicView](t, body)
	assert.Contains(t, view.Copyright, strconv.Itoa(time.Now().Year()))
	assert.NotContains(t, view.Copyright, settings.YearPlaceholder)
}

func TestAdminSettingsSaveMerges(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, fiber.MethodPut, "/api/admin/settings", env.admin, map[string]any{"title": "PCD Kolkata"})
	require.Equal(t, fiber.StatusOK, status)

	_, body := env.do(t, fiber.MethodGet, "/api/settings", "", nil)
	got := decode[models.SiteSettings](t, body)
	assert.Equal(t, "PCD Kolkata", got.Title)
	assert.Equal(t, settings.DefaultSiteSettings().SocialLinks, got.SocialLinks)
	assert.Equal(t, settings.DefaultSiteSettings().HeaderLinks, got.HeaderLinks)

	status, body = env.do(t, fiber.MethodGet, "/api/admin/settings", env.admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	snapshot := decode[settings.Snapshot](t, body)
	assert.Equal(t, settings.StateReadyWithData, snapshot.State)
}

func TestAdminSettingsRejectsInvalidBody(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodPut, "/api/admin/settings", env.admin, map[string]any{"title": ""})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.False(t, body.Success)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, fiber.MethodGet, "/api/admin/services", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = env.do(t, fiber.MethodGet, "/api/admin/services", tokenFor(t, env.cfg, "viewer"), nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = env.do(t, fiber.MethodGet, "/api/admin/services", env.admin, nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUnsupportedMethodReturns405(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, fiber.MethodPatch, "/api/settings", "", nil)
	assert.Equal(t, fiber.StatusMethodNotAllowed, status)
}

func TestCreateStaffWithoutNameIsRejected(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodPost, "/api/admin/staffs", env.admin, map[string]any{"role": "doctor"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "name is required", body.Error)

	status, _ = env.do(t, fiber.MethodPost, "/api/admin/staffs", env.admin, map[string]any{"name": "X", "role": "janitor"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	var count int64
	require.NoError(t, env.db.Model(&models.StaffMember{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDeleteMissingRecordReturnsNotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, collection := range []string{"services", "staffs", "gallery", "appointments", "messages"} {
		status, _ := env.do(t, fiber.MethodDelete, fmt.Sprintf("/api/admin/%s/%s", collection, uuid.New()), env.admin, nil)
		assert.Equal(t, fiber.StatusNotFound, status, collection)
	}

	status, _ := env.do(t, fiber.MethodDelete, "/api/admin/services/not-a-uuid", env.admin, nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestServiceLifecycle(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodPost, "/api/admin/services", env.admin, map[string]any{
		"title":    "MRI Scan",
		"category": "radiology",
		"price":    4500,
		"features": []string{"1.5T", "Same-day report"},
	})
	require.Equal(t, fiber.StatusCreated, status)
	createdSvc := decode[models.Service](t, body)
	assert.NotEqual(t, uuid.Nil, createdSvc.ID)
	assert.True(t, createdSvc.IsActive)

	path := "/api/admin/services/" + createdSvc.ID.String()
	status, body = env.do(t, fiber.MethodPut, path, env.admin, map[string]any{"price": 5000, "id": uuid.New()})
	require.Equal(t, fiber.StatusOK, status)
	updated := decode[models.Service](t, body)
	assert.Equal(t, createdSvc.ID, updated.ID)
	assert.Equal(t, "MRI Scan", updated.Title)
	assert.Equal(t, 5000.0, updated.Price)
	assert.Equal(t, []string{"1.5T", "Same-day report"}, updated.Features)
	assert.False(t, updated.UpdatedAt.Before(createdSvc.UpdatedAt))

	status, body = env.do(t, fiber.MethodDelete, path, env.admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, createdSvc.ID.String(), decode[map[string]string](t, body)["id"])

	status, _ = env.do(t, fiber.MethodGet, path, env.admin, nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestToggleIsActiveFlipsPublicVisibility(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		admin  string
		public string
		body   map[string]any
	}{
		{"/api/admin/services", "/api/service", map[string]any{"title": "Blood Test"}},
		{"/api/admin/staffs", "/api/staffs", map[string]any{"name": "Ravi", "role": "technician"}},
		{"/api/admin/gallery", "/api/gallery", map[string]any{"imageUrl": "https://cdn.example/a.png", "title": "Lobby"}},
	}

	for _, tc := range cases {
		t.Run(tc.public, func(t *testing.T) {
			status, body := env.do(t, fiber.MethodPost, tc.admin, env.admin, tc.body)
			require.Equal(t, fiber.StatusCreated, status)
			original := decode[map[string]any](t, body)
			id := original["id"].(string)

			visible := func() bool {
				_, body := env.do(t, fiber.MethodGet, tc.public, "", nil)
				for _, item := range decode[[]map[string]any](t, body) {
					if item["id"] == id {
						return true
					}
				}
				return false
			}
			assert.True(t, visible())

			status, body = env.do(t, fiber.MethodPut, tc.admin+"/"+id, env.admin, map[string]any{"isActive": false})
			require.Equal(t, fiber.StatusOK, status)
			toggled := decode[map[string]any](t, body)
			assert.False(t, visible())
			assert.Equal(t, id, toggled["id"])
			for key, value := range tc.body {
				assert.Equal(t, value, toggled[key], key)
			}

			env.do(t, fiber.MethodPut, tc.admin+"/"+id, env.admin, map[string]any{"isActive": true})
			assert.True(t, visible())
		})
	}
}

func TestRoleChangeMovesBetweenDoctorAndStaffListings(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodPost, "/api/admin/staffs", env.admin, map[string]any{
		"name":           "Dr. Sen",
		"role":           "Radiologist",
		"specialization": "Neuro imaging",
	})
	require.Equal(t, fiber.StatusCreated, status)
	member := decode[models.StaffMember](t, body)
	assert.Equal(t, models.RoleRadiologist, member.Role)

	listing := func(path string) []models.StaffMember {
		_, body := env.do(t, fiber.MethodGet, path, "", nil)
		return decode[[]models.StaffMember](t, body)
	}

	doctors := listing("/api/doctors")
	require.Len(t, doctors, 1)
	assert.Equal(t, "Neuro imaging", doctors[0].Specialization)
	assert.Empty(t, listing("/api/staffs"))

	status, _ = env.do(t, fiber.MethodPut, "/api/admin/staffs/"+member.ID.String(), env.admin, map[string]any{"role": "receptionist"})
	require.Equal(t, fiber.StatusOK, status)

	assert.Empty(t, listing("/api/doctors"))
	staff := listing("/api/staffs")
	require.Len(t, staff, 1)
	assert.Equal(t, member.ID, staff[0].ID)
	assert.Empty(t, staff[0].Specialization)
}

func TestPublicAppointmentRequest(t *testing.T) {
	env := newTestEnv(t)

	status, body := env.do(t, fiber.MethodPost, "/api/appointments", "", map[string]any{"patientName": "Mina"})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "phone is required", body.Error)

	status, body = env.do(t, fiber.MethodPost, "/api/appointments", "", map[string]any{
		"patientName":   "Mina",
		"phone":         "+91 90000 00000",
		"preferredDate": "2026-10-20",
		"status":        "confirmed",
	})
	require.Equal(t, fiber.StatusCreated, status)
	appt := decode[models.Appointment](t, body)
	assert.Equal(t, models.AppointmentPending, appt.Status)

	path := "/api/admin/appointments/" + appt.ID.String()
	status, _ = env.do(t, fiber.MethodPut, path, env.admin, map[string]any{"status": "lost"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, body = env.do(t, fiber.MethodPut, path, env.admin, map[string]any{"status": "confirmed"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, models.AppointmentConfirmed, decode[models.Appointment](t, body).Status)

	status, _ = env.do(t, fiber.MethodPost, "/api/appointments", "", map[string]any{
		"patientName": "Mina", "phone": "1", "preferredDate": "20/10/2026",
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestContactFormIsStored(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, fiber.MethodPost, "/api/contact", "", map[string]any{"name": "Asha"})
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = env.do(t, fiber.MethodPost, "/api/contact", "", map[string]any{
		"name": "Asha", "email": "asha@example.com", "message": "Do you open on Sundays?",
	})
	require.Equal(t, fiber.StatusCreated, status)

	_, body := env.do(t, fiber.MethodGet, "/api/admin/messages", env.admin, nil)
	messages := decode[[]models.ContactMessage](t, body)
	require.Len(t, messages, 1)
	assert.False(t, messages[0].IsRead)

	status, body = env.do(t, fiber.MethodPut, "/api/admin/messages/"+messages[0].ID.String(), env.admin, map[string]any{"isRead": true})
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, decode[models.ContactMessage](t, body).IsRead)
}

func TestLoginIssuesAdminToken(t *testing.T) {
	env := newTestEnv(t)
	_, err := database.CreateAdminAccount(env.db, "Admin@Example.com", "correct-horse", []string{"admin"})
	require.NoError(t, err)

	status, _ := env.do(t, fiber.MethodPost, "/api/auth/login", "", map[string]any{"email": "admin@example.com", "password": "nope-nope"})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := env.do(t, fiber.MethodPost, "/api/auth/login", "", map[string]any{"email": "admin@example.com", "password": "correct-horse"})
	require.Equal(t, fiber.StatusOK, status)
	require.NotEmpty(t, body.Token)

	status, body = env.do(t, fiber.MethodGet, "/api/auth/me", body.Token, nil)
	require.Equal(t, fiber.StatusOK, status)
	principal := decode[utils.Principal](t, body)
	assert.Equal(t, "admin@example.com", principal.Email)
	assert.True(t, principal.HasRole("admin"))
}

func TestMediaEndpointsUnavailableWithoutCredentials(t *testing.T) {
	env := newTestEnv(t)

	status, _ := env.do(t, fiber.MethodGet, "/api/admin/media", env.admin, nil)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

func TestDashboardStats(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, fiber.MethodPost, "/api/admin/staffs", env.admin, map[string]any{"name": "Dr. Roy", "role": "doctor"})
	env.do(t, fiber.MethodPost, "/api/admin/staffs", env.admin, map[string]any{"name": "Ila", "role": "nurse", "isActive": false})
	env.do(t, fiber.MethodPost, "/api/appointments", "", map[string]any{"patientName": "Mina", "phone": "1"})

	status, body := env.do(t, fiber.MethodGet, "/api/admin/dashboard/stats", env.admin, nil)
	require.Equal(t, fiber.StatusOK, status)

	stats := decode[map[string]any](t, body)
	assert.EqualValues(t, 2, stats["totalStaff"])
	assert.EqualValues(t, 1, stats["activeStaff"])
	assert.EqualValues(t, 1, stats["totalDoctors"])
	assert.EqualValues(t, 1, stats["totalAppointments"])
	byStatus := stats["appointmentsByStatus"].(map[string]any)
	assert.EqualValues(t, 1, byStatus["pending"])
	assert.EqualValues(t, 0, byStatus["cancelled"])

	status, body = env.do(t, fiber.MethodGet, "/api/admin/dashboard/activity", env.admin, nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]any](t, body), 1)
}
