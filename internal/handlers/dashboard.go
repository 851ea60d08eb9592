package handlers

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
)

// DashboardHandler serves the admin dashboard.
type DashboardHandler struct {
	db     *gorm.DB
	window time.Duration
	limit  int
	now    func() time.Time
}

// NewDashboardHandler constructs DashboardHandler. window bounds how far back
// the activity feed looks; limit is the default feed length.
func NewDashboardHandler(db *gorm.DB, window time.Duration, limit int) *DashboardHandler {
	if window <= 0 {
		window = 48 * time.Hour
	}
	if limit <= 0 {
		limit = 10
	}
	return &DashboardHandler{db: db, window: window, limit: limit, now: time.Now}
}

// ActivityItem is one entry of the recent activity feed.
type ActivityItem struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	Time      string    `json:"time"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// DashboardStats holds the coarse counts shown on the dashboard.
type DashboardStats struct {
	TotalServices        int64            `json:"totalServices"`
	ActiveServices       int64            `json:"activeServices"`
	TotalStaff           int64            `json:"totalStaff"`
	ActiveStaff          int64            `json:"activeStaff"`
	TotalDoctors         int64            `json:"totalDoctors"`
	GalleryImages        int64            `json:"galleryImages"`
	TotalAppointments    int64            `json:"totalAppointments"`
	AppointmentsByStatus map[string]int64 `json:"appointmentsByStatus"`
	UnreadMessages       int64            `json:"unreadMessages"`
}

// Stats returns aggregate counts for the admin dashboard.
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.collectStats(h.db.WithContext(c.UserContext()))
	if err != nil {
		return err
	}
	return ok(c, stats)
}

func (h *DashboardHandler) collectStats(db *gorm.DB) (*DashboardStats, error) {
	stats := &DashboardStats{AppointmentsByStatus: make(map[string]int64)}

	counts := []struct {
		model any
		where []any
		dest  *int64
	}{
		{&models.Service{}, nil, &stats.TotalServices},
		{&models.Service{}, []any{"is_active = ?", true}, &stats.ActiveServices},
		{&models.StaffMember{}, nil, &stats.TotalStaff},
		{&models.StaffMember{}, []any{"is_active = ?", true}, &stats.ActiveStaff},
		{&models.StaffMember{}, []any{"role IN ?", models.RolesIn(models.CategoryDoctor)}, &stats.TotalDoctors},
		{&models.GalleryImage{}, nil, &stats.GalleryImages},
		{&models.Appointment{}, nil, &stats.TotalAppointments},
		{&models.ContactMessage{}, []any{"is_read = ?", false}, &stats.UnreadMessages},
	}
	for _, count := range counts {
		query := db.Model(count.model)
		if len(count.where) > 0 {
			query = query.Where(count.where[0], count.where[1:]...)
		}
		if err := query.Count(count.dest).Error; err != nil {
			return nil, err
		}
	}

	for _, status := range models.AppointmentStatuses {
		stats.AppointmentsByStatus[string(status)] = 0
	}
	type statusCount struct {
		Status string
		Count  int64
	}
	var statusCounts []statusCount
	if err := db.Model(&models.Appointment{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return nil, err
	}
	for _, sc := range statusCounts {
		stats.AppointmentsByStatus[sc.Status] = sc.Count
	}

	return stats, nil
}

// RecentActivity returns appointments, services and gallery images created or
// updated inside the lookback window, newest first.
func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	limit := h.limit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a positive integer")
		}
		limit = parsed
	}

	items, err := h.collectActivity(h.db.WithContext(c.UserContext()), limit)
	if err != nil {
		return err
	}
	return ok(c, items)
}

func (h *DashboardHandler) collectActivity(db *gorm.DB, limit int) ([]ActivityItem, error) {
	now := h.now()
	since := now.Add(-h.window)
	recent := func(dest any) error {
		return db.Where("created_at >= ? OR updated_at >= ?", since, since).
			Order("updated_at desc").
			Limit(limit).
			Find(dest).Error
	}

	var appointments []models.Appointment
	if err := recent(&appointments); err != nil {
		return nil, err
	}
	var services []models.Service
	if err := recent(&services); err != nil {
		return nil, err
	}
	var images []models.GalleryImage
	if err := recent(&images); err != nil {
		return nil, err
	}

	items := make([]ActivityItem, 0, len(appointments)+len(services)+len(images))
	for _, a := range appointments {
		message := fmt.Sprintf("New appointment request from %s", a.PatientName)
		if !isNewRecord(a.BaseModel) {
			message = fmt.Sprintf("Appointment for %s marked %s", a.PatientName, a.Status)
		}
		items = append(items, newActivityItem(a.BaseModel, "appointment", message, string(a.Status), now))
	}
	for _, s := range services {
		message := fmt.Sprintf("Service %q added", s.Title)
		if !isNewRecord(s.BaseModel) {
			message = fmt.Sprintf("Service %q updated", s.Title)
		}
		items = append(items, newActivityItem(s.BaseModel, "service", message, activeStatus(s.IsActive), now))
	}
	for _, g := range images {
		title := g.Title
		if title == "" {
			title = "untitled"
		}
		message := fmt.Sprintf("Gallery image %q uploaded", title)
		if !isNewRecord(g.BaseModel) {
			message = fmt.Sprintf("Gallery image %q updated", title)
		}
		items = append(items, newActivityItem(g.BaseModel, "gallery", message, activeStatus(g.IsActive), now))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Timestamp.After(items[j].Timestamp)
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

// isNewRecord treats a record whose update followed its creation within a second as unchanged since creation.
func isNewRecord(base models.BaseModel) bool {
	return base.UpdatedAt.Sub(base.CreatedAt) < time.Second
}

func newActivityItem(base models.BaseModel, kind, message, status string, now time.Time) ActivityItem {
	timestamp := base.UpdatedAt
	if timestamp.IsZero() {
		timestamp = base.CreatedAt
	}
	return ActivityItem{
		ID:        base.ID.String(),
		Type:      kind,
		Message:   message,
		Time:      humanize.RelTime(timestamp, now, "ago", "from now"),
		Timestamp: timestamp,
		Status:    status,
	}
}

func activeStatus(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
