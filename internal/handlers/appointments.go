package handlers

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
	"github.com/example/purnachandra/internal/services"
)

const preferredDateLayout = "2006-01-02"

// AppointmentHandler manages appointment requests.
type AppointmentHandler struct {
	db       *gorm.DB
	notifier adminNotifier
	log      *zap.Logger
}

// NewAppointmentHandler constructs AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB, notifier adminNotifier, log *zap.Logger) *AppointmentHandler {
	return &AppointmentHandler{db: db, notifier: notifier, log: log}
}

func validateAppointment(item *models.Appointment) error {
	item.PatientName = strings.TrimSpace(item.PatientName)
	item.Phone = strings.TrimSpace(item.Phone)
	if err := requiredField("patientName", item.PatientName); err != nil {
		return err
	}
	if err := requiredField("phone", item.Phone); err != nil {
		return err
	}
	if item.PreferredDate != "" {
		if _, err := time.Parse(preferredDateLayout, item.PreferredDate); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "preferredDate must be YYYY-MM-DD")
		}
	}
	if item.Status == "" {
		item.Status = models.AppointmentPending
	}
	status, err := models.ParseAppointmentStatus(string(item.Status))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	item.Status = status
	return nil
}

// RequestAppointment stores a request from the public form and notifies the admins.
func (h *AppointmentHandler) RequestAppointment(c *fiber.Ctx) error {
	var item models.Appointment
	if err := parseBody(c, &item); err != nil {
		return err
	}
	item.BaseModel = models.BaseModel{}
	item.Status = models.AppointmentPending
	if err := validateAppointment(&item); err != nil {
		return err
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}

	if h.notifier != nil {
		err := h.notifier.NotifyNewAppointment(services.AppointmentNotification{
			PatientName:   item.PatientName,
			Phone:         item.Phone,
			Email:         item.Email,
			ServiceName:   item.ServiceName,
			DoctorName:    item.DoctorName,
			PreferredDate: item.PreferredDate,
			PreferredTime: item.PreferredTime,
			Message:       item.Message,
		})
		if err != nil {
			h.log.Warn("appointment notification failed", zap.String("appointment_id", item.ID.String()), zap.Error(err))
		}
	}

	return created(c, item)
}

// ListAppointments returns every appointment (admin endpoint).
func (h *AppointmentHandler) ListAppointments(c *fiber.Ctx) error {
	items, err := listAll[models.Appointment](h.db)
	if err != nil {
		return err
	}
	return ok(c, items)
}

// GetAppointment returns a single appointment by ID.
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.Appointment](h.db, id, "appointment")
	if err != nil {
		return err
	}
	return ok(c, item)
}

// CreateAppointment lets the front desk record an appointment directly.
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var item models.Appointment
	if err := parseBody(c, &item); err != nil {
		return err
	}
	item.BaseModel = models.BaseModel{}
	if err := validateAppointment(&item); err != nil {
		return err
	}
	if err := h.db.Create(&item).Error; err != nil {
		return err
	}
	return created(c, item)
}

// UpdateAppointment merges the provided fields, typically a status change.
func (h *AppointmentHandler) UpdateAppointment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := findByID[models.Appointment](h.db, id, "appointment")
	if err != nil {
		return err
	}
	base := item.BaseModel
	if err := parseBody(c, item); err != nil {
		return err
	}
	item.BaseModel = base
	if err := validateAppointment(item); err != nil {
		return err
	}
	if err := h.db.Save(item).Error; err != nil {
		return err
	}
	return ok(c, item)
}

// DeleteAppointment removes an appointment.
func (h *AppointmentHandler) DeleteAppointment(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := deleteByID[models.Appointment](h.db, id, "appointment"); err != nil {
		return err
	}
	return deleted(c, id)
}
