package models

import (
	"fmt"
	"strings"
)

// AppointmentStatus tracks an appointment request through the front desk.
type AppointmentStatus string

const (
	AppointmentPending   AppointmentStatus = "pending"
	AppointmentConfirmed AppointmentStatus = "confirmed"
	AppointmentCompleted AppointmentStatus = "completed"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// AppointmentStatuses lists every status in display order.
var AppointmentStatuses = []AppointmentStatus{
	AppointmentPending, AppointmentConfirmed, AppointmentCompleted, AppointmentCancelled,
}

// ParseAppointmentStatus normalises user input into a known status.
func ParseAppointmentStatus(value string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range AppointmentStatuses {
		if status == known {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown appointment status %q", value)
}

// Appointment is a visit requested through the public form.
type Appointment struct {
	BaseModel
	PatientName   string            `gorm:"not null" json:"patientName"`
	Phone         string            `gorm:"not null" json:"phone"`
	Email         string            `json:"email"`
	ServiceName   string            `json:"serviceName"`
	DoctorName    string            `json:"doctorName"`
	PreferredDate string            `json:"preferredDate"`
	PreferredTime string            `json:"preferredTime"`
	Message       string            `gorm:"type:text" json:"message"`
	Status        AppointmentStatus `gorm:"index;not null" json:"status"`
}
