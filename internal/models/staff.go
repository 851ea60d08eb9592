package models

import (
	"fmt"
	"strings"
)

// StaffRole is the job a staff member holds. The set is closed; see Category.
type StaffRole string

const (
	RoleDoctor      StaffRole = "doctor"
	RoleConsultant  StaffRole = "consultant"
	RoleRadiologist StaffRole = "radiologist"
	RolePathologist StaffRole = "pathologist"
	RoleSonologist  StaffRole = "sonologist"

	RoleTechnician    StaffRole = "technician"
	RoleNurse         StaffRole = "nurse"
	RoleReceptionist  StaffRole = "receptionist"
	RoleAdministrator StaffRole = "administrator"
	RoleSupport       StaffRole = "support"
)

// StaffCategory splits roles into the two public listings.
type StaffCategory string

const (
	CategoryDoctor StaffCategory = "doctor"
	CategoryStaff  StaffCategory = "staff"
)

var allStaffRoles = []StaffRole{
	RoleDoctor, RoleConsultant, RoleRadiologist, RolePathologist, RoleSonologist,
	RoleTechnician, RoleNurse, RoleReceptionist, RoleAdministrator, RoleSupport,
}

// Category classifies a role. Every known role maps to exactly one category;
// an unknown role is an error.
func (r StaffRole) Category() (StaffCategory, error) {
	switch r {
	case RoleDoctor, RoleConsultant, RoleRadiologist, RolePathologist, RoleSonologist:
		return CategoryDoctor, nil
	case RoleTechnician, RoleNurse, RoleReceptionist, RoleAdministrator, RoleSupport:
		return CategoryStaff, nil
	default:
		return "", fmt.Errorf("unknown staff role %q", string(r))
	}
}

// IsDoctor reports whether the role belongs to the doctor listing.
func (r StaffRole) IsDoctor() bool {
	category, err := r.Category()
	return err == nil && category == CategoryDoctor
}

// ParseStaffRole normalises user input into a known role.
func ParseStaffRole(value string) (StaffRole, error) {
	role := StaffRole(strings.ToLower(strings.TrimSpace(value)))
	if _, err := role.Category(); err != nil {
		return "", err
	}
	return role, nil
}

// RolesIn returns every role of the given category, in declaration order.
func RolesIn(category StaffCategory) []StaffRole {
	roles := make([]StaffRole, 0, len(allStaffRoles))
	for _, role := range allStaffRoles {
		if c, _ := role.Category(); c == category {
			roles = append(roles, role)
		}
	}
	return roles
}

// StaffMember is a doctor or another employee shown on the public site.
type StaffMember struct {
	BaseModel
	Name          string    `gorm:"not null" json:"name"`
	Role          StaffRole `gorm:"index;not null" json:"role"`
	Department    string    `json:"department"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	ImageURL      string    `json:"imageUrl"`
	ImagePublicID string    `json:"imagePublicId"`
	Bio           string    `gorm:"type:text" json:"bio"`
	IsActive      bool      `gorm:"index" json:"isActive"`

	// Doctor-only fields.
	Specialization  string `json:"specialization"`
	Qualifications  string `json:"qualifications"`
	ExperienceYears int    `json:"experienceYears"`
	Availability    string `json:"availability"`
}

// WithoutDoctorFields returns a copy with the doctor-only fields cleared.
func (s StaffMember) WithoutDoctorFields() StaffMember {
	s.Specialization = ""
	s.Qualifications = ""
	s.ExperienceYears = 0
	s.Availability = ""
	return s
}
