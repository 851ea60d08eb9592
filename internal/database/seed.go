package database

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/example/purnachandra/internal/models"
	"github.com/example/purnachandra/internal/utils"
)

// ErrAdminExists is returned when an admin account with the email already exists.
var ErrAdminExists = errors.New("admin account already exists")

// CreateAdminAccount stores a new admin account with a bcrypt password hash.
func CreateAdminAccount(conn *gorm.DB, email, password string, roles []string) (*models.AdminAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	if len(roles) == 0 {
		roles = []string{"admin"}
	}

	var existing models.AdminAccount
	err := conn.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrAdminExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	account := models.AdminAccount{
		Email:        email,
		DisplayName:  strings.Split(email, "@")[0],
		PasswordHash: hash,
		Roles:        roles,
	}
	if err := conn.Create(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

// EnsureAdminAccount creates the seed admin account when it is missing.
// It reports whether an account was created.
func EnsureAdminAccount(conn *gorm.DB, email, password string, roles []string) (bool, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return false, nil
	}
	if _, err := CreateAdminAccount(conn, email, password, roles); err != nil {
		if errors.Is(err, ErrAdminExists) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
