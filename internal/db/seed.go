package db

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// SeedOwner creates the first owner account when none exists. It is a
// no-op when email or password is empty or an owner is already present.
func SeedOwner(db *gorm.DB, email, password, fullName string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return false, nil
	}

	var existing models.UserProfile
	err := db.Where("role = ?", "owner").First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up owner: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash owner password: %w", err)
	}

	owner := models.UserProfile{
		ID:             uuid.New(),
		Email:          email,
		FullName:       fullName,
		PasswordHash:   string(hashed),
		Role:           "owner",
		Active:         true,
		EmailConfirmed: true,
	}
	if err := db.Create(&owner).Error; err != nil {
		return false, fmt.Errorf("create owner: %w", err)
	}
	return true, nil
}
