package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
)

// uniqueAppointmentIndex is the double-booking guard: at most one pending
// or confirmed appointment per barber, date and time. The predicate must
// match the statuses reported as booked times.
const uniqueAppointmentIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS unique_appointment_active
	ON appointments (barber_id, date, time)
	WHERE status IN ('pending', 'confirmed')
`

// legacyAppointmentIndex also covered completed appointments.
const legacyAppointmentIndex = `DROP INDEX IF EXISTS unique_appointment`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Barber{},
		&models.Service{},
		&models.BarberService{},
		&models.Appointment{},
		&models.CashTransaction{},
		&models.UserProfile{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if err := db.Exec(legacyAppointmentIndex).Error; err != nil {
		return fmt.Errorf("drop legacy unique_appointment index: %w", err)
	}
	if err := db.Exec(uniqueAppointmentIndex).Error; err != nil {
		return fmt.Errorf("create unique_appointment_active index: %w", err)
	}

	if err := db.Exec(`
		UPDATE appointments
		SET payment_status = 'pending'
		WHERE payment_status IS NULL OR payment_status = ''
	`).Error; err != nil {
		return fmt.Errorf("backfill payment_status: %w", err)
	}

	return nil
}
