// File: /database/database.go
package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"eventhub-api/models"
)

func Initialize(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Warn),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Auto migrate all models
	err := db.AutoMigrate(
		&models.User{},
		&models.Event{},
		&models.Booking{},
		&models.Coupon{},
		&models.PaymentIntent{},
		&models.Review{},
		&models.HostRequest{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	if err := addCustomIndexes(db); err != nil {
		return fmt.Errorf("failed to add custom indexes: %w", err)
	}

	return nil
}

func addCustomIndexes(db *gorm.DB) error {
	// Composite indexes for the hot query paths

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_user_event ON bookings(user_id, event_id)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for bookings: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_bookings_event_status ON bookings(event_id, status)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for bookings status: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_events_status_date ON events(status, event_date)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for events: %v\n", err)
	}

	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_payment_intents_status_created ON payment_intents(status, created_at)").Error; err != nil {
		fmt.Printf("Warning: Could not create index for payment_intents: %v\n", err)
	}

	return nil
}

// SeedData populates the database with initial data for development/testing
func SeedData(db *gorm.DB) error {
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount > 0 {
		return nil // already seeded
	}

	hash := func(password string) string {
		hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		return string(hashed)
	}

	admin := models.User{
		ID:       uuid.New().String(),
		Name:     "EventHub Admin",
		Email:    "admin@eventhub.com",
		Password: hash("Admin123!"),
		Role:     models.RoleAdmin,
	}
	host := models.User{
		ID:       uuid.New().String(),
		Name:     "Demo Host",
		Email:    "host@eventhub.com",
		Password: hash("Host123!"),
		Role:     models.RoleHost,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	if err := db.Create(&host).Error; err != nil {
		return err
	}

	events := []models.Event{
		{
			ID:              uuid.New().String(),
			Name:            "City Marathon Meetup",
			Category:        "Sports",
			Description:     "Group training run before the city marathon.",
			EventDate:       time.Now().AddDate(0, 0, 14),
			Location:        "Riverside Park",
			MinParticipants: 2,
			MaxParticipants: 50,
			JoiningFee:      500,
			Status:          models.EventStatusOpen,
			HostID:          host.ID,
		},
		{
			ID:              uuid.New().String(),
			Name:            "Open Air Chess Evening",
			Category:        "Games",
			Description:     "Casual chess evening, boards provided.",
			EventDate:       time.Now().AddDate(0, 0, 7),
			Location:        "Central Square",
			MinParticipants: 2,
			MaxParticipants: 20,
			JoiningFee:      0,
			Status:          models.EventStatusOpen,
			HostID:          host.ID,
		},
	}
	for i := range events {
		if err := db.Create(&events[i]).Error; err != nil {
			return err
		}
	}

	coupons := []models.Coupon{
		{
			ID:        uuid.New().String(),
			Code:      "WELCOME20",
			Type:      models.CouponTypePercentage,
			Discount:  20,
			ValidFrom: time.Now().AddDate(0, -1, 0),
			ValidTo:   time.Now().AddDate(1, 0, 0),
			Active:    true,
		},
		{
			ID:        uuid.New().String(),
			Code:      "SAVE10",
			Type:      models.CouponTypeFixed,
			Discount:  100,
			ValidFrom: time.Now().AddDate(0, -1, 0),
			ValidTo:   time.Now().AddDate(1, 0, 0),
			Active:    true,
		},
	}
	for i := range coupons {
		if err := db.Create(&coupons[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
