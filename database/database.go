package database

import (
	"fmt"
	"log"
	"strings"

	config "github.com/casafind/rental_marketplace/configs"
	"github.com/casafind/rental_marketplace/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		PrepareStmt:            false,
		SkipDefaultTransaction: true,
		// Unique and foreign-key violations must surface as
		// gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated so the
		// booking service can map them to conflict errors.
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	createBookingStatusEnum(DB)

	err := DB.AutoMigrate(
		&models.User{},
		&models.Building{},
		&models.ResidentialComplex{},
		&models.Property{},
		&models.BookingRequest{},
		&models.Preferences{},
		&models.TenantCv{},
		&models.MatchSnapshot{},
		&models.Message{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

// createBookingStatusEnum declares the named enum backing the booking
// status column. Postgres only; sqlite in tests stores the column with
// text affinity and the model hook does the gatekeeping there.
func createBookingStatusEnum(db *gorm.DB) {
	if db.Dialector.Name() != "postgres" {
		return
	}

	tokens := make([]string, 0, len(models.AllBookingStatuses))
	for _, s := range models.AllBookingStatuses {
		tokens = append(tokens, "'"+string(s)+"'")
	}

	stmt := fmt.Sprintf(`DO $$ BEGIN
		CREATE TYPE booking_status AS ENUM (%s);
	EXCEPTION WHEN duplicate_object THEN NULL;
	END $$;`, strings.Join(tokens, ", "))

	if err := db.Exec(stmt).Error; err != nil {
		log.Fatalf("🔥 Failed to create booking_status enum: %v", err)
	}
}

func SeedAdmin(cfg *config.Config) {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Println("⚠️ Admin credentials not configured, skipping admin seed.")
		return
	}

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: cfg.AdminFullName,
		Email:    cfg.AdminEmail,
		Password: string(hashedPassword),
		Role:     "admin",
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}
