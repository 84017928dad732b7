package devapi

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB opens (or creates) the devapi database and migrates the schema.
// SQLite works best with a single writer; the pool is capped accordingly.
func OpenDB(path string) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(path+"?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := conn.AutoMigrate(
		&User{},
		&HealthCenter{},
		&Born{},
		&Baby{},
		&Appointment{},
		&AppointmentFeedback{},
		&Notification{},
		&Province{},
		&District{},
		&Sector{},
		&Cell{},
		&Village{},
	); err != nil {
		return nil, err
	}

	conn.Exec("CREATE INDEX IF NOT EXISTS idx_appt_born_status ON appointments(born_id, status)")
	conn.Exec("CREATE INDEX IF NOT EXISTS idx_notif_user_read  ON notifications(user_id, is_read)")

	if err := seed(conn); err != nil {
		return nil, err
	}

	log.Println("devapi database ready (sqlite)")
	return conn, nil
}

// seed provisions the address hierarchy and a default data-manager account
// on first boot. Idempotent: it runs only against an empty users table.
func seed(conn *gorm.DB) error {
	var users int64
	if err := conn.Model(&User{}).Count(&users).Error; err != nil {
		return err
	}
	if users > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := User{
		Firstname: "System",
		Lastname:  "Admin",
		Email:     "admin@digitalretransfer.local",
		Phone:     "+250788000000",
		Gender:    "Male",
		Role:      "data_manager",
		Status:    "active",
		Password:  string(hash),
	}
	if err := conn.Create(&admin).Error; err != nil {
		return err
	}

	provinces := []Province{
		{
			Name: "Kigali City",
			Districts: []District{
				{
					Name: "Gasabo",
					Sectors: []Sector{
						{
							Name: "Remera",
							Cells: []Cell{
								{Name: "Nyabisindu", Villages: []Village{{Name: "Amajyambere"}, {Name: "Ubumwe"}}},
								{Name: "Rukiri I", Villages: []Village{{Name: "Isangano"}}},
							},
						},
						{
							Name: "Kimironko",
							Cells: []Cell{
								{Name: "Bibare", Villages: []Village{{Name: "Karisimbi"}, {Name: "Muhabura"}}},
							},
						},
					},
				},
				{
					Name: "Kicukiro",
					Sectors: []Sector{
						{
							Name: "Niboye",
							Cells: []Cell{
								{Name: "Gatare", Villages: []Village{{Name: "Urumuri"}}},
							},
						},
					},
				},
			},
		},
	}
	for i := range provinces {
		if err := conn.Create(&provinces[i]).Error; err != nil {
			return err
		}
	}

	return nil
}
