package db

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barberpro/internal/config"
	"github.com/BruksfildServices01/barberpro/internal/models"
)

// ActiveSlotIndex garante no máximo um agendamento não cancelado por
// (barbeiro, data, hora). A sintaxe vale para Postgres e SQLite.
const ActiveSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot_active
	ON appointments (barber_id, appointment_date, appointment_time)
	WHERE status <> 'cancelled'
`

// Config comum aos drivers. Sem FKs: barbeiro/serviço removidos deixam
// agendamentos órfãos, que aparecem com barber/service nulos.
func GormConfig() *gorm.Config {
	return &gorm.Config{
		TranslateError: true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}
}

func NewDB(cfg *config.Config, log zerolog.Logger) *gorm.DB {
	gcfg := GormConfig()
	gcfg.PrepareStmt = true

	db, err := gorm.Open(postgres.Open(cfg.DBUrl), gcfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get sql.DB")
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate")
	}

	return db
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Barber{},
		&models.Service{},
		&models.Appointment{},
		&models.Notification{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}

	if err := db.Exec(ActiveSlotIndex).Error; err != nil {
		return fmt.Errorf("create slot index: %w", err)
	}
	return nil
}
