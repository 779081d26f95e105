package db

import (
	"time"

	"loan-engine/internal/domain/loan"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenGorm connects to MySQL and routes GORM's SQL log through log.
func OpenGorm(dsn string, log logrus.FieldLogger) (*gorm.DB, error) {
	db, err := open(mysql.Open(dsn), gormLogger(log))
	if err != nil {
		return nil, err
	}
	log.WithField("component", "gorm").Info("connected")
	return db, nil
}

// OpenGormWithDialector opens an already-configured dialector with the same pool settings.
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return open(dial, logger.Discard)
}

func gormLogger(log logrus.FieldLogger) logger.Interface {
	return logger.New(log, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func open(dial gorm.Dialector, l logger.Interface) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:               l,
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the loan tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&loan.Loan{}, &loan.ScheduledRepayment{}, &loan.ReceivedRepayment{})
}
