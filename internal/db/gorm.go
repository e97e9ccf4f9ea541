package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
)

const (
	DirectionGiven    = "given"
	DirectionReceived = "received"
)

type (
	BaseModel struct {
		ID        string `gorm:"primarykey"`
		CreatedAt time.Time
		UpdatedAt time.Time
	}

	Preferences struct {
		NotificationsEnabled bool   `json:"notificationsEnabled"`
		Theme                string `json:"theme"`
	}

	User struct {
		BaseModel
		Email       string `gorm:"unique;not null"`
		Password    string `gorm:"not null"`
		Token       string `gorm:"not null"`
		Name        string
		Preferences Preferences `gorm:"embedded;embeddedPrefix:pref_"`
	}

	ImportantDate struct {
		Date     string `json:"date"`
		Occasion string `json:"occasion"`
	}

	Contact struct {
		BaseModel
		UserID         string `gorm:"not null;index"`
		Name           string `gorm:"not null"`
		Email          *string
		Relationship   *string
		Interests      StringList        `gorm:"type:text"`
		ImportantDates ImportantDateList `gorm:"type:text"`
		Notes          *string
	}

	// Event dates are stored as captured from the client; they are parsed at
	// reminder-scan time and may be unparsable.
	Event struct {
		BaseModel
		UserID             string `gorm:"not null;index"`
		Name               string `gorm:"not null"`
		Date               string `gorm:"not null"`
		Type               string
		ContactIDs         StringList `gorm:"type:text"`
		Notes              *string
		ReminderEnabled    bool
		ReminderDaysBefore int
	}

	Gift struct {
		BaseModel
		UserID      string `gorm:"not null;index"`
		Name        string `gorm:"not null"`
		Description string
		Direction   string `gorm:"not null"`
		Date        string
		ContactID   string
		EventID     string
		Image       *string
		Tags        StringList `gorm:"type:text"`
		Notes       *string
		Cost        *float64
		Thanked     *bool
	}

	Notification struct {
		BaseModel
		UserID    string `gorm:"not null"`
		EventID   string `gorm:"not null"`
		ContactID string `gorm:"not null"`
		Message   string `gorm:"not null"`
		Date      string
		Read      bool
	}
)

func NewGormClient(cfg *config.Config) (*gorm.DB, error) {
	newLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Info,
		Colorful:                  true,
		IgnoreRecordNotFoundError: false,
	})

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}); err != nil {
		return errors.Wrap(err, "migrate user")
	}
	if err := db.AutoMigrate(&Contact{}); err != nil {
		return errors.Wrap(err, "migrate contact")
	}
	if err := db.AutoMigrate(&Event{}); err != nil {
		return errors.Wrap(err, "migrate event")
	}
	if err := db.AutoMigrate(&Gift{}); err != nil {
		return errors.Wrap(err, "migrate gift")
	}
	if err := db.AutoMigrate(&Notification{}); err != nil {
		return errors.Wrap(err, "migrate notification")
	}
	return nil
}
