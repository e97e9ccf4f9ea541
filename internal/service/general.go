package service

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

var (
	ErrNotFound                  = errors.New("record not found")
	ErrLoginUserNotFound         = errors.New("user not found")
	ErrLoginPasswordDoesNotMatch = errors.New("password does not match")
)

type General struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

func NewGeneral(db *gorm.DB, l *zap.SugaredLogger) *General {
	return &General{
		db:     db,
		logger: l,
	}
}

func (s *General) Register(email, pass string) (string, error) {
	hash, err := s.bcryptGen(pass)
	if err != nil {
		return "", errors.Wrap(err, "bcryptGen")
	}
	token := uuid.New().String()
	res := s.db.Create(&db.User{
		BaseModel: db.BaseModel{ID: uuid.New().String()},
		Email:     email,
		Password:  hash,
		Token:     token,
		Preferences: db.Preferences{
			NotificationsEnabled: true,
			Theme:                "light",
		},
	})
	if res.Error != nil {
		return "", res.Error
	}
	return token, nil
}

func (s *General) Login(email, pass string) (string, error) {
	user := db.User{}
	res := s.db.Where("email = ?", email).First(&user)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return "", ErrLoginUserNotFound
		}
		return "", res.Error
	}

	if err := s.bcryptCheck(user.Password, pass); err != nil {
		return "", ErrLoginPasswordDoesNotMatch
	}

	token := uuid.New().String()
	res = s.db.Model(&user).Update("token", token)
	if res.Error != nil {
		return "", errors.Wrap(res.Error, "update token")
	}

	return token, nil
}

func (s *General) UserCreate(email, name string, prefs db.Preferences) (*db.User, error) {
	user := db.User{
		BaseModel:   db.BaseModel{ID: uuid.New().String()},
		Email:       email,
		Name:        name,
		Preferences: prefs,
	}
	res := s.db.Create(&user)
	if res.Error != nil {
		return nil, res.Error
	}
	return &user, nil
}

func (s *General) UserGet(id string) (*db.User, error) {
	user := db.User{}
	res := s.db.First(&user, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &user, nil
}

func (s *General) UserUpdate(id string, name *string, prefs *db.Preferences) (*db.User, error) {
	updates := map[string]interface{}{}
	if name != nil {
		updates["name"] = *name
	}
	if prefs != nil {
		updates["pref_notifications_enabled"] = prefs.NotificationsEnabled
		updates["pref_theme"] = prefs.Theme
	}

	if len(updates) != 0 {
		res := s.db.Model(&db.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return nil, errors.Wrap(res.Error, "update user")
		}
	}

	return s.UserGet(id)
}

func (s *General) UserDelete(id string) error {
	res := s.db.Delete(&db.User{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (s *General) bcryptGen(pass string) (string, error) {
	passwordHashB, err := bcrypt.GenerateFromPassword([]byte(pass), 14)
	if err != nil {
		return "", errors.Wrap(err, "generate password hash")
	}
	return string(passwordHashB), nil
}

func (s *General) bcryptCheck(hash, pass string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pass))
}
