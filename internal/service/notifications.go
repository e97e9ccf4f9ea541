package service

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

// NotificationList loads the whole table and filters by owner in code. The
// notifications table has no owner index; this mirrors the scan-and-filter
// behavior of the original handler.
func (s *General) NotificationList(userID string) ([]db.Notification, error) {
	all := make([]db.Notification, 0)
	res := s.db.Order("created_at").Find(&all)
	if res.Error != nil {
		return nil, res.Error
	}

	owned := make([]db.Notification, 0)
	for i := range all {
		if all[i].UserID == userID {
			owned = append(owned, all[i])
		}
	}
	return owned, nil
}

func (s *General) NotificationGet(id string) (*db.Notification, error) {
	n := db.Notification{}
	res := s.db.First(&n, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &n, nil
}

// NotificationMarkRead is the only client-driven mutation; notifications are
// created exclusively by the reminder generator.
func (s *General) NotificationMarkRead(id string, read bool) (*db.Notification, error) {
	res := s.db.Model(&db.Notification{}).Where("id = ?", id).Update("read", read)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update notification")
	}
	return s.NotificationGet(id)
}

func (s *General) NotificationDelete(id string) error {
	res := s.db.Delete(&db.Notification{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	return nil
}
