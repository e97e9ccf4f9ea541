package service

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

func (s *General) ContactList(userID string) ([]db.Contact, error) {
	contacts := make([]db.Contact, 0)
	res := s.db.Where("user_id = ?", userID).Order("created_at").Find(&contacts)
	if res.Error != nil {
		return nil, res.Error
	}
	return contacts, nil
}

func (s *General) ContactGet(id string) (*db.Contact, error) {
	contact := db.Contact{}
	res := s.db.First(&contact, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &contact, nil
}

func (s *General) ContactCreate(userID string, c *db.Contact) (*db.Contact, error) {
	c.ID = uuid.New().String()
	c.UserID = userID

	res := s.db.Create(c)
	if res.Error != nil {
		return nil, res.Error
	}
	return c, nil
}

func (s *General) ContactUpdate(id string, c *db.Contact) (*db.Contact, error) {
	updates := map[string]interface{}{
		"name":            c.Name,
		"email":           c.Email,
		"relationship":    c.Relationship,
		"interests":       c.Interests,
		"important_dates": c.ImportantDates,
		"notes":           c.Notes,
	}
	res := s.db.Model(&db.Contact{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update contact")
	}
	return s.ContactGet(id)
}

func (s *General) ContactDelete(id string) error {
	res := s.db.Delete(&db.Contact{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	return nil
}
