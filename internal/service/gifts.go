package service

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

type GiftFilter struct {
	Type      *string
	ContactID *string
	EventID   *string
}

func (s *General) GiftList(userID string, filter GiftFilter) ([]db.Gift, error) {
	w := squirrel.Eq{
		"user_id": userID,
	}
	if filter.Type != nil {
		w["direction"] = *filter.Type
	}
	if filter.ContactID != nil {
		w["contact_id"] = *filter.ContactID
	}
	if filter.EventID != nil {
		w["event_id"] = *filter.EventID
	}

	sql, args, err := squirrel.
		Select("*").From("gifts").
		Where(w).
		OrderBy("created_at").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	gifts := make([]db.Gift, 0)
	res := s.db.Raw(sql, args...).Scan(&gifts)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}
	return gifts, nil
}

func (s *General) GiftGet(id string) (*db.Gift, error) {
	gift := db.Gift{}
	res := s.db.First(&gift, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &gift, nil
}

func (s *General) GiftCreate(userID string, g *db.Gift) (*db.Gift, error) {
	g.ID = uuid.New().String()
	g.UserID = userID
	scrubDirectionFields(g)

	res := s.db.Create(g)
	if res.Error != nil {
		return nil, res.Error
	}
	return g, nil
}

func (s *General) GiftUpdate(id string, g *db.Gift) (*db.Gift, error) {
	scrubDirectionFields(g)
	updates := map[string]interface{}{
		"name":        g.Name,
		"description": g.Description,
		"direction":   g.Direction,
		"date":        g.Date,
		"contact_id":  g.ContactID,
		"event_id":    g.EventID,
		"image":       g.Image,
		"tags":        g.Tags,
		"notes":       g.Notes,
		"cost":        g.Cost,
		"thanked":     g.Thanked,
	}
	res := s.db.Model(&db.Gift{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update gift")
	}
	return s.GiftGet(id)
}

func (s *General) GiftDelete(id string) error {
	res := s.db.Delete(&db.Gift{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

// cost applies to given gifts only, thanked to received only
func scrubDirectionFields(g *db.Gift) {
	switch g.Direction {
	case db.DirectionGiven:
		g.Thanked = nil
	case db.DirectionReceived:
		g.Cost = nil
	}
}
