package service

import (
	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

type EventFilter struct {
	StartDate *string
	EndDate   *string
}

// EventList returns the owner's events, optionally narrowed to a date range.
// Dates are ISO strings, so range comparison is lexicographic.
func (s *General) EventList(userID string, filter EventFilter) ([]db.Event, error) {
	w := squirrel.And{
		squirrel.Eq{"user_id": userID},
	}
	if filter.StartDate != nil {
		w = append(w, squirrel.GtOrEq{"date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		w = append(w, squirrel.LtOrEq{"date": *filter.EndDate})
	}

	sql, args, err := squirrel.
		Select("*").From("events").
		Where(w).
		OrderBy("date").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	events := make([]db.Event, 0)
	res := s.db.Raw(sql, args...).Scan(&events)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan")
	}
	return events, nil
}

func (s *General) EventGet(id string) (*db.Event, error) {
	event := db.Event{}
	res := s.db.First(&event, "id = ?", id)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, res.Error
	}
	return &event, nil
}

func (s *General) EventCreate(userID string, e *db.Event) (*db.Event, error) {
	e.ID = uuid.New().String()
	e.UserID = userID

	res := s.db.Create(e)
	if res.Error != nil {
		return nil, res.Error
	}
	return e, nil
}

func (s *General) EventUpdate(id string, e *db.Event) (*db.Event, error) {
	updates := map[string]interface{}{
		"name":                 e.Name,
		"date":                 e.Date,
		"type":                 e.Type,
		"contact_ids":          e.ContactIDs,
		"notes":                e.Notes,
		"reminder_enabled":     e.ReminderEnabled,
		"reminder_days_before": e.ReminderDaysBefore,
	}
	res := s.db.Model(&db.Event{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update event")
	}
	return s.EventGet(id)
}

func (s *General) EventDelete(id string) error {
	res := s.db.Delete(&db.Event{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	return nil
}
