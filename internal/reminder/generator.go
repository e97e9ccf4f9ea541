// Package reminder scans upcoming events and writes notification rows.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

type Generator struct {
	db            *gorm.DB
	logger        *zap.SugaredLogger
	lookaheadDays int
}

func NewGenerator(gdb *gorm.DB, cfg *config.Config, l *zap.SugaredLogger) *Generator {
	return &Generator{
		db:            gdb,
		logger:        l,
		lookaheadDays: cfg.ReminderLookaheadDays,
	}
}

// Run scans every event and, for each one dated within the lookahead window,
// writes one notification per attached contact. It returns the number of
// MATCHED EVENTS, not the number of notifications written.
//
// There is no dedup check and no overlap guard: rerunning over the same event
// set duplicates notifications. Writes are not transactional; a failed write
// aborts the run but leaves earlier writes in place.
func (g *Generator) Run(ctx context.Context, now time.Time) (int, error) {
	events := make([]db.Event, 0)
	res := g.db.WithContext(ctx).Find(&events)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "list events")
	}

	windowStart := now.UTC().Truncate(24 * time.Hour)
	windowEnd := windowStart.AddDate(0, 0, g.lookaheadDays)

	matched := 0
	for i := range events {
		event := &events[i]

		date, err := parseEventDate(event.Date)
		if err != nil {
			// unparsable dates never match the window; dropped, but loudly
			g.logger.Warnw("skipping event with unparsable date",
				"event_id", event.ID, "date", event.Date)
			continue
		}
		if date.Before(windowStart) || date.After(windowEnd) {
			continue
		}

		matched++
		for _, contactID := range event.ContactIDs {
			n := db.Notification{
				BaseModel: db.BaseModel{
					ID:        uuid.New().String(),
					CreatedAt: now,
				},
				UserID:    event.UserID,
				EventID:   event.ID,
				ContactID: contactID,
				Message:   fmt.Sprintf("Reminder: %s is coming up on %s.", event.Name, event.Date),
				Date:      event.Date,
				Read:      false,
			}
			if res := g.db.WithContext(ctx).Create(&n); res.Error != nil {
				return matched, errors.Wrapf(res.Error, "create notification for event %s contact %s", event.ID, contactID)
			}
		}
	}

	return matched, nil
}

// RunResult is the invocation contract of the scheduled job.
func RunResult(matched int) string {
	return fmt.Sprintf("Created %d event reminders.", matched)
}

func parseEventDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, errors.Errorf("unparsable event date: %q", s)
}
