package reminder

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/config"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func testGenerator(t *testing.T, gdb *gorm.DB, lookaheadDays int) *Generator {
	t.Helper()
	cfg := &config.Config{ReminderLookaheadDays: lookaheadDays}
	return NewGenerator(gdb, cfg, zap.NewNop().Sugar())
}

func seedEvent(t *testing.T, gdb *gorm.DB, date string, contactIDs []string) db.Event {
	t.Helper()
	e := db.Event{
		BaseModel:  db.BaseModel{ID: uuid.New().String()},
		UserID:     "user-1",
		Name:       "Birthday Party",
		Date:       date,
		Type:       "birthday",
		ContactIDs: contactIDs,
	}
	require.NoError(t, gdb.Create(&e).Error)
	return e
}

func countNotifications(t *testing.T, gdb *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(&db.Notification{}).Count(&n).Error)
	return n
}

func TestRunWindowMatch(t *testing.T) {
	gdb := testDB(t)
	g := testGenerator(t, gdb, 7)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	inside := seedEvent(t, gdb, "2024-01-05", []string{"contact-a", "contact-b"})
	seedEvent(t, gdb, "2024-01-10", []string{"contact-a"})

	matched, err := g.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.EqualValues(t, 2, countNotifications(t, gdb))

	notifications := make([]db.Notification, 0)
	require.NoError(t, gdb.Order("contact_id").Find(&notifications).Error)
	assert.Equal(t, "contact-a", notifications[0].ContactID)
	assert.Equal(t, "contact-b", notifications[1].ContactID)
	for _, n := range notifications {
		assert.Equal(t, inside.ID, n.EventID)
		assert.Equal(t, "user-1", n.UserID)
		assert.Contains(t, n.Message, "Birthday Party")
		assert.Contains(t, n.Message, "2024-01-05")
		assert.False(t, n.Read)
		assert.NotEmpty(t, n.ID)
	}
}

func TestRunWindowBoundsInclusive(t *testing.T) {
	gdb := testDB(t)
	g := testGenerator(t, gdb, 7)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedEvent(t, gdb, "2024-01-01", []string{"c1"})
	seedEvent(t, gdb, "2024-01-08", []string{"c2"})
	seedEvent(t, gdb, "2023-12-31", []string{"c3"})
	seedEvent(t, gdb, "2024-01-09", []string{"c4"})

	matched, err := g.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 2, matched)
	assert.EqualValues(t, 2, countNotifications(t, gdb))
}

func TestRunEmptyContactList(t *testing.T) {
	gdb := testDB(t)
	g := testGenerator(t, gdb, 7)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedEvent(t, gdb, "2024-01-03", []string{})

	matched, err := g.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.EqualValues(t, 0, countNotifications(t, gdb))
}

func TestRunMalformedDateSkipped(t *testing.T) {
	gdb := testDB(t)
	g := testGenerator(t, gdb, 7)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedEvent(t, gdb, "next tuesday", []string{"c1"})
	seedEvent(t, gdb, "2024-01-02", []string{"c2"})

	matched, err := g.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
	assert.EqualValues(t, 1, countNotifications(t, gdb))
}

// Rerunning over the same event set doubles the notification count; there is
// deliberately no dedup key.
func TestRunNotIdempotent(t *testing.T) {
	gdb := testDB(t)
	g := testGenerator(t, gdb, 7)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedEvent(t, gdb, "2024-01-05", []string{"contact-a", "contact-b"})

	_, err := g.Run(context.Background(), now)
	require.NoError(t, err)
	_, err = g.Run(context.Background(), now)
	require.NoError(t, err)

	assert.EqualValues(t, 4, countNotifications(t, gdb))
}

func TestRunRFC3339Dates(t *testing.T) {
	gdb := testDB(t)
	g := testGenerator(t, gdb, 7)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	seedEvent(t, gdb, "2024-01-04T18:30:00Z", []string{"c1"})

	matched, err := g.Run(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, matched)
}

func TestRunResult(t *testing.T) {
	assert.Equal(t, "Created 3 event reminders.", RunResult(3))
}
