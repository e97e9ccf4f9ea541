package localstore

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type flakyKV struct {
	inner    KV
	failures int
	calls    int
}

func (f *flakyKV) Get(userID string) ([]byte, error) {
	return f.inner.Get(userID)
}

func (f *flakyKV) Set(userID string, blob []byte) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("quota exceeded")
	}
	return f.inner.Set(userID, blob)
}

func testKV(t *testing.T) *BadgerKV {
	t.Helper()
	kv, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func testSync(t *testing.T, kv KV) *Sync {
	t.Helper()
	s, err := NewSync(kv, "user-1", zap.NewNop().Sugar())
	require.NoError(t, err)
	return s
}

func dataURI(size int) *string {
	s := "data:image/png;base64," + strings.Repeat("A", size)
	return &s
}

func loadBlob(t *testing.T, kv KV) UserData {
	t.Helper()
	blob, err := kv.Get("user-1")
	require.NoError(t, err)
	data := UserData{}
	require.NoError(t, json.Unmarshal(blob, &data))
	return data
}

func TestHydrateRoundTrip(t *testing.T) {
	kv := testKV(t)

	s := testSync(t, kv)
	require.NoError(t, s.AddContact(Contact{ID: "c1", Name: "Alice"}))
	require.NoError(t, s.AddEvent(Event{ID: "e1", Name: "Birthday", Date: "2024-05-01"}))
	require.NoError(t, s.RecordLogin())

	reloaded := testSync(t, kv)
	assert.Equal(t, s.Data().Contacts, reloaded.Data().Contacts)
	assert.Equal(t, s.Data().Events, reloaded.Data().Events)
	assert.Equal(t, 1, reloaded.Data().Flags.LoginCount)
}

func TestHydrateMissingBlobStartsEmpty(t *testing.T) {
	s := testSync(t, testKV(t))
	assert.Empty(t, s.Data().ReceivedGifts)
	assert.Empty(t, s.Data().GivenGifts)
	assert.Empty(t, s.Data().Contacts)
	assert.Empty(t, s.Data().Events)
}

func TestAddGiftOversizedImageStrippedFromBlobOnly(t *testing.T) {
	kv := testKV(t)
	s := testSync(t, kv)

	require.NoError(t, s.AddGift(Gift{ID: "g1", Name: "Watch", Direction: "received", Image: dataURI(2 << 20)}))

	// memory keeps the image
	require.Len(t, s.Data().ReceivedGifts, 1)
	assert.NotNil(t, s.Data().ReceivedGifts[0].Image)

	// the persisted copy dropped it
	data := loadBlob(t, kv)
	require.Len(t, data.ReceivedGifts, 1)
	assert.Nil(t, data.ReceivedGifts[0].Image)
}

func TestCaptureLimitLooserThanBulkLimit(t *testing.T) {
	kv := testKV(t)
	s := testSync(t, kv)

	// 300KB is under the 1MB initial-capture limit, so the fresh add keeps it
	require.NoError(t, s.AddGift(Gift{ID: "g1", Name: "Watch", Direction: "received", Image: dataURI(300 << 10)}))
	data := loadBlob(t, kv)
	assert.NotNil(t, data.ReceivedGifts[0].Image)

	// any later mutation re-serializes under the 250KB bulk limit
	require.NoError(t, s.AddContact(Contact{ID: "c1", Name: "Alice"}))
	data = loadBlob(t, kv)
	assert.Nil(t, data.ReceivedGifts[0].Image)
	assert.NotNil(t, s.Data().ReceivedGifts[0].Image)
}

func TestRemoteImageRefNeverStripped(t *testing.T) {
	kv := testKV(t)
	s := testSync(t, kv)

	url := "https://giftkeeper-images.s3.us-east-1.amazonaws.com/images/2024/01/01/abc"
	require.NoError(t, s.AddGift(Gift{ID: "g1", Name: "Watch", Direction: "given", Image: &url}))

	data := loadBlob(t, kv)
	require.NotNil(t, data.GivenGifts[0].Image)
	assert.Equal(t, url, *data.GivenGifts[0].Image)
}

func TestAddThenDeleteGiftBroadcastsCounts(t *testing.T) {
	kv := testKV(t)
	s := testSync(t, kv)

	updates := make([]CountUpdate, 0)
	s.Subscribe(func(u CountUpdate) { updates = append(updates, u) })

	require.NoError(t, s.AddGift(Gift{ID: "g1", Name: "Watch", Direction: "given"}))
	require.NoError(t, s.DeleteGift("given", "g1"))

	data := loadBlob(t, kv)
	assert.Empty(t, data.GivenGifts)

	require.Len(t, updates, 2)
	assert.Equal(t, CountUpdate{Direction: "given", Count: 1}, updates[0])
	assert.Equal(t, CountUpdate{Direction: "given", Count: 0}, updates[1])
}

func TestUpdateGiftPersisted(t *testing.T) {
	kv := testKV(t)
	s := testSync(t, kv)

	require.NoError(t, s.AddGift(Gift{ID: "g1", Name: "Watch", Direction: "received"}))
	require.NoError(t, s.UpdateGift(Gift{ID: "g1", Name: "Gold Watch", Direction: "received"}))

	data := loadBlob(t, kv)
	assert.Equal(t, "Gold Watch", data.ReceivedGifts[0].Name)
}

func TestPersistRetriesOnceWithAllImagesStripped(t *testing.T) {
	inner := testKV(t)
	s := testSync(t, inner)

	// small embedded image survives the guarded pass
	require.NoError(t, s.AddGift(Gift{ID: "g1", Name: "Watch", Direction: "received", Image: dataURI(10 << 10)}))

	kv := &flakyKV{inner: inner, failures: 1}
	s.kv = kv

	require.NoError(t, s.AddContact(Contact{ID: "c1", Name: "Alice"}))
	assert.Equal(t, 2, kv.calls)

	// the fallback write stripped every embedded image, size notwithstanding
	data := loadBlob(t, inner)
	assert.Nil(t, data.ReceivedGifts[0].Image)
	assert.NotNil(t, s.Data().ReceivedGifts[0].Image)
}

func TestPersistSurfacesWarningWhenRetryFails(t *testing.T) {
	kv := &flakyKV{inner: testKV(t), failures: 2}
	s := testSync(t, kv)

	err := s.AddGift(Gift{ID: "g1", Name: "Watch", Direction: "given"})
	assert.ErrorIs(t, err, ErrPersistFailed)
	assert.Equal(t, 2, kv.calls)

	// in-memory state is the only copy, and it kept the change
	require.Len(t, s.Data().GivenGifts, 1)
	assert.Equal(t, "g1", s.Data().GivenGifts[0].ID)
}

func TestFlags(t *testing.T) {
	kv := testKV(t)
	s := testSync(t, kv)

	require.NoError(t, s.MarkVisited("dashboard"))
	require.NoError(t, s.MarkFeatureSeen("tags"))
	require.NoError(t, s.MarkFeatureSeen("tags"))

	data := loadBlob(t, kv)
	assert.True(t, data.Flags.VisitedPages["dashboard"])
	assert.Equal(t, []string{"tags"}, data.Flags.SeenFeatures)
}
