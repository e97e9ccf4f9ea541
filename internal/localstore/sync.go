package localstore

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	// Embedded images above this size are dropped from the serialized copy.
	imageLimitBulk = 250 << 10
	// The gift being added in the current mutation gets the looser limit.
	imageLimitCapture = 1 << 20
)

type (
	Gift struct {
		ID          string   `json:"giftId"`
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Direction   string   `json:"type"`
		Date        string   `json:"date,omitempty"`
		ContactID   string   `json:"contactId,omitempty"`
		EventID     string   `json:"eventId,omitempty"`
		Image       *string  `json:"image"`
		Tags        []string `json:"tags,omitempty"`
		Notes       string   `json:"notes,omitempty"`
		Cost        *float64 `json:"cost,omitempty"`
		Thanked     *bool    `json:"thanked,omitempty"`
	}

	Contact struct {
		ID             string          `json:"contactId"`
		Name           string          `json:"name"`
		Email          string          `json:"email,omitempty"`
		Relationship   string          `json:"relationship,omitempty"`
		Interests      []string        `json:"interests,omitempty"`
		ImportantDates []ImportantDate `json:"importantDates,omitempty"`
		Notes          string          `json:"notes,omitempty"`
	}

	ImportantDate struct {
		Date     string `json:"date"`
		Occasion string `json:"occasion"`
	}

	Event struct {
		ID         string   `json:"eventId"`
		Name       string   `json:"name"`
		Date       string   `json:"date"`
		Type       string   `json:"type,omitempty"`
		ContactIDs []string `json:"contactIds,omitempty"`
		Notes      string   `json:"notes,omitempty"`
	}

	Flags struct {
		VisitedPages map[string]bool `json:"visitedPages,omitempty"`
		LoginCount   int             `json:"loginCount"`
		SeenFeatures []string        `json:"seenFeatures,omitempty"`
	}

	// UserData is the per-user blob layout.
	UserData struct {
		ReceivedGifts []Gift    `json:"receivedGifts"`
		GivenGifts    []Gift    `json:"givenGifts"`
		Contacts      []Contact `json:"contacts"`
		Events        []Event   `json:"events"`
		Flags         Flags     `json:"flags"`
	}

	// CountUpdate is broadcast after any gift-count-affecting mutation so
	// other views can update counters without rereading the blob.
	CountUpdate struct {
		Direction string
		Count     int
	}

	Sync struct {
		userID string
		kv     KV
		logger *zap.SugaredLogger
		data   UserData
		subs   []func(CountUpdate)
	}
)

// NewSync hydrates in-memory state from the persisted blob, or starts from an
// empty structure when none exists.
func NewSync(kv KV, userID string, logger *zap.SugaredLogger) (*Sync, error) {
	s := &Sync{
		userID: userID,
		kv:     kv,
		logger: logger,
		data:   emptyData(),
	}

	blob, err := kv.Get(userID)
	if err != nil {
		if errors.Is(err, ErrBlobNotFound) {
			return s, nil
		}
		return nil, errors.Wrap(err, "load blob")
	}
	if err := json.Unmarshal(blob, &s.data); err != nil {
		return nil, errors.Wrap(err, "hydrate blob")
	}
	return s, nil
}

func emptyData() UserData {
	return UserData{
		ReceivedGifts: []Gift{},
		GivenGifts:    []Gift{},
		Contacts:      []Contact{},
		Events:        []Event{},
	}
}

func (s *Sync) Subscribe(fn func(CountUpdate)) {
	s.subs = append(s.subs, fn)
}

// Data returns the in-memory working set. It is always consistent with the
// caller's own mutations, even when persistence lags.
func (s *Sync) Data() *UserData {
	return &s.data
}

func (s *Sync) AddGift(g Gift) error {
	list := s.giftList(g.Direction)
	*list = append(*list, g)
	err := s.persist(g.ID)
	s.broadcast(g.Direction)
	return err
}

func (s *Sync) UpdateGift(g Gift) error {
	list := s.giftList(g.Direction)
	for i := range *list {
		if (*list)[i].ID == g.ID {
			(*list)[i] = g
			break
		}
	}
	return s.persist("")
}

func (s *Sync) DeleteGift(direction, id string) error {
	list := s.giftList(direction)
	for i := range *list {
		if (*list)[i].ID == id {
			*list = append((*list)[:i], (*list)[i+1:]...)
			break
		}
	}
	err := s.persist("")
	s.broadcast(direction)
	return err
}

func (s *Sync) AddContact(c Contact) error {
	s.data.Contacts = append(s.data.Contacts, c)
	return s.persist("")
}

func (s *Sync) UpdateContact(c Contact) error {
	for i := range s.data.Contacts {
		if s.data.Contacts[i].ID == c.ID {
			s.data.Contacts[i] = c
			break
		}
	}
	return s.persist("")
}

func (s *Sync) DeleteContact(id string) error {
	for i := range s.data.Contacts {
		if s.data.Contacts[i].ID == id {
			s.data.Contacts = append(s.data.Contacts[:i], s.data.Contacts[i+1:]...)
			break
		}
	}
	return s.persist("")
}

func (s *Sync) AddEvent(e Event) error {
	s.data.Events = append(s.data.Events, e)
	return s.persist("")
}

func (s *Sync) UpdateEvent(e Event) error {
	for i := range s.data.Events {
		if s.data.Events[i].ID == e.ID {
			s.data.Events[i] = e
			break
		}
	}
	return s.persist("")
}

func (s *Sync) DeleteEvent(id string) error {
	for i := range s.data.Events {
		if s.data.Events[i].ID == id {
			s.data.Events = append(s.data.Events[:i], s.data.Events[i+1:]...)
			break
		}
	}
	return s.persist("")
}

func (s *Sync) RecordLogin() error {
	s.data.Flags.LoginCount++
	return s.persist("")
}

func (s *Sync) MarkVisited(page string) error {
	if s.data.Flags.VisitedPages == nil {
		s.data.Flags.VisitedPages = map[string]bool{}
	}
	s.data.Flags.VisitedPages[page] = true
	return s.persist("")
}

func (s *Sync) MarkFeatureSeen(feature string) error {
	for _, f := range s.data.Flags.SeenFeatures {
		if f == feature {
			return nil
		}
	}
	s.data.Flags.SeenFeatures = append(s.data.Flags.SeenFeatures, feature)
	return s.persist("")
}

// persist re-serializes the entire blob. Oversized embedded images are
// stripped from the serialized copy only; in-memory state keeps them. If the
// guarded write fails, it retries exactly once with ALL images stripped. If
// that also fails the error surfaces and memory stays the only copy; there is
// no later reconciliation of dropped images.
func (s *Sync) persist(justAddedID string) error {
	copied := s.data
	copied.ReceivedGifts = stripOversized(s.data.ReceivedGifts, justAddedID)
	copied.GivenGifts = stripOversized(s.data.GivenGifts, justAddedID)

	blob, err := json.Marshal(&copied)
	if err != nil {
		return errors.Wrap(err, "marshal blob")
	}

	if err := s.kv.Set(s.userID, blob); err == nil {
		return nil
	}

	copied.ReceivedGifts = stripAll(copied.ReceivedGifts)
	copied.GivenGifts = stripAll(copied.GivenGifts)
	blob, merr := json.Marshal(&copied)
	if merr != nil {
		return errors.Wrap(merr, "marshal stripped blob")
	}
	if err := s.kv.Set(s.userID, blob); err != nil {
		s.logger.Warnw("local store write failed after stripping all images",
			"user_id", s.userID, "error", err)
		return ErrPersistFailed
	}
	return nil
}

func (s *Sync) giftList(direction string) *[]Gift {
	if direction == "given" {
		return &s.data.GivenGifts
	}
	return &s.data.ReceivedGifts
}

func (s *Sync) broadcast(direction string) {
	update := CountUpdate{
		Direction: direction,
		Count:     len(*s.giftList(direction)),
	}
	for _, fn := range s.subs {
		fn(update)
	}
}

func stripOversized(gifts []Gift, justAddedID string) []Gift {
	out := make([]Gift, len(gifts))
	copy(out, gifts)
	for i := range out {
		limit := imageLimitBulk
		if out[i].ID == justAddedID {
			limit = imageLimitCapture
		}
		if isEmbeddedImage(out[i].Image) && len(*out[i].Image) > limit {
			out[i].Image = nil
		}
	}
	return out
}

func stripAll(gifts []Gift) []Gift {
	out := make([]Gift, len(gifts))
	copy(out, gifts)
	for i := range out {
		if isEmbeddedImage(out[i].Image) {
			out[i].Image = nil
		}
	}
	return out
}

// Remote references (URLs) are never stripped, only self-contained payloads.
func isEmbeddedImage(image *string) bool {
	return image != nil && strings.HasPrefix(*image, "data:")
}
