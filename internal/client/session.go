package client

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/localstore"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/transport"
)

// Session pairs the API wrapper with the per-user local store, the way the
// app uses them together: mutate the local working set first, then push the
// change to the server. A failed server call leaves local state in place; a
// local persist warning does not block the server call.
type Session struct {
	api    *API
	store  *localstore.Sync
	logger *zap.SugaredLogger
}

func NewSession(api *API, store *localstore.Sync, logger *zap.SugaredLogger) *Session {
	return &Session{
		api:    api,
		store:  store,
		logger: logger,
	}
}

// OpenSession opens the badger-backed local store at path (in memory when
// empty) and hydrates the session for the user.
func OpenSession(baseURL, token, storePath, userID string, logger *zap.SugaredLogger) (*Session, func() error, error) {
	kv, err := localstore.OpenBadger(storePath)
	if err != nil {
		return nil, nil, errors.Wrap(err, "open local store")
	}
	sync, err := localstore.NewSync(kv, userID, logger)
	if err != nil {
		_ = kv.Close()
		return nil, nil, errors.Wrap(err, "hydrate local store")
	}
	return NewSession(New(baseURL, token), sync, logger), kv.Close, nil
}

func (s *Session) Local() *localstore.Sync {
	return s.store
}

func (s *Session) AddGift(req *transport.GiftReq) (*transport.GiftResp, error) {
	created, err := s.api.GiftCreate(req)
	if err != nil {
		return nil, err
	}

	if err := s.store.AddGift(giftFromResp(created)); err != nil {
		// server accepted it; local persistence degraded
		s.logger.Warnw("gift saved remotely but local persist degraded", "gift_id", created.ID, "error", err)
	}
	return created, nil
}

func (s *Session) DeleteGift(direction, id string) error {
	if err := s.api.GiftDelete(id); err != nil {
		return err
	}
	if err := s.store.DeleteGift(direction, id); err != nil {
		s.logger.Warnw("gift deleted remotely but local persist degraded", "gift_id", id, "error", err)
	}
	return nil
}

func (s *Session) AddContact(req *transport.ContactReq) (*transport.ContactResp, error) {
	created, err := s.api.ContactCreate(req)
	if err != nil {
		return nil, err
	}

	dates := make([]localstore.ImportantDate, len(created.ImportantDates))
	for i := range created.ImportantDates {
		dates[i] = localstore.ImportantDate{
			Date:     created.ImportantDates[i].Date,
			Occasion: created.ImportantDates[i].Occasion,
		}
	}
	contact := localstore.Contact{
		ID:             created.ID,
		Name:           created.Name,
		Interests:      created.Interests,
		ImportantDates: dates,
	}
	if created.Email != nil {
		contact.Email = *created.Email
	}
	if created.Relationship != nil {
		contact.Relationship = *created.Relationship
	}
	if err := s.store.AddContact(contact); err != nil {
		s.logger.Warnw("contact saved remotely but local persist degraded", "contact_id", created.ID, "error", err)
	}
	return created, nil
}

func (s *Session) AddEvent(req *transport.EventReq) (*transport.EventResp, error) {
	created, err := s.api.EventCreate(req)
	if err != nil {
		return nil, err
	}

	event := localstore.Event{
		ID:         created.ID,
		Name:       created.Name,
		Date:       created.Date,
		Type:       created.Type,
		ContactIDs: created.ContactIDs,
	}
	if created.Notes != nil {
		event.Notes = *created.Notes
	}
	if err := s.store.AddEvent(event); err != nil {
		s.logger.Warnw("event saved remotely but local persist degraded", "event_id", created.ID, "error", err)
	}
	return created, nil
}

func giftFromResp(g *transport.GiftResp) localstore.Gift {
	gift := localstore.Gift{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Direction:   g.Type,
		Date:        g.Date,
		ContactID:   g.ContactID,
		EventID:     g.EventID,
		Image:       g.Image,
		Tags:        g.Tags,
		Cost:        g.Cost,
		Thanked:     g.Thanked,
	}
	if g.Notes != nil {
		gift.Notes = *g.Notes
	}
	return gift
}
