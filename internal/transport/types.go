package transport

import (
	"time"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
)

type (
	RegisterReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=12"`
	}

	LoginReq struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	TokenResp struct {
		Token string `json:"token"`
	}

	UserReq struct {
		Email                string  `json:"email" validate:"required,email"`
		Name                 string  `json:"name"`
		NotificationsEnabled *bool   `json:"notificationsEnabled"`
		Theme                *string `json:"theme"`
	}

	UserResp struct {
		ID                   string `json:"userId"`
		Email                string `json:"email"`
		Name                 string `json:"name,omitempty"`
		NotificationsEnabled bool   `json:"notificationsEnabled"`
		Theme                string `json:"theme,omitempty"`
	}

	ImportantDateReq struct {
		Date     string `json:"date" validate:"required"`
		Occasion string `json:"occasion" validate:"required"`
	}

	ContactReq struct {
		Name           string             `json:"name" validate:"required"`
		Email          *string            `json:"email" validate:"omitempty,email"`
		Relationship   *string            `json:"relationship"`
		Interests      []string           `json:"interests"`
		ImportantDates []ImportantDateReq `json:"importantDates" validate:"dive"`
		Notes          *string            `json:"notes"`
	}

	ContactResp struct {
		ID             string             `json:"contactId"`
		Name           string             `json:"name"`
		Email          *string            `json:"email,omitempty"`
		Relationship   *string            `json:"relationship,omitempty"`
		Interests      []string           `json:"interests"`
		ImportantDates []ImportantDateReq `json:"importantDates"`
		Notes          *string            `json:"notes,omitempty"`
	}

	EventReq struct {
		Name               string   `json:"name" validate:"required"`
		Date               string   `json:"date" validate:"required"`
		Type               string   `json:"type"`
		ContactIDs         []string `json:"contactIds"`
		Notes              *string  `json:"notes"`
		ReminderEnabled    bool     `json:"reminderEnabled"`
		ReminderDaysBefore int      `json:"reminderDaysBefore"`
	}

	EventResp struct {
		ID                 string   `json:"eventId"`
		Name               string   `json:"name"`
		Date               string   `json:"date"`
		Type               string   `json:"type,omitempty"`
		ContactIDs         []string `json:"contactIds"`
		Notes              *string  `json:"notes,omitempty"`
		ReminderEnabled    bool     `json:"reminderEnabled"`
		ReminderDaysBefore int      `json:"reminderDaysBefore"`
	}

	GiftReq struct {
		Name        string   `json:"name" validate:"required"`
		Description string   `json:"description"`
		Type        string   `json:"type" validate:"required,oneof=given received"`
		Date        string   `json:"date"`
		ContactID   string   `json:"contactId"`
		EventID     string   `json:"eventId"`
		Image       *string  `json:"image"`
		Tags        []string `json:"tags"`
		Notes       *string  `json:"notes"`
		Cost        *float64 `json:"cost"`
		Thanked     *bool    `json:"thanked"`
	}

	GiftResp struct {
		ID          string   `json:"giftId"`
		Name        string   `json:"name"`
		Description string   `json:"description,omitempty"`
		Type        string   `json:"type"`
		Date        string   `json:"date,omitempty"`
		ContactID   string   `json:"contactId,omitempty"`
		EventID     string   `json:"eventId,omitempty"`
		Image       *string  `json:"image,omitempty"`
		Tags        []string `json:"tags"`
		Notes       *string  `json:"notes,omitempty"`
		Cost        *float64 `json:"cost,omitempty"`
		Thanked     *bool    `json:"thanked,omitempty"`
	}

	NotificationReadReq struct {
		Read bool `json:"read"`
	}

	NotificationResp struct {
		ID        string `json:"notificationId"`
		EventID   string `json:"eventId"`
		ContactID string `json:"contactId"`
		Message   string `json:"message"`
		Date      string `json:"date,omitempty"`
		CreatedAt string `json:"createdAt"`
		Read      bool   `json:"read"`
	}

	UploadURLResp struct {
		Key       string `json:"key"`
		UploadURL string `json:"uploadUrl"`
		ReadURL   string `json:"readUrl"`
	}

	ReminderRunResp struct {
		Body string `json:"body"`
	}
)

func userToResp(u *db.User) UserResp {
	return UserResp{
		ID:                   u.ID,
		Email:                u.Email,
		Name:                 u.Name,
		NotificationsEnabled: u.Preferences.NotificationsEnabled,
		Theme:                u.Preferences.Theme,
	}
}

func contactToResp(c *db.Contact) ContactResp {
	dates := make([]ImportantDateReq, len(c.ImportantDates))
	for i := range c.ImportantDates {
		dates[i] = ImportantDateReq{
			Date:     c.ImportantDates[i].Date,
			Occasion: c.ImportantDates[i].Occasion,
		}
	}
	return ContactResp{
		ID:             c.ID,
		Name:           c.Name,
		Email:          c.Email,
		Relationship:   c.Relationship,
		Interests:      c.Interests,
		ImportantDates: dates,
		Notes:          c.Notes,
	}
}

func contactFromReq(req *ContactReq) db.Contact {
	dates := make(db.ImportantDateList, len(req.ImportantDates))
	for i := range req.ImportantDates {
		dates[i] = db.ImportantDate{
			Date:     req.ImportantDates[i].Date,
			Occasion: req.ImportantDates[i].Occasion,
		}
	}
	interests := req.Interests
	if interests == nil {
		interests = []string{}
	}
	return db.Contact{
		Name:           req.Name,
		Email:          req.Email,
		Relationship:   req.Relationship,
		Interests:      interests,
		ImportantDates: dates,
		Notes:          req.Notes,
	}
}

func eventToResp(e *db.Event) EventResp {
	return EventResp{
		ID:                 e.ID,
		Name:               e.Name,
		Date:               e.Date,
		Type:               e.Type,
		ContactIDs:         e.ContactIDs,
		Notes:              e.Notes,
		ReminderEnabled:    e.ReminderEnabled,
		ReminderDaysBefore: e.ReminderDaysBefore,
	}
}

func eventFromReq(req *EventReq) db.Event {
	contactIDs := req.ContactIDs
	if contactIDs == nil {
		contactIDs = []string{}
	}
	return db.Event{
		Name:               req.Name,
		Date:               req.Date,
		Type:               req.Type,
		ContactIDs:         contactIDs,
		Notes:              req.Notes,
		ReminderEnabled:    req.ReminderEnabled,
		ReminderDaysBefore: req.ReminderDaysBefore,
	}
}

func giftToResp(g *db.Gift) GiftResp {
	return GiftResp{
		ID:          g.ID,
		Name:        g.Name,
		Description: g.Description,
		Type:        g.Direction,
		Date:        g.Date,
		ContactID:   g.ContactID,
		EventID:     g.EventID,
		Image:       g.Image,
		Tags:        g.Tags,
		Notes:       g.Notes,
		Cost:        g.Cost,
		Thanked:     g.Thanked,
	}
}

func giftFromReq(req *GiftReq) db.Gift {
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return db.Gift{
		Name:        req.Name,
		Description: req.Description,
		Direction:   req.Type,
		Date:        req.Date,
		ContactID:   req.ContactID,
		EventID:     req.EventID,
		Image:       req.Image,
		Tags:        tags,
		Notes:       req.Notes,
		Cost:        req.Cost,
		Thanked:     req.Thanked,
	}
}

func notificationToResp(n *db.Notification) NotificationResp {
	return NotificationResp{
		ID:        n.ID,
		EventID:   n.EventID,
		ContactID: n.ContactID,
		Message:   n.Message,
		Date:      n.Date,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		Read:      n.Read,
	}
}
