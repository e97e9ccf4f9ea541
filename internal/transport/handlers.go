package transport

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/db"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/reminder"
	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/service"
)

func (s *HTTPServer) Register(c echo.Context) error {
	req := RegisterReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.svc.Register(req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, &TokenResp{Token: token})
}

func (s *HTTPServer) Login(c echo.Context) error {
	req := LoginReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	token, err := s.svc.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrLoginUserNotFound) || errors.Is(err, service.ErrLoginPasswordDoesNotMatch) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		return err
	}
	return c.JSON(http.StatusOK, &TokenResp{Token: token})
}

////////

func (s *HTTPServer) ContactList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	contacts, err := s.svc.ContactList(user.ID)
	if err != nil {
		return err
	}

	resp := make([]ContactResp, len(contacts))
	for i := range contacts {
		resp[i] = contactToResp(&contacts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) ContactGet(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	contact, err := s.svc.ContactGet(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactToResp(contact))
}

func (s *HTTPServer) ContactCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := ContactReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model := contactFromReq(&req)
	created, err := s.svc.ContactCreate(user.ID, &model)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, contactToResp(created))
}

func (s *HTTPServer) ContactUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := ContactReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model := contactFromReq(&req)
	updated, err := s.svc.ContactUpdate(id, &model)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contactToResp(updated))
}

func (s *HTTPServer) ContactDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.svc.ContactDelete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

////////

func (s *HTTPServer) EventList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	filter := service.EventFilter{}
	if v := c.QueryParam("startDate"); v != "" {
		filter.StartDate = &v
	}
	if v := c.QueryParam("endDate"); v != "" {
		filter.EndDate = &v
	}

	events, err := s.svc.EventList(user.ID, filter)
	if err != nil {
		return err
	}

	resp := make([]EventResp, len(events))
	for i := range events {
		resp[i] = eventToResp(&events[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) EventGet(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	event, err := s.svc.EventGet(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventToResp(event))
}

func (s *HTTPServer) EventCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := EventReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model := eventFromReq(&req)
	created, err := s.svc.EventCreate(user.ID, &model)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, eventToResp(created))
}

func (s *HTTPServer) EventUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := EventReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model := eventFromReq(&req)
	updated, err := s.svc.EventUpdate(id, &model)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, eventToResp(updated))
}

func (s *HTTPServer) EventDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.svc.EventDelete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

////////

func (s *HTTPServer) GiftList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	filter := service.GiftFilter{}
	if v := c.QueryParam("type"); v != "" {
		filter.Type = &v
	}
	if v := c.QueryParam("contactId"); v != "" {
		filter.ContactID = &v
	}
	if v := c.QueryParam("eventId"); v != "" {
		filter.EventID = &v
	}

	gifts, err := s.svc.GiftList(user.ID, filter)
	if err != nil {
		return err
	}

	resp := make([]GiftResp, len(gifts))
	for i := range gifts {
		resp[i] = giftToResp(&gifts[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) GiftGet(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	gift, err := s.svc.GiftGet(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, giftToResp(gift))
}

func (s *HTTPServer) GiftCreate(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	req := GiftReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model := giftFromReq(&req)
	created, err := s.svc.GiftCreate(user.ID, &model)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, giftToResp(created))
}

func (s *HTTPServer) GiftUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := GiftReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	model := giftFromReq(&req)
	updated, err := s.svc.GiftUpdate(id, &model)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, giftToResp(updated))
}

func (s *HTTPServer) GiftDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.svc.GiftDelete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

////////

func (s *HTTPServer) UserGet(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	user, err := s.svc.UserGet(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userToResp(user))
}

func (s *HTTPServer) UserCreate(c echo.Context) error {
	req := UserReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	prefs := db.Preferences{NotificationsEnabled: true, Theme: "light"}
	if req.NotificationsEnabled != nil {
		prefs.NotificationsEnabled = *req.NotificationsEnabled
	}
	if req.Theme != nil {
		prefs.Theme = *req.Theme
	}

	created, err := s.svc.UserCreate(req.Email, req.Name, prefs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userToResp(created))
}

func (s *HTTPServer) UserUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := UserReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	var prefs *db.Preferences
	if req.NotificationsEnabled != nil || req.Theme != nil {
		current, err := s.svc.UserGet(id)
		if err != nil {
			return err
		}
		p := current.Preferences
		if req.NotificationsEnabled != nil {
			p.NotificationsEnabled = *req.NotificationsEnabled
		}
		if req.Theme != nil {
			p.Theme = *req.Theme
		}
		prefs = &p
	}

	updated, err := s.svc.UserUpdate(id, &req.Name, prefs)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userToResp(updated))
}

func (s *HTTPServer) UserDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.svc.UserDelete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

////////

func (s *HTTPServer) NotificationList(c echo.Context) error {
	user, err := GetUserFromContext(c)
	if err != nil {
		return err
	}

	notifications, err := s.svc.NotificationList(user.ID)
	if err != nil {
		return err
	}

	resp := make([]NotificationResp, len(notifications))
	for i := range notifications {
		resp[i] = notificationToResp(&notifications[i])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *HTTPServer) NotificationGet(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	n, err := s.svc.NotificationGet(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationToResp(n))
}

func (s *HTTPServer) NotificationUpdate(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}

	req := NotificationReadReq{}
	if err := BindAndValidate(c, &req); err != nil {
		return err
	}

	n, err := s.svc.NotificationMarkRead(id, req.Read)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notificationToResp(n))
}

func (s *HTTPServer) NotificationDelete(c echo.Context) error {
	id, err := GetParam(c, "id")
	if err != nil {
		return err
	}
	if err := s.svc.NotificationDelete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

////////

func (s *HTTPServer) ImageUploadURL(c echo.Context) error {
	if _, err := GetUserFromContext(c); err != nil {
		return err
	}

	upload, err := s.objects.UploadURL(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, UploadURLResp{
		Key:       upload.Key,
		UploadURL: upload.UploadURL,
		ReadURL:   upload.ReadURL,
	})
}

func (s *HTTPServer) ReminderRun(c echo.Context) error {
	matched, err := s.generator.Run(c.Request().Context(), time.Now())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ReminderRunResp{Body: reminder.RunResult(matched)})
}
