// Package client is the typed API wrapper the user-facing app talks through.
// It classifies failures into transport, authorization and validation errors
// with human-readable messages; everything else surfaces as a server error.
package client

import (
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"

	"github.com/Rogue-Bear-Innovations/giftkeeper-back/internal/transport"
)

var (
	ErrTransport    = errors.New("no response received from the server")
	ErrUnauthorized = errors.New("you are not authorized to do that")
	ErrValidation   = errors.New("the submitted data is invalid")
	ErrNotFound     = errors.New("the requested record does not exist")
	ErrServer       = errors.New("the server could not handle the request")
)

type API struct {
	http *resty.Client
}

func New(baseURL, token string) *API {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json")
	if token != "" {
		c.SetHeader("x-token", token)
	}
	return &API{http: c}
}

func (a *API) SetToken(token string) {
	a.http.SetHeader("x-token", token)
}

func (a *API) Register(email, password string) (string, error) {
	out := transport.TokenResp{}
	if err := a.post("/auth/register", map[string]string{"email": email, "password": password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *API) Login(email, password string) (string, error) {
	out := transport.TokenResp{}
	if err := a.post("/auth/login", map[string]string{"email": email, "password": password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (a *API) GiftList(filter map[string]string) ([]transport.GiftResp, error) {
	out := make([]transport.GiftResp, 0)
	resp, err := a.http.R().SetQueryParams(filter).SetResult(&out).Get("/gifts")
	if err != nil {
		return nil, errors.Wrap(ErrTransport, err.Error())
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) GiftGet(id string) (*transport.GiftResp, error) {
	out := transport.GiftResp{}
	if err := a.get("/gifts/"+id, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) GiftCreate(req *transport.GiftReq) (*transport.GiftResp, error) {
	out := transport.GiftResp{}
	if err := a.post("/gifts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) GiftUpdate(id string, req *transport.GiftReq) (*transport.GiftResp, error) {
	out := transport.GiftResp{}
	if err := a.put("/gifts/"+id, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) GiftDelete(id string) error {
	return a.delete("/gifts/" + id)
}

func (a *API) ContactList() ([]transport.ContactResp, error) {
	out := make([]transport.ContactResp, 0)
	if err := a.get("/contacts", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) ContactCreate(req *transport.ContactReq) (*transport.ContactResp, error) {
	out := transport.ContactResp{}
	if err := a.post("/contacts", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) ContactDelete(id string) error {
	return a.delete("/contacts/" + id)
}

func (a *API) EventList(filter map[string]string) ([]transport.EventResp, error) {
	out := make([]transport.EventResp, 0)
	resp, err := a.http.R().SetQueryParams(filter).SetResult(&out).Get("/events")
	if err != nil {
		return nil, errors.Wrap(ErrTransport, err.Error())
	}
	if err := classify(resp); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) EventCreate(req *transport.EventReq) (*transport.EventResp, error) {
	out := transport.EventResp{}
	if err := a.post("/events", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *API) EventDelete(id string) error {
	return a.delete("/events/" + id)
}

func (a *API) NotificationList() ([]transport.NotificationResp, error) {
	out := make([]transport.NotificationResp, 0)
	if err := a.get("/notifications", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *API) UploadURL() (*transport.UploadURLResp, error) {
	out := transport.UploadURLResp{}
	if err := a.post("/images/upload-url", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

////////

func (a *API) get(path string, out interface{}) error {
	resp, err := a.http.R().SetResult(out).Get(path)
	if err != nil {
		return errors.Wrap(ErrTransport, err.Error())
	}
	return classify(resp)
}

func (a *API) post(path string, body, out interface{}) error {
	req := a.http.R().SetResult(out)
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return errors.Wrap(ErrTransport, err.Error())
	}
	return classify(resp)
}

func (a *API) put(path string, body, out interface{}) error {
	resp, err := a.http.R().SetBody(body).SetResult(out).Put(path)
	if err != nil {
		return errors.Wrap(ErrTransport, err.Error())
	}
	return classify(resp)
}

func (a *API) delete(path string) error {
	resp, err := a.http.R().Delete(path)
	if err != nil {
		return errors.Wrap(ErrTransport, err.Error())
	}
	return classify(resp)
}

func classify(resp *resty.Response) error {
	switch {
	case resp.StatusCode() < 400:
		return nil
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return ErrUnauthorized
	case resp.StatusCode() == http.StatusBadRequest:
		return ErrValidation
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	default:
		return errors.Wrap(ErrServer, fmt.Sprintf("status %d", resp.StatusCode()))
	}
}
