package test_functional

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	tokenResp struct {
		Token string `json:"token"`
	}

	giftResp struct {
		ID   string `json:"giftId"`
		Name string `json:"name"`
		Type string `json:"type"`
	}
)

func registerUser(t *testing.T, ctx context.Context) string {
	t.Helper()

	u := AppBaseURL
	u.Path = "/auth/register"

	resp, err := resty.New().
		R().
		SetHeader("Content-Type", "application/json").
		SetContext(ctx).
		SetResult(&tokenResp{}).
		SetBody(fmt.Sprintf(`{"email": "test-%d@gmail.com", "password": "111111111111"}`, time.Now().UnixNano())).
		Post(u.String())
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())

	got, ok := resp.Result().(*tokenResp)
	require.True(t, ok)
	require.NotEmpty(t, got.Token)
	return got.Token
}

func TestRegister(t *testing.T) {
	t.Run("successful register", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		token := registerUser(t, ctx)
		assert.NotEmpty(t, token)
	})

	t.Run("bad body", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
		defer cancel()

		u := AppBaseURL
		u.Path = "/auth/register"

		resp, err := resty.New().
			R().
			SetHeader("Content-Type", "application/json").
			SetContext(ctx).
			SetBody(`{"something": "???"}`).
			Post(u.String())
		require.NoError(t, err)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode())
	})
}

func TestGiftCrud(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	token := registerUser(t, ctx)

	cl := resty.New().
		SetBaseURL(AppBaseURL.String()).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-token", token)

	resp, err := cl.R().
		SetContext(ctx).
		SetResult(&giftResp{}).
		SetBody(`{"name": "Watch", "type": "given", "date": "2024-01-05"}`).
		Post("/gifts")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode())

	created, ok := resp.Result().(*giftResp)
	require.True(t, ok)
	require.NotEmpty(t, created.ID)

	resp, err = cl.R().
		SetContext(ctx).
		SetResult(&giftResp{}).
		Get("/gifts/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	got, ok := resp.Result().(*giftResp)
	require.True(t, ok)
	assert.Equal(t, "Watch", got.Name)

	resp, err = cl.R().
		SetContext(ctx).
		Delete("/gifts/" + created.ID)
	require.NoError(t, err)
	require.Equal(t, http.StatusNoContent, resp.StatusCode())

	resp, err = cl.R().
		SetContext(ctx).
		Get("/gifts/" + created.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
}
