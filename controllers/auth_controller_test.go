package controllers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginMeRoundTrip(t *testing.T) {
	r, _ := newTestServer(t)

	w, reg := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "carol", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "carol", reg.Data.User.Username)
	assert.NotZero(t, reg.Data.User.ID)

	w, login := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "carol", "password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEmpty(t, login.Data.Token)

	w, me := doRequest(t, r, http.MethodGet, "/api/v1/auth/me", login.Data.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, reg.Data.User.ID, me.Data.User.ID)
	assert.Equal(t, "carol", me.Data.User.Username)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	r, _ := newTestServer(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "dave", "password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "dave", "password": "different1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, 40901, env.Code)
}

func TestRegisterValidation(t *testing.T) {
	r, _ := newTestServer(t)

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "eve",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": "eve", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	r, mem := newTestServer(t)
	seedUser(t, mem, "frank")

	w, _ := doRequest(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "frank", "password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "nobody", "password": "whatever1",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesToken(t *testing.T) {
	r, mem := newTestServer(t)
	_, token := seedUser(t, mem, "grace")

	w, _ := doRequest(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = doRequest(t, r, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
