package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/utils"
)

func newAuthTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/protected", AuthRequired(), func(ctx *gin.Context) {
		uid, _ := ctx.Get(ContextUserIDKey)
		uname, _ := ctx.Get(ContextUsernameKey)
		ctx.JSON(http.StatusOK, gin.H{"user_id": uid, "username": uname})
	})
	return r
}

func get(r http.Handler, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRequiredRejectsMissingHeader(t *testing.T) {
	r := newAuthTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
}

func TestAuthRequiredRejectsMalformedHeader(t *testing.T) {
	r := newAuthTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token abc").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer  ").Code)
}

func TestAuthRequiredRejectsInvalidToken(t *testing.T) {
	r := newAuthTestRouter(t)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer not.a.jwt").Code)
}

func TestAuthRequiredRejectsExpiredToken(t *testing.T) {
	r := newAuthTestRouter(t)
	token, err := utils.GenerateToken(1, "alice", -time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

func TestAuthRequiredRejectsBlacklistedToken(t *testing.T) {
	r := newAuthTestRouter(t)
	token, err := utils.GenerateToken(2, "bob", time.Hour)
	require.NoError(t, err)

	utils.BlacklistToken(token, time.Now().Add(time.Hour))
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+token).Code)
}

func TestAuthRequiredPopulatesContext(t *testing.T) {
	r := newAuthTestRouter(t)
	token, err := utils.GenerateToken(7, "carol", time.Hour)
	require.NoError(t, err)

	w := get(r, "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":7,"username":"carol"}`, w.Body.String())
}
