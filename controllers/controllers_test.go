package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/middleware"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/store"
	"github.com/quillhq/quill/utils"
)

// envelope mirrors the uniform JSON response for decoding in tests.
type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    struct {
		Post    models.Post   `json:"post"`
		Items   []models.Post `json:"items"`
		Total   int           `json:"total"`
		Token   string        `json:"token"`
		User    models.User   `json:"user"`
		Message string        `json:"message"`
	} `json:"data"`
}

// newTestServer wires the API routes against an in-memory store, without
// the rate limiter and access log so tests stay deterministic.
func newTestServer(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	mem := store.NewMemory()
	authController := NewAuthController(mem.Users())
	postController := NewPostController(mem)

	r := gin.New()
	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.POST("/logout", middleware.AuthRequired(), authController.Logout)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	api.GET("/posts", postController.ListPosts)
	api.GET("/posts/:id", postController.GetPost)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/posts", postController.CreatePost)
	protected.PUT("/posts/:id", postController.UpdatePost)
	protected.DELETE("/posts/:id", postController.DeletePost)

	return r, mem
}

func seedUser(t *testing.T, mem *store.Memory, name string) (models.User, string) {
	t.Helper()
	hash, err := utils.HashPassword("password123")
	require.NoError(t, err)
	user := models.User{Username: name, PasswordHash: hash}
	require.NoError(t, mem.CreateUser(context.Background(), &user))
	token, err := utils.GenerateToken(user.ID, user.Username, time.Hour)
	require.NoError(t, err)
	return user, token
}

func doRequest(t *testing.T, r http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}
