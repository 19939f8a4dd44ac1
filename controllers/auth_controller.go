package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/config"
	"github.com/quillhq/quill/middleware"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/store"
	"github.com/quillhq/quill/utils"
)

// AuthController handles account registration and token based authentication.
type AuthController struct {
	users store.UserStore
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(users store.UserStore) *AuthController {
	return &AuthController{users: users}
}

type credentialsRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a local account with a bcrypt hashed password.
func (a *AuthController) Register(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "username and password are required")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || len(username) > 64 {
		utils.Error(ctx, http.StatusBadRequest, 40002, "invalid username")
		return
	}
	if len(req.Password) < 6 {
		utils.Error(ctx, http.StatusBadRequest, 40003, "password must be at least 6 characters")
		return
	}

	if _, err := a.users.ByUsername(ctx.Request.Context(), username); err == nil {
		utils.Error(ctx, http.StatusConflict, 40901, "username already taken")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		utils.Error(ctx, http.StatusInternalServerError, 50001, "failed to check username")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50002, "failed to hash password")
		return
	}

	user := models.User{Username: username, PasswordHash: hash}
	if err := a.users.Create(ctx.Request.Context(), &user); err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			utils.Error(ctx, http.StatusConflict, 40901, "username already taken")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50003, "failed to create user")
		return
	}

	utils.Created(ctx, gin.H{"user": user})
}

// Login verifies credentials and issues a JWT.
func (a *AuthController) Login(ctx *gin.Context) {
	var req credentialsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40004, "username and password are required")
		return
	}

	user, err := a.users.ByUsername(ctx.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "invalid username or password")
		return
	}

	ttl := time.Duration(config.Get().TokenTTLHours) * time.Hour
	token, err := utils.GenerateToken(user.ID, user.Username, ttl)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{"token": token, "user": user})
}

// Logout revokes the presented token until its natural expiration.
func (a *AuthController) Logout(ctx *gin.Context) {
	tokenVal, exists := ctx.Get(middleware.ContextTokenKey)
	token, _ := tokenVal.(string)
	if !exists || token == "" {
		utils.Error(ctx, http.StatusUnauthorized, 40107, "unauthorized")
		return
	}

	expiresAt := time.Now().Add(time.Duration(config.Get().TokenTTLHours) * time.Hour)
	if claims, err := utils.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	utils.BlacklistToken(token, expiresAt)

	utils.Success(ctx, gin.H{"message": "logged out"})
}

// Me returns the authenticated account.
func (a *AuthController) Me(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40108, "unauthorized")
		return
	}

	user, err := a.users.ByID(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to load user")
		return
	}

	utils.Success(ctx, gin.H{"user": user})
}
