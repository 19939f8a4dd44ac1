package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/middleware"
	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/store"
	"github.com/quillhq/quill/utils"
)

// PostController manages CRUD operations for posts.
type PostController struct {
	posts store.PostStore
}

// NewPostController creates a new PostController instance.
func NewPostController(posts store.PostStore) *PostController {
	return &PostController{posts: posts}
}

type postRequest struct {
	Title string `json:"title" binding:"required,min=1"`
	Body  string `json:"body"`
}

// ListPosts returns all posts, newest first, each with author information.
func (p *PostController) ListPosts(ctx *gin.Context) {
	const cacheKey = "cache:posts:list"
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	posts, err := p.posts.List(ctx.Request.Context())
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to list posts")
		return
	}

	payload := gin.H{"items": posts, "total": len(posts)}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// GetPost returns a single post with its author. Public read, no ownership check.
func (p *PostController) GetPost(ctx *gin.Context) {
	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	cacheKey := "cache:post:detail:" + strconv.FormatUint(uint64(postID), 10)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(200, "application/json", b)
		return
	}

	post, err := ResolvePost(ctx.Request.Context(), p.posts, postID, 0, false)
	if err != nil {
		respondPostError(ctx, err)
		return
	}

	payload := gin.H{"post": post}
	utils.CacheSetJSON(cacheKey, utils.JSONResponse{Code: 0, Message: "success", Data: payload}, time.Hour)
	utils.Success(ctx, payload)
}

// CreatePost allows authenticated users to create new posts.
func (p *PostController) CreatePost(ctx *gin.Context) {
	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40020, "title is required")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40021, "title cannot be empty")
		return
	}
	body := utils.Sanitize(req.Body)

	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	post := models.Post{
		UserID: userID,
		Title:  title,
		Body:   body,
	}
	if err := p.posts.Create(ctx.Request.Context(), &post); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to create post")
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")

	utils.Created(ctx, gin.H{"post": post})
}

// UpdatePost allows the author to change a post's title and body. The id,
// author and creation time are never touched.
func (p *PostController) UpdatePost(ctx *gin.Context) {
	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	var req postRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40022, "title is required")
		return
	}

	title := utils.Sanitize(strings.TrimSpace(req.Title))
	if title == "" {
		utils.Error(ctx, http.StatusBadRequest, 40023, "title cannot be empty")
		return
	}
	body := utils.Sanitize(req.Body)

	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40111, "unauthorized")
		return
	}

	post, err := ResolvePost(ctx.Request.Context(), p.posts, postID, userID, true)
	if err != nil {
		respondPostError(ctx, err)
		return
	}

	post.Title = title
	post.Body = body
	if err := p.posts.Update(ctx.Request.Context(), &post); err != nil {
		respondPostError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))

	utils.Success(ctx, gin.H{"post": post})
}

// DeletePost allows the author to delete their post permanently.
func (p *PostController) DeletePost(ctx *gin.Context) {
	postID, ok := parsePostID(ctx)
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40112, "unauthorized")
		return
	}

	if _, err := ResolvePost(ctx.Request.Context(), p.posts, postID, userID, true); err != nil {
		respondPostError(ctx, err)
		return
	}

	if err := p.posts.Delete(ctx.Request.Context(), postID); err != nil {
		respondPostError(ctx, err)
		return
	}

	utils.InvalidateByPrefix("cache:posts:list")
	utils.InvalidateByPrefix("cache:post:detail:" + strconv.FormatUint(uint64(postID), 10))

	utils.Success(ctx, gin.H{"message": "post deleted"})
}

func parsePostID(ctx *gin.Context) (uint, bool) {
	raw := ctx.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		utils.Error(ctx, http.StatusNotFound, 40400, "post not found")
		return 0, false
	}
	return uint(id), true
}

func currentUserID(ctx *gin.Context) (uint, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		return uint(v), true
	case int64:
		return uint(v), true
	case float64:
		return uint(v), true
	default:
		return 0, false
	}
}
