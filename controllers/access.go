package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/store"
	"github.com/quillhq/quill/utils"
)

// ResolvePost loads a post with its author and optionally enforces that the
// requester is the author. Every mutating handler applies this guard before
// acting.
//
// Returns store.ErrNotFound when no post with the id exists, and
// store.ErrNotAuthor when enforceAuthor is set and currentUserID differs
// from the post's author. Read-only.
func ResolvePost(ctx context.Context, posts store.PostStore, postID, currentUserID uint, enforceAuthor bool) (models.Post, error) {
	post, err := posts.ByID(ctx, postID)
	if err != nil {
		return models.Post{}, err
	}
	if enforceAuthor && post.UserID != currentUserID {
		return models.Post{}, store.ErrNotAuthor
	}
	return post, nil
}

// respondPostError translates guard and store failures into the API error
// taxonomy: absent post -> 404, foreign author -> 403, anything else -> 500.
func respondPostError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.Error(ctx, http.StatusNotFound, 40401, "post not found")
	case errors.Is(err, store.ErrNotAuthor):
		utils.Error(ctx, http.StatusForbidden, 40301, "you are not the author of this post")
	default:
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to load post")
	}
}
