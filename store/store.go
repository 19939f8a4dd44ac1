// Package store defines the persistence boundary for posts and users.
// Handlers depend only on these interfaces; the MySQL implementation lives
// in gorm.go and an in-memory one in memory.go.
package store

import (
	"context"
	"errors"

	"github.com/quillhq/quill/models"
)

var (
	// ErrNotFound indicates the referenced record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrNotAuthor indicates the requester is not the author of the post.
	ErrNotAuthor = errors.New("user is not the author of the post")
	// ErrUsernameTaken indicates a registration attempt with an existing username.
	ErrUsernameTaken = errors.New("username already taken")
)

// PostStore persists blog posts. Reads return posts with the author
// association populated.
type PostStore interface {
	// List returns all posts ordered by creation time, newest first.
	List(ctx context.Context) ([]models.Post, error)
	// ByID returns a single post or ErrNotFound.
	ByID(ctx context.Context, id uint) (models.Post, error)
	// Create inserts a post and assigns its ID and timestamps.
	Create(ctx context.Context, post *models.Post) error
	// Update persists title and body changes of an existing post. The
	// author and creation time never change.
	Update(ctx context.Context, post *models.Post) error
	// Delete removes a post permanently or returns ErrNotFound.
	Delete(ctx context.Context, id uint) error
}

// UserStore persists accounts.
type UserStore interface {
	ByID(ctx context.Context, id uint) (models.User, error)
	ByUsername(ctx context.Context, username string) (models.User, error)
	// Create inserts a user or returns ErrUsernameTaken.
	Create(ctx context.Context, user *models.User) error
}
