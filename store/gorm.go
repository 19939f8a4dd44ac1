package store

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quillhq/quill/models"
)

// GormPosts is the MySQL-backed PostStore.
type GormPosts struct {
	db *gorm.DB
}

// NewGormPosts wraps a gorm handle as a PostStore.
func NewGormPosts(db *gorm.DB) *GormPosts {
	return &GormPosts{db: db}
}

func (s *GormPosts) List(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Preload("User").Order("created_at DESC, id DESC").Find(&posts).Error
	return posts, err
}

func (s *GormPosts) ByID(ctx context.Context, id uint) (models.Post, error) {
	var post models.Post
	if err := s.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Post{}, ErrNotFound
		}
		return models.Post{}, err
	}
	return post, nil
}

func (s *GormPosts) Create(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *GormPosts) Update(ctx context.Context, post *models.Post) error {
	res := s.db.WithContext(ctx).Model(&models.Post{ID: post.ID}).
		Updates(map[string]interface{}{"title": post.Title, "body": post.Body})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormPosts) Delete(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&models.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormUsers is the MySQL-backed UserStore.
type GormUsers struct {
	db *gorm.DB
}

// NewGormUsers wraps a gorm handle as a UserStore.
func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db}
}

func (s *GormUsers) ByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *GormUsers) ByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *GormUsers) Create(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}
