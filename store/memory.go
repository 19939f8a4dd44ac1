package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/quillhq/quill/models"
)

// Memory is an in-memory store implementing both PostStore and UserStore.
// It backs the handler tests and DB-less local runs. IDs are assigned
// monotonically so list order is stable for posts created within the same
// clock tick.
type Memory struct {
	mu         sync.RWMutex
	posts      map[uint]models.Post
	users      map[uint]models.User
	nextPostID uint
	nextUserID uint
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		posts:      map[uint]models.Post{},
		users:      map[uint]models.User{},
		nextPostID: 1,
		nextUserID: 1,
	}
}

func (m *Memory) List(ctx context.Context) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	posts := make([]models.Post, 0, len(m.posts))
	for _, p := range m.posts {
		p.User = m.users[p.UserID]
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (m *Memory) ByID(ctx context.Context, id uint) (models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	post, ok := m.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	post.User = m.users[post.UserID]
	return post, nil
}

func (m *Memory) Create(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	post.ID = m.nextPostID
	m.nextPostID++
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now
	m.posts[post.ID] = *post
	post.User = m.users[post.UserID]
	return nil
}

func (m *Memory) Update(ctx context.Context, post *models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, ok := m.posts[post.ID]
	if !ok {
		return ErrNotFound
	}
	stored.Title = post.Title
	stored.Body = post.Body
	stored.UpdatedAt = time.Now()
	m.posts[post.ID] = stored
	return nil
}

func (m *Memory) Delete(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

func (m *Memory) UserByID(ctx context.Context, id uint) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return user, nil
}

func (m *Memory) ByUsername(ctx context.Context, username string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}
	user.ID = m.nextUserID
	m.nextUserID++
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	m.users[user.ID] = *user
	return nil
}

// Users returns a UserStore view over the same data, resolving the method
// set clash between PostStore.ByID/Create and UserStore.ByID/Create.
func (m *Memory) Users() UserStore {
	return memoryUsers{m}
}

type memoryUsers struct{ m *Memory }

func (u memoryUsers) ByID(ctx context.Context, id uint) (models.User, error) {
	return u.m.UserByID(ctx, id)
}

func (u memoryUsers) ByUsername(ctx context.Context, username string) (models.User, error) {
	return u.m.ByUsername(ctx, username)
}

func (u memoryUsers) Create(ctx context.Context, user *models.User) error {
	return u.m.CreateUser(ctx, user)
}
