package controllers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/models"
	"github.com/quillhq/quill/store"
)

func seedPost(t *testing.T, mem *store.Memory, authorID uint, title string) models.Post {
	t.Helper()
	post := models.Post{UserID: authorID, Title: title, Body: "body"}
	require.NoError(t, mem.Create(context.Background(), &post))
	return post
}

func TestResolvePostMissing(t *testing.T) {
	mem := store.NewMemory()

	_, err := ResolvePost(context.Background(), mem, 42, 1, false)
	assert.ErrorIs(t, err, store.ErrNotFound)

	_, err = ResolvePost(context.Background(), mem, 42, 1, true)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestResolvePostEnforcesAuthor(t *testing.T) {
	mem := store.NewMemory()
	post := seedPost(t, mem, 1, "owned")

	_, err := ResolvePost(context.Background(), mem, post.ID, 2, true)
	assert.ErrorIs(t, err, store.ErrNotAuthor)

	got, err := ResolvePost(context.Background(), mem, post.ID, 1, true)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestResolvePostWithoutEnforcement(t *testing.T) {
	mem := store.NewMemory()
	post := seedPost(t, mem, 1, "public")

	// any requester, even anonymous (zero user id), may read
	got, err := ResolvePost(context.Background(), mem, post.ID, 0, false)
	require.NoError(t, err)
	assert.Equal(t, "public", got.Title)

	got, err = ResolvePost(context.Background(), mem, post.ID, 7, false)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}
