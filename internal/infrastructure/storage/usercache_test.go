package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/abyxtask/taskctl/internal/domain/entities"
)

func openTestCache(t *testing.T) *UserCache {
	t.Helper()

	cache, err := OpenUserCache(filepath.Join(t.TempDir(), "user.db"))
	if err != nil {
		t.Fatalf("OpenUserCache failed: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestUserCacheRoundTrip(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	if _, err := cache.Get(ctx); !errors.Is(err, entities.ErrUserNotFound) {
		t.Fatalf("Expected ErrUserNotFound from empty cache, got %v", err)
	}

	user := &entities.User{
		ID:             "u1",
		Email:          "a@b.co",
		DisplayName:    "A",
		ProfilePicture: "pic.png",
	}
	if err := cache.Save(ctx, user); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if *got != *user {
		t.Errorf("Expected %+v, got %+v", user, got)
	}
}

func TestUserCacheSaveReplaces(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	cache.Save(ctx, &entities.User{ID: "u1", Email: "first@b.co"})
	cache.Save(ctx, &entities.User{ID: "u2", Email: "second@b.co"})

	got, err := cache.Get(ctx)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.ID != "u2" {
		t.Errorf("Expected the second save to replace the first, got %q", got.ID)
	}
}

func TestUserCacheDelete(t *testing.T) {
	cache := openTestCache(t)
	ctx := context.Background()

	cache.Save(ctx, &entities.User{ID: "u1"})
	if err := cache.Delete(ctx); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := cache.Get(ctx); !errors.Is(err, entities.ErrUserNotFound) {
		t.Errorf("Expected ErrUserNotFound after delete, got %v", err)
	}
}
