package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix   = "user:%d"
	GameKeyPrefix   = "game:%d"
	GamesListPrefix = "games:list"
	BlogsListPrefix = "blogs:list"
)

const (
	UserTTL = 5 * time.Minute
	GameTTL = 30 * time.Minute
	ListTTL = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func GameKey(gameID uint) string {
	return fmt.Sprintf(GameKeyPrefix, gameID)
}

// GamesListKey caches the anonymous first catalog page per page size.
func GamesListKey(limit int) string {
	return fmt.Sprintf("%s:%d", GamesListPrefix, limit)
}

// BlogsListKey caches the uncategorized first blog page per page size.
func BlogsListKey(limit int) string {
	return fmt.Sprintf("%s:%d", BlogsListPrefix, limit)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidatePrefix removes every key under the prefix. List pages are keyed
// per page size, so invalidation walks the keyspace.
func InvalidatePrefix(ctx context.Context, prefix string) {
	if client == nil {
		return
	}
	iter := client.Scan(ctx, 0, prefix+":*", 0).Iterator()
	for iter.Next(ctx) {
		client.Del(ctx, iter.Val())
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateGame(ctx context.Context, gameID uint) {
	Invalidate(ctx, GameKey(gameID))
	InvalidatePrefix(ctx, GamesListPrefix)
}

func InvalidateGamesList(ctx context.Context) {
	InvalidatePrefix(ctx, GamesListPrefix)
}

func InvalidateBlogsList(ctx context.Context) {
	InvalidatePrefix(ctx, BlogsListPrefix)
}
