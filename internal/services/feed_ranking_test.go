package services

import (
	"math"
	"testing"
	"time"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

func TestTrendingScore(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	// likes*3 + favorites*2 + comments*4 + delayCount*0.5 - hours*0.1
	post := &models.PublicPost{
		LikesCount:     10,
		FavoritesCount: 2,
		CommentsCount:  1,
		DelayCount:     4,
		CreatedAt:      now.Add(-2 * time.Hour),
	}
	if got := trendingScore(post, now); math.Abs(got-39.8) > 1e-9 {
		t.Errorf("score = %v, want 39.8", got)
	}

	older := *post
	older.CreatedAt = now.Add(-48 * time.Hour)
	if got := trendingScore(&older, now); math.Abs(got-35.2) > 1e-9 {
		t.Errorf("score = %v, want 35.2", got)
	}
}

func TestSortTrending(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)

	t.Run("recency breaks engagement ties", func(t *testing.T) {
		fresh := &models.PublicPost{ID: "fresh", LikesCount: 10, FavoritesCount: 2, CommentsCount: 1, DelayCount: 4, CreatedAt: now.Add(-2 * time.Hour)}
		stale := &models.PublicPost{ID: "stale", LikesCount: 10, FavoritesCount: 2, CommentsCount: 1, DelayCount: 4, CreatedAt: now.Add(-48 * time.Hour)}

		posts := []*models.PublicPost{stale, fresh}
		sortTrending(posts, now)

		if posts[0].ID != "fresh" {
			t.Errorf("posts[0] = %q, want the more recent post", posts[0].ID)
		}
	})

	t.Run("engagement outweighs small age differences", func(t *testing.T) {
		loved := &models.PublicPost{ID: "loved", LikesCount: 5, CreatedAt: now.Add(-3 * time.Hour)}
		ignored := &models.PublicPost{ID: "ignored", CreatedAt: now.Add(-1 * time.Hour)}

		posts := []*models.PublicPost{ignored, loved}
		sortTrending(posts, now)

		if posts[0].ID != "loved" {
			t.Errorf("posts[0] = %q, want the engaged post", posts[0].ID)
		}
	})

	t.Run("identical scores fall back to newest-first", func(t *testing.T) {
		// Same creation time and same engagement: deterministic order.
		a := &models.PublicPost{ID: "a", LikesCount: 1, CreatedAt: now.Add(-time.Hour)}
		b := &models.PublicPost{ID: "b", LikesCount: 1, CreatedAt: now.Add(-2 * time.Hour)}

		posts := []*models.PublicPost{b, a}
		sortTrending(posts, now)
		if posts[0].ID != "a" || posts[1].ID != "b" {
			t.Errorf("order = %q,%q, want a,b", posts[0].ID, posts[1].ID)
		}
	})

	t.Run("comments weigh heaviest", func(t *testing.T) {
		commented := &models.PublicPost{ID: "commented", CommentsCount: 3, CreatedAt: now}
		liked := &models.PublicPost{ID: "liked", LikesCount: 3, CreatedAt: now}
		favorited := &models.PublicPost{ID: "favorited", FavoritesCount: 3, CreatedAt: now}

		posts := []*models.PublicPost{favorited, liked, commented}
		sortTrending(posts, now)

		want := []string{"commented", "liked", "favorited"}
		for i, id := range want {
			if posts[i].ID != id {
				t.Errorf("posts[%d] = %q, want %q", i, posts[i].ID, id)
			}
		}
	})
}

func TestPagePosts(t *testing.T) {
	posts := []*models.PublicPost{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	page := pagePosts(posts, 2, 0)
	if len(page) != 2 || page[0].ID != "a" {
		t.Errorf("page = %v, want [a b]", ids(page))
	}

	page = pagePosts(posts, 2, 2)
	if len(page) != 1 || page[0].ID != "c" {
		t.Errorf("page = %v, want [c]", ids(page))
	}

	if page = pagePosts(posts, 2, 5); page != nil {
		t.Errorf("page past the end = %v, want nil", ids(page))
	}
}

func ids(posts []*models.PublicPost) []string {
	result := make([]string, len(posts))
	for i, post := range posts {
		result[i] = post.ID
	}
	return result
}
