package services

import (
	"sort"
	"time"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

// trendingScore weighs engagement against recency:
// comments count the most, then likes, then favorites, with a small
// bonus for chronic procrastination and a linear hourly decay.
func trendingScore(post *models.PublicPost, now time.Time) float64 {
	hours := now.Sub(post.CreatedAt).Hours()
	return float64(post.LikesCount)*3 +
		float64(post.FavoritesCount)*2 +
		float64(post.CommentsCount)*4 +
		float64(post.DelayCount)*0.5 -
		hours*0.1
}

// sortTrending orders posts by trending score descending. Equal scores
// fall back to creation time descending, so rankings are deterministic
// for fixed inputs.
func sortTrending(posts []*models.PublicPost, now time.Time) {
	sort.SliceStable(posts, func(i, j int) bool {
		si, sj := trendingScore(posts[i], now), trendingScore(posts[j], now)
		if si != sj {
			return si > sj
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

func pagePosts(posts []*models.PublicPost, limit, offset int) []*models.PublicPost {
	if offset >= len(posts) {
		return nil
	}
	posts = posts[offset:]
	if limit > 0 && limit < len(posts) {
		posts = posts[:limit]
	}
	return posts
}
