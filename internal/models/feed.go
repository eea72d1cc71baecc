package models

import "time"

const (
	InteractionLike     = "like"
	InteractionFavorite = "favorite"
)

// PublicPost is an immutable snapshot of a task and one of its excuses,
// shared to the public square. It lives only on the server side and is
// never synced back into the local task or excuse stores.
type PublicPost struct {
	ID             string
	TaskID         string
	TaskName       string
	Excuse         string
	DelayCount     int
	UserID         string
	UserName       string
	UserAvatar     string
	LikesCount     int
	FavoritesCount int
	CommentsCount  int
	IsLiked        bool
	IsFavorited    bool
	CreatedAt      time.Time
}

type Comment struct {
	ID           string
	PublicTaskID string
	UserID       string
	UserName     string
	UserAvatar   string
	Content      string
	CreatedAt    time.Time
}

// ActivityEntry is one row of a user's square activity feed: a like,
// favorite, comment or share, together with the post it refers to.
type ActivityEntry struct {
	ID        string
	Type      string
	Content   string
	CreatedAt time.Time
	Post      PublicPost
}
