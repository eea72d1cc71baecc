package services

import (
	"context"
	"sort"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

func (s *feedServiceImpl) Activity(ctx context.Context, params ActivityParams) ([]*models.ActivityEntry, error) {
	if params.UserID == "" {
		return nil, ErrMissingField
	}
	if params.Limit <= 0 {
		params.Limit = defaultActivityLimit
	}
	if params.Limit > maxActivityLimit {
		params.Limit = maxActivityLimit
	}

	var entries []*models.ActivityEntry
	appendCategory := func(category string, fetch func() ([]*models.ActivityEntry, error)) error {
		if params.Category != ActivityAll && params.Category != category {
			return nil
		}
		fetched, err := fetch()
		if err != nil {
			return err
		}
		entries = append(entries, fetched...)
		return nil
	}

	steps := []struct {
		category string
		fetch    func() ([]*models.ActivityEntry, error)
	}{
		{ActivityLikes, func() ([]*models.ActivityEntry, error) {
			return s.interactionActivity(ctx, params.UserID, models.InteractionLike, params.Limit)
		}},
		{ActivityFavorites, func() ([]*models.ActivityEntry, error) {
			return s.interactionActivity(ctx, params.UserID, models.InteractionFavorite, params.Limit)
		}},
		{ActivityComments, func() ([]*models.ActivityEntry, error) {
			return s.commentActivity(ctx, params.UserID, params.Limit)
		}},
		{ActivityShares, func() ([]*models.ActivityEntry, error) {
			return s.shareActivity(ctx, params.UserID, params.Limit)
		}},
	}
	for _, step := range steps {
		if err := appendCategory(step.category, step.fetch); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	if len(entries) > params.Limit {
		entries = entries[:params.Limit]
	}
	return entries, nil
}

func (s *feedServiceImpl) interactionActivity(ctx context.Context, userID, interactionType string, limit int) ([]*models.ActivityEntry, error) {
	const selectInteractionActivityQuery = `
SELECT ui.id,
       ui.created_at,
       pt.id,
       pt.task_id,
       pt.task_name,
       pt.excuse,
       pt.delay_count,
       pt.user_id,
       pt.user_name,
       pt.user_avatar,
       pt.likes_count,
       pt.created_at
FROM user_interactions ui
JOIN public_tasks pt ON pt.id = ui.public_task_id
WHERE ui.user_id = $1 AND ui.interaction_type = $2
ORDER BY ui.created_at DESC
LIMIT $3
`
	rows, err := s.pgPool.Query(ctx, selectInteractionActivityQuery, userID, interactionType, limit)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("type", interactionType).
			Msg("failed to select interaction activity")
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityEntry
	for rows.Next() {
		entry := &models.ActivityEntry{Type: interactionType}
		err = rows.Scan(
			&entry.ID,
			&entry.CreatedAt,
			&entry.Post.ID,
			&entry.Post.TaskID,
			&entry.Post.TaskName,
			&entry.Post.Excuse,
			&entry.Post.DelayCount,
			&entry.Post.UserID,
			&entry.Post.UserName,
			&entry.Post.UserAvatar,
			&entry.Post.LikesCount,
			&entry.Post.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan interaction activity")
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *feedServiceImpl) commentActivity(ctx context.Context, userID string, limit int) ([]*models.ActivityEntry, error) {
	const selectCommentActivityQuery = `
SELECT c.id,
       c.content,
       c.created_at,
       pt.id,
       pt.task_id,
       pt.task_name,
       pt.excuse,
       pt.delay_count,
       pt.user_id,
       pt.user_name,
       pt.user_avatar,
       pt.likes_count,
       pt.created_at
FROM public_task_comments c
JOIN public_tasks pt ON pt.id = c.public_task_id
WHERE c.user_id = $1
ORDER BY c.created_at DESC
LIMIT $2
`
	rows, err := s.pgPool.Query(ctx, selectCommentActivityQuery, userID, limit)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select comment activity")
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityEntry
	for rows.Next() {
		entry := &models.ActivityEntry{Type: "comment"}
		err = rows.Scan(
			&entry.ID,
			&entry.Content,
			&entry.CreatedAt,
			&entry.Post.ID,
			&entry.Post.TaskID,
			&entry.Post.TaskName,
			&entry.Post.Excuse,
			&entry.Post.DelayCount,
			&entry.Post.UserID,
			&entry.Post.UserName,
			&entry.Post.UserAvatar,
			&entry.Post.LikesCount,
			&entry.Post.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan comment activity")
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *feedServiceImpl) shareActivity(ctx context.Context, userID string, limit int) ([]*models.ActivityEntry, error) {
	const selectShareActivityQuery = `
SELECT pt.id,
       pt.task_id,
       pt.task_name,
       pt.excuse,
       pt.delay_count,
       pt.user_id,
       pt.user_name,
       pt.user_avatar,
       pt.likes_count,
       pt.created_at
FROM public_tasks pt
WHERE pt.user_id = $1
ORDER BY pt.created_at DESC
LIMIT $2
`
	rows, err := s.pgPool.Query(ctx, selectShareActivityQuery, userID, limit)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select share activity")
		return nil, err
	}
	defer rows.Close()

	var entries []*models.ActivityEntry
	for rows.Next() {
		entry := &models.ActivityEntry{Type: "share"}
		err = rows.Scan(
			&entry.Post.ID,
			&entry.Post.TaskID,
			&entry.Post.TaskName,
			&entry.Post.Excuse,
			&entry.Post.DelayCount,
			&entry.Post.UserID,
			&entry.Post.UserName,
			&entry.Post.UserAvatar,
			&entry.Post.LikesCount,
			&entry.Post.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan share activity")
			return nil, err
		}
		entry.ID = entry.Post.ID
		entry.CreatedAt = entry.Post.CreatedAt
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
