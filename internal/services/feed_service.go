package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/ilovedelay/i-love-delay/internal/models"
)

const defaultAvatarURL = "https://api.dicebear.com/7.x/avataaars/svg?seed=default"

const (
	// trendingCandidateCap bounds how many posts are pulled for
	// in-process trending ranking; reads were always capped at 500.
	trendingCandidateCap = 500

	defaultPostLimit     = 20
	defaultCommentLimit  = 100
	maxCommentLimit      = 500
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

type feedServiceImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewFeedService(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) FeedService {
	return &feedServiceImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *feedServiceImpl) Share(ctx context.Context, params SharePostParams) (*models.PublicPost, error) {
	if params.TaskID == "" || params.TaskName == "" || params.Excuse == "" ||
		params.UserID == "" || params.UserName == "" {
		return nil, ErrMissingField
	}

	postUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate post id")
		return nil, err
	}

	post := &models.PublicPost{
		ID:         postUUID.String(),
		TaskID:     params.TaskID,
		TaskName:   params.TaskName,
		Excuse:     params.Excuse,
		DelayCount: params.DelayCount,
		UserID:     params.UserID,
		UserName:   params.UserName,
		UserAvatar: params.UserAvatar,
		CreatedAt:  time.Now(),
	}
	if post.UserAvatar == "" {
		post.UserAvatar = defaultAvatarURL
	}
	if post.DelayCount < 0 {
		post.DelayCount = 0
	}

	const insertPostQuery = `
INSERT INTO public_tasks (id,
                          task_id,
                          task_name,
                          excuse,
                          delay_count,
                          user_id,
                          user_name,
                          user_avatar,
                          likes_count,
                          created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertPostQuery,
		post.ID,
		post.TaskID,
		post.TaskName,
		post.Excuse,
		post.DelayCount,
		post.UserID,
		post.UserName,
		post.UserAvatar,
		post.CreatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert public post")
		return nil, err
	}

	s.logger.Info().
		Str("post_id", post.ID).
		Str("user_id", post.UserID).
		Msg("shared post to square")
	return post, nil
}

func (s *feedServiceImpl) ListPosts(ctx context.Context, params ListPostsParams) ([]*models.PublicPost, error) {
	if params.Sort != SortRecent && params.Sort != SortTrending {
		params.Sort = SortRecent
	}
	if params.Limit <= 0 {
		params.Limit = defaultPostLimit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	const selectPostsQuery = `
SELECT pt.id,
       pt.task_id,
       pt.task_name,
       pt.excuse,
       pt.delay_count,
       pt.user_id,
       pt.user_name,
       pt.user_avatar,
       pt.likes_count,
       pt.created_at,
       (SELECT COUNT(*) FROM public_task_comments c
        WHERE c.public_task_id = pt.id) AS comments_count,
       (SELECT COUNT(*) FROM user_interactions ui
        WHERE ui.public_task_id = pt.id AND ui.interaction_type = 'favorite') AS favorites_count,
       EXISTS (SELECT 1 FROM user_interactions ui
               WHERE ui.public_task_id = pt.id AND ui.user_id = $1
                 AND ui.interaction_type = 'like') AS is_liked,
       EXISTS (SELECT 1 FROM user_interactions ui
               WHERE ui.public_task_id = pt.id AND ui.user_id = $1
                 AND ui.interaction_type = 'favorite') AS is_favorited
FROM public_tasks pt
ORDER BY pt.created_at DESC
LIMIT $2 OFFSET $3
`
	limit, offset := params.Limit, params.Offset
	if params.Sort == SortTrending {
		// Trending ranks a capped candidate set in process, then
		// pages; SQL paging would cut candidates off before scoring.
		limit, offset = trendingCandidateCap, 0
	}

	rows, err := s.pgPool.Query(
		ctx,
		selectPostsQuery,
		params.ViewerID,
		limit,
		offset,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select public posts")
		return nil, err
	}
	defer rows.Close()

	posts := make([]*models.PublicPost, 0, params.Limit)
	for rows.Next() {
		post := new(models.PublicPost)
		err = rows.Scan(
			&post.ID,
			&post.TaskID,
			&post.TaskName,
			&post.Excuse,
			&post.DelayCount,
			&post.UserID,
			&post.UserName,
			&post.UserAvatar,
			&post.LikesCount,
			&post.CreatedAt,
			&post.CommentsCount,
			&post.FavoritesCount,
			&post.IsLiked,
			&post.IsFavorited,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan public post")
			return nil, err
		}
		posts = append(posts, post)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}

	if params.Sort == SortTrending {
		sortTrending(posts, time.Now())
		posts = pagePosts(posts, params.Limit, params.Offset)
	}

	s.logger.Debug().
		Int("count", len(posts)).
		Str("sort", params.Sort).
		Msg("selected public posts")
	return posts, nil
}

func (s *feedServiceImpl) ToggleInteraction(ctx context.Context, params ToggleInteractionParams) (*ToggleInteractionResult, error) {
	if params.Type != models.InteractionLike && params.Type != models.InteractionFavorite {
		return nil, ErrInvalidInteractionType
	}
	if params.PostID == "" || params.UserID == "" {
		return nil, ErrMissingField
	}

	tx, err := s.pgPool.Begin(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to begin transaction")
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const selectPostExistsQuery = `
SELECT 1 FROM public_tasks WHERE id = $1
`
	var one int
	err = tx.QueryRow(ctx, selectPostExistsQuery, params.PostID).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			s.logger.Warn().
				Str("post_id", params.PostID).
				Msg("post not found")
			return nil, ErrPostNotFound
		}

		s.logger.Error().
			Err(err).
			Str("post_id", params.PostID).
			Msg("failed to select post")
		return nil, err
	}

	const selectInteractionQuery = `
SELECT id FROM user_interactions
WHERE user_id = $1 AND public_task_id = $2 AND interaction_type = $3
`
	result := &ToggleInteractionResult{Type: params.Type}

	var interactionID string
	err = tx.QueryRow(
		ctx,
		selectInteractionQuery,
		params.UserID,
		params.PostID,
		params.Type,
	).Scan(&interactionID)

	switch {
	case err == nil:
		// Flip off: remove the interaction.
		const deleteInteractionQuery = `
DELETE FROM user_interactions WHERE id = $1
`
		_, err = tx.Exec(ctx, deleteInteractionQuery, interactionID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to delete interaction")
			return nil, err
		}
		result.Active = false

		if params.Type == models.InteractionLike {
			const decrementLikesQuery = `
UPDATE public_tasks
SET likes_count = GREATEST(likes_count - 1, 0)
WHERE id = $1
RETURNING likes_count
`
			likes := 0
			err = tx.QueryRow(ctx, decrementLikesQuery, params.PostID).Scan(&likes)
			if err != nil {
				s.logger.Error().
					Err(err).
					Msg("failed to decrement likes count")
				return nil, err
			}
			result.LikesCount = &likes
		}

	case errors.Is(err, pgx.ErrNoRows):
		// Flip on: insert the interaction.
		interactionUUID, uuidErr := uuid.NewV7()
		if uuidErr != nil {
			s.logger.Error().
				Err(uuidErr).
				Msg("failed to generate interaction id")
			return nil, uuidErr
		}

		const insertInteractionQuery = `
INSERT INTO user_interactions (id, user_id, public_task_id, interaction_type)
VALUES ($1, $2, $3, $4)
`
		_, err = tx.Exec(
			ctx,
			insertInteractionQuery,
			interactionUUID.String(),
			params.UserID,
			params.PostID,
			params.Type,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				// A concurrent toggle from the same user won the
				// race; report the already-active state instead
				// of double counting.
				return s.alreadyActiveResult(ctx, params)
			}

			s.logger.Error().
				Err(err).
				Msg("failed to insert interaction")
			return nil, err
		}
		result.Active = true

		if params.Type == models.InteractionLike {
			const incrementLikesQuery = `
UPDATE public_tasks
SET likes_count = likes_count + 1
WHERE id = $1
RETURNING likes_count
`
			likes := 0
			err = tx.QueryRow(ctx, incrementLikesQuery, params.PostID).Scan(&likes)
			if err != nil {
				s.logger.Error().
					Err(err).
					Msg("failed to increment likes count")
				return nil, err
			}
			result.LikesCount = &likes
		}

	default:
		s.logger.Error().
			Err(err).
			Msg("failed to select interaction")
		return nil, err
	}

	err = tx.Commit(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to commit transaction")
		return nil, err
	}

	s.logger.Info().
		Str("post_id", params.PostID).
		Str("type", params.Type).
		Bool("active", result.Active).
		Msg("toggled interaction")
	return result, nil
}

func (s *feedServiceImpl) alreadyActiveResult(ctx context.Context, params ToggleInteractionParams) (*ToggleInteractionResult, error) {
	result := &ToggleInteractionResult{Type: params.Type, Active: true}
	if params.Type != models.InteractionLike {
		return result, nil
	}

	const selectLikesQuery = `
SELECT likes_count FROM public_tasks WHERE id = $1
`
	likes := 0
	err := s.pgPool.QueryRow(ctx, selectLikesQuery, params.PostID).Scan(&likes)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select likes count")
		return nil, err
	}
	result.LikesCount = &likes
	return result, nil
}

func (s *feedServiceImpl) Comments(ctx context.Context, postID string, limit int) ([]*models.Comment, error) {
	if postID == "" {
		return nil, ErrMissingField
	}
	if limit <= 0 {
		limit = defaultCommentLimit
	}
	if limit > maxCommentLimit {
		limit = maxCommentLimit
	}

	const selectCommentsQuery = `
SELECT id, public_task_id, user_id, user_name, user_avatar, content, created_at
FROM public_task_comments
WHERE public_task_id = $1
ORDER BY created_at ASC
LIMIT $2
`
	rows, err := s.pgPool.Query(ctx, selectCommentsQuery, postID, limit)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("post_id", postID).
			Msg("failed to select comments")
		return nil, err
	}
	defer rows.Close()

	var comments []*models.Comment
	for rows.Next() {
		comment := new(models.Comment)
		err = rows.Scan(
			&comment.ID,
			&comment.PublicTaskID,
			&comment.UserID,
			&comment.UserName,
			&comment.UserAvatar,
			&comment.Content,
			&comment.CreatedAt,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan comment")
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, rows.Err()
}

func (s *feedServiceImpl) AddComment(ctx context.Context, params AddCommentParams) (*models.Comment, error) {
	if params.PublicTaskID == "" || params.Content == "" ||
		params.UserID == "" || params.UserName == "" {
		return nil, ErrMissingField
	}

	commentUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate comment id")
		return nil, err
	}

	comment := &models.Comment{
		ID:           commentUUID.String(),
		PublicTaskID: params.PublicTaskID,
		UserID:       params.UserID,
		UserName:     params.UserName,
		UserAvatar:   params.UserAvatar,
		Content:      params.Content,
		CreatedAt:    time.Now(),
	}
	if comment.UserAvatar == "" {
		comment.UserAvatar = defaultAvatarURL
	}

	const insertCommentQuery = `
INSERT INTO public_task_comments (id, public_task_id, user_id, user_name, user_avatar, content, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
`
	_, err = s.pgPool.Exec(
		ctx,
		insertCommentQuery,
		comment.ID,
		comment.PublicTaskID,
		comment.UserID,
		comment.UserName,
		comment.UserAvatar,
		comment.Content,
		comment.CreatedAt,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to insert comment")
		return nil, err
	}

	s.logger.Info().
		Str("comment_id", comment.ID).
		Str("post_id", comment.PublicTaskID).
		Msg("added comment")
	return comment, nil
}
