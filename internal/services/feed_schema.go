package services

import "context"

// The square tables are created lazily instead of through a separate
// migration step, matching how the deployment has always run.
const feedSchema = `
CREATE TABLE IF NOT EXISTS public_tasks (
    id          TEXT PRIMARY KEY,
    task_id     TEXT NOT NULL,
    task_name   TEXT NOT NULL,
    excuse      TEXT NOT NULL,
    delay_count INTEGER NOT NULL DEFAULT 0,
    user_id     TEXT NOT NULL,
    user_name   TEXT NOT NULL,
    user_avatar TEXT NOT NULL,
    likes_count INTEGER NOT NULL DEFAULT 0,
    created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS user_interactions (
    id               TEXT PRIMARY KEY,
    user_id          TEXT NOT NULL,
    public_task_id   TEXT NOT NULL,
    interaction_type TEXT NOT NULL,
    created_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_user_interactions_unique
    ON user_interactions (user_id, public_task_id, interaction_type);

CREATE TABLE IF NOT EXISTS public_task_comments (
    id             TEXT PRIMARY KEY,
    public_task_id TEXT NOT NULL,
    user_id        TEXT NOT NULL,
    user_name      TEXT NOT NULL,
    user_avatar    TEXT NOT NULL,
    content        TEXT NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_public_task_comments_post
    ON public_task_comments (public_task_id, created_at);
`

func (s *feedServiceImpl) EnsureSchema(ctx context.Context) error {
	_, err := s.pgPool.Exec(ctx, feedSchema)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to create square schema")
		return err
	}

	s.logger.Info().Msg("square schema is in place")
	return nil
}
