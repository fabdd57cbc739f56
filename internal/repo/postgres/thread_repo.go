package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type ThreadRepo struct {
	pool *pgxpool.Pool
}

func NewThreadRepo(pool *pgxpool.Pool) *ThreadRepo {
	return &ThreadRepo{pool: pool}
}

func (r *ThreadRepo) Insert(ctx context.Context, thread model.Thread) (model.Thread, error) {
	if r.pool == nil {
		return model.Thread{}, fmt.Errorf("postgres pool is nil")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO threads (
	author_id,
	title,
	body,
	status,
	moderation_status,
	moderation_reason,
	moderation_confidence,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
RETURNING id, created_at, updated_at
`,
		thread.AuthorID,
		thread.Title,
		thread.Body,
		thread.Status,
		thread.Moderation.Status,
		thread.Moderation.Reason,
		thread.Moderation.Confidence,
	).Scan(&thread.ID, &thread.CreatedAt, &thread.UpdatedAt)
	if err != nil {
		return model.Thread{}, fmt.Errorf("insert thread: %w", err)
	}

	return thread, nil
}

func (r *ThreadRepo) GetByID(ctx context.Context, threadID int64) (model.Thread, bool, error) {
	if r.pool == nil {
		return model.Thread{}, false, fmt.Errorf("postgres pool is nil")
	}

	var thread model.Thread
	err := r.pool.QueryRow(ctx, `
SELECT
	id,
	author_id,
	title,
	body,
	status,
	moderation_status,
	moderation_reason,
	moderation_confidence,
	reviewed_by_admin,
	reply_count,
	like_count,
	created_at,
	updated_at
FROM threads
WHERE id = $1
`, threadID).Scan(
		&thread.ID,
		&thread.AuthorID,
		&thread.Title,
		&thread.Body,
		&thread.Status,
		&thread.Moderation.Status,
		&thread.Moderation.Reason,
		&thread.Moderation.Confidence,
		&thread.ReviewedByAdmin,
		&thread.ReplyCount,
		&thread.LikeCount,
		&thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Thread{}, false, nil
		}
		return model.Thread{}, false, fmt.Errorf("get thread: %w", err)
	}

	return thread, true, nil
}

func (r *ThreadRepo) ListApproved(ctx context.Context, offset, limit int) ([]model.Thread, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id,
	author_id,
	title,
	body,
	status,
	moderation_status,
	moderation_reason,
	moderation_confidence,
	reviewed_by_admin,
	reply_count,
	like_count,
	created_at,
	updated_at
FROM threads
WHERE status = $1
ORDER BY created_at DESC
OFFSET $2 LIMIT $3
`, enums.ContentStatusApproved, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	defer rows.Close()

	threads := make([]model.Thread, 0, limit)
	for rows.Next() {
		var thread model.Thread
		if err := rows.Scan(
			&thread.ID,
			&thread.AuthorID,
			&thread.Title,
			&thread.Body,
			&thread.Status,
			&thread.Moderation.Status,
			&thread.Moderation.Reason,
			&thread.Moderation.Confidence,
			&thread.ReviewedByAdmin,
			&thread.ReplyCount,
			&thread.LikeCount,
			&thread.CreatedAt,
			&thread.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan thread row: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate thread rows: %w", err)
	}

	return threads, nil
}

// UpdateContent replaces the text and the whole moderation record. The old
// verdict is not kept; re-evaluation always writes a fresh one.
func (r *ThreadRepo) UpdateContent(ctx context.Context, threadID int64, title, body string, verdict model.Verdict, status enums.ContentStatus) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE threads SET
	title = $2,
	body = $3,
	status = $4,
	moderation_status = $5,
	moderation_reason = $6,
	moderation_confidence = $7,
	reviewed_by_admin = FALSE,
	updated_at = NOW()
WHERE id = $1
`, threadID, title, body, status, verdict.Status, verdict.Reason, verdict.Confidence)
	if err != nil {
		return false, fmt.Errorf("update thread: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *ThreadRepo) ApproveThread(ctx context.Context, threadID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE threads SET
	status = $2,
	reviewed_by_admin = TRUE,
	updated_at = NOW()
WHERE id = $1
`, threadID, enums.ContentStatusApproved)
	if err != nil {
		return false, fmt.Errorf("approve thread: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes the thread; replies and likes go with it via the schema's
// ON DELETE CASCADE references.
func (r *ThreadRepo) Delete(ctx context.Context, threadID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM threads
WHERE id = $1
`, threadID)
	if err != nil {
		return false, fmt.Errorf("delete thread: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *ThreadRepo) AddLike(ctx context.Context, threadID, userID int64) (bool, int, error) {
	if r.pool == nil {
		return false, 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
INSERT INTO thread_likes (thread_id, user_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (thread_id, user_id) DO NOTHING
`, threadID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("insert thread like: %w", err)
	}
	added := result.RowsAffected() > 0

	var likeCount int
	if added {
		err = r.pool.QueryRow(ctx, `
UPDATE threads SET like_count = like_count + 1
WHERE id = $1
RETURNING like_count
`, threadID).Scan(&likeCount)
	} else {
		err = r.pool.QueryRow(ctx, `
SELECT like_count FROM threads WHERE id = $1
`, threadID).Scan(&likeCount)
	}
	if err != nil {
		return false, 0, fmt.Errorf("thread like count: %w", err)
	}

	return added, likeCount, nil
}
