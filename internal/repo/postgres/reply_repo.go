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

type ReplyRepo struct {
	pool *pgxpool.Pool
}

func NewReplyRepo(pool *pgxpool.Pool) *ReplyRepo {
	return &ReplyRepo{pool: pool}
}

func (r *ReplyRepo) Insert(ctx context.Context, reply model.Reply) (model.Reply, error) {
	if r.pool == nil {
		return model.Reply{}, fmt.Errorf("postgres pool is nil")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO replies (
	thread_id,
	author_id,
	body,
	status,
	moderation_status,
	moderation_reason,
	moderation_confidence,
	parent_reply_id,
	depth,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
RETURNING id, created_at
`,
		reply.ThreadID,
		reply.AuthorID,
		reply.Body,
		reply.Status,
		reply.Moderation.Status,
		reply.Moderation.Reason,
		reply.Moderation.Confidence,
		reply.ParentReplyID,
		reply.Depth,
	).Scan(&reply.ID, &reply.CreatedAt)
	if err != nil {
		return model.Reply{}, fmt.Errorf("insert reply: %w", err)
	}

	return reply, nil
}

func (r *ReplyRepo) GetByID(ctx context.Context, replyID int64) (model.Reply, bool, error) {
	if r.pool == nil {
		return model.Reply{}, false, fmt.Errorf("postgres pool is nil")
	}

	var reply model.Reply
	err := r.pool.QueryRow(ctx, `
SELECT
	id,
	thread_id,
	author_id,
	body,
	status,
	moderation_status,
	moderation_reason,
	moderation_confidence,
	reviewed_by_admin,
	parent_reply_id,
	depth,
	reply_count,
	like_count,
	created_at
FROM replies
WHERE id = $1
`, replyID).Scan(
		&reply.ID,
		&reply.ThreadID,
		&reply.AuthorID,
		&reply.Body,
		&reply.Status,
		&reply.Moderation.Status,
		&reply.Moderation.Reason,
		&reply.Moderation.Confidence,
		&reply.ReviewedByAdmin,
		&reply.ParentReplyID,
		&reply.Depth,
		&reply.ReplyCount,
		&reply.LikeCount,
		&reply.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Reply{}, false, nil
		}
		return model.Reply{}, false, fmt.Errorf("get reply: %w", err)
	}

	return reply, true, nil
}

func (r *ReplyRepo) ListByThread(ctx context.Context, threadID int64, offset, limit int) ([]model.Reply, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id,
	thread_id,
	author_id,
	body,
	status,
	moderation_status,
	moderation_reason,
	moderation_confidence,
	reviewed_by_admin,
	parent_reply_id,
	depth,
	reply_count,
	like_count,
	created_at
FROM replies
WHERE thread_id = $1
ORDER BY created_at ASC
OFFSET $2 LIMIT $3
`, threadID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}
	defer rows.Close()

	replies := make([]model.Reply, 0, limit)
	for rows.Next() {
		var reply model.Reply
		if err := rows.Scan(
			&reply.ID,
			&reply.ThreadID,
			&reply.AuthorID,
			&reply.Body,
			&reply.Status,
			&reply.Moderation.Status,
			&reply.Moderation.Reason,
			&reply.Moderation.Confidence,
			&reply.ReviewedByAdmin,
			&reply.ParentReplyID,
			&reply.Depth,
			&reply.ReplyCount,
			&reply.LikeCount,
			&reply.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan reply row: %w", err)
		}
		replies = append(replies, reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reply rows: %w", err)
	}

	return replies, nil
}

func (r *ReplyRepo) ApproveReply(ctx context.Context, replyID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE replies SET
	status = $2,
	reviewed_by_admin = TRUE
WHERE id = $1
`, replyID, enums.ContentStatusApproved)
	if err != nil {
		return false, fmt.Errorf("approve reply: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Delete removes the reply and its whole subtree.
func (r *ReplyRepo) Delete(ctx context.Context, replyID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
WITH RECURSIVE doomed AS (
	SELECT id FROM replies WHERE id = $1
	UNION ALL
	SELECT r.id FROM replies r JOIN doomed d ON r.parent_reply_id = d.id
)
DELETE FROM replies
WHERE id IN (SELECT id FROM doomed)
`, replyID)
	if err != nil {
		return false, fmt.Errorf("delete reply: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// RecountThread recomputes the thread's reply count from the replies table.
// A full recount stays correct even if an earlier incremental update was
// lost.
func (r *ReplyRepo) RecountThread(ctx context.Context, threadID int64) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	err := r.pool.QueryRow(ctx, `
UPDATE threads SET reply_count = (
	SELECT COUNT(*) FROM replies WHERE thread_id = $1
)
WHERE id = $1
RETURNING reply_count
`, threadID).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("recount thread replies: %w", err)
	}

	return count, nil
}

func (r *ReplyRepo) AdjustReplyCount(ctx context.Context, replyID int64, delta int) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE replies SET reply_count = GREATEST(reply_count + $2, 0)
WHERE id = $1
`, replyID, delta); err != nil {
		return fmt.Errorf("adjust reply count: %w", err)
	}

	return nil
}

func (r *ReplyRepo) AddLike(ctx context.Context, replyID, userID int64) (bool, int, error) {
	if r.pool == nil {
		return false, 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
INSERT INTO reply_likes (reply_id, user_id, created_at)
VALUES ($1, $2, NOW())
ON CONFLICT (reply_id, user_id) DO NOTHING
`, replyID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("insert reply like: %w", err)
	}
	added := result.RowsAffected() > 0

	var likeCount int
	if added {
		err = r.pool.QueryRow(ctx, `
UPDATE replies SET like_count = like_count + 1
WHERE id = $1
RETURNING like_count
`, replyID).Scan(&likeCount)
	} else {
		err = r.pool.QueryRow(ctx, `
SELECT like_count FROM replies WHERE id = $1
`, replyID).Scan(&likeCount)
	}
	if err != nil {
		return false, 0, fmt.Errorf("reply like count: %w", err)
	}

	return added, likeCount, nil
}
