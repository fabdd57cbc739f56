package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
}

func NewNotificationRepo(pool *pgxpool.Pool) *NotificationRepo {
	return &NotificationRepo{pool: pool}
}

func (r *NotificationRepo) Insert(ctx context.Context, n model.Notification) (model.Notification, error) {
	if r.pool == nil {
		return model.Notification{}, fmt.Errorf("postgres pool is nil")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO notifications (
	recipient_id,
	kind,
	title,
	body,
	content_id,
	content_type,
	read,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, FALSE, NOW())
RETURNING id, created_at
`,
		n.RecipientID,
		n.Kind,
		n.Title,
		n.Body,
		n.ContentID,
		n.ContentType,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return model.Notification{}, fmt.Errorf("insert notification: %w", err)
	}

	return n, nil
}

func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID int64, offset, limit int) ([]model.Notification, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id,
	recipient_id,
	kind,
	title,
	body,
	content_id,
	content_type,
	read,
	created_at
FROM notifications
WHERE recipient_id = $1
ORDER BY created_at DESC
OFFSET $2 LIMIT $3
`, recipientID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	items := make([]model.Notification, 0, limit)
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(
			&n.ID,
			&n.RecipientID,
			&n.Kind,
			&n.Title,
			&n.Body,
			&n.ContentID,
			&n.ContentType,
			&n.Read,
			&n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification row: %w", err)
		}
		items = append(items, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notification rows: %w", err)
	}

	return items, nil
}

func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID int64) (int, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM notifications
WHERE recipient_id = $1 AND read = FALSE
`, recipientID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}

	return count, nil
}

// MarkRead flips the read flag only when the notification belongs to the
// given recipient.
func (r *NotificationRepo) MarkRead(ctx context.Context, notificationID, recipientID int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE notifications SET read = TRUE
WHERE id = $1 AND recipient_id = $2
`, notificationID, recipientID)
	if err != nil {
		return false, fmt.Errorf("mark notification read: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID int64) error {
	if r.pool == nil {
		return fmt.Errorf("postgres pool is nil")
	}

	if _, err := r.pool.Exec(ctx, `
UPDATE notifications SET read = TRUE
WHERE recipient_id = $1 AND read = FALSE
`, recipientID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}

	return nil
}
