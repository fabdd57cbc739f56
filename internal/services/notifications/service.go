package notifications

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

var ErrNotFound = errors.New("notification not found")

type NotificationStore interface {
	Insert(ctx context.Context, n model.Notification) (model.Notification, error)
	ListByRecipient(ctx context.Context, recipientID int64, offset, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, recipientID int64) (int, error)
	MarkRead(ctx context.Context, notificationID, recipientID int64) (bool, error)
	MarkAllRead(ctx context.Context, recipientID int64) error
}

type AdminStore interface {
	ListAdminIDs(ctx context.Context) ([]int64, error)
}

type Publisher interface {
	Publish(room, event string, payload any)
}

// Service is the notification fan-out engine. Writes are independent per
// recipient: one failed insert does not roll back the others, and fan-out
// failures never fail the triggering request.
type Service struct {
	store     NotificationStore
	admins    AdminStore
	publisher Publisher
	logger    *zap.Logger
}

func NewService(store NotificationStore, admins AdminStore, publisher Publisher, log *zap.Logger) *Service {
	return &Service{
		store:     store,
		admins:    admins,
		publisher: publisher,
		logger:    log,
	}
}

// NotifyContentFlagged writes one notification per admin. An empty admin set
// is not an error; the fan-out is simply skipped.
func (s *Service) NotifyContentFlagged(ctx context.Context, contentType enums.ContentType, contentID int64, summary string) {
	if s.store == nil || s.admins == nil {
		return
	}

	adminIDs, err := s.admins.ListAdminIDs(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("list admins for flagged fan-out", zap.Error(err))
		}
		return
	}
	if len(adminIDs) == 0 {
		return
	}

	for _, adminID := range adminIDs {
		s.deliver(ctx, model.Notification{
			RecipientID: adminID,
			Kind:        enums.NotificationKindContentFlagged,
			Title:       "Content flagged for review",
			Body:        summary,
			ContentID:   contentID,
			ContentType: contentType,
		})
	}
}

// NotifyThreadReply writes exactly one notification to the thread author.
// Self-replies and nested replies produce nothing: only top-level replies
// notify the author, which keeps deep threads from becoming notification
// storms.
func (s *Service) NotifyThreadReply(ctx context.Context, threadAuthorID, replierID, threadID, replyID int64, nested bool) {
	if s.store == nil {
		return
	}
	if replierID == threadAuthorID || nested {
		return
	}

	s.deliver(ctx, model.Notification{
		RecipientID: threadAuthorID,
		Kind:        enums.NotificationKindThreadReply,
		Title:       "New reply to your thread",
		Body:        fmt.Sprintf("Someone replied to your thread #%d", threadID),
		ContentID:   replyID,
		ContentType: enums.ContentTypeReply,
	})
}

func (s *Service) deliver(ctx context.Context, n model.Notification) {
	stored, err := s.store.Insert(ctx, n)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("insert notification",
				zap.Int64("recipient_id", n.RecipientID),
				zap.String("kind", string(n.Kind)),
				zap.Error(err),
			)
		}
		return
	}

	if s.publisher != nil {
		s.publisher.Publish(fmt.Sprintf("user:%d", stored.RecipientID), "notification", stored)
	}
}

func (s *Service) List(ctx context.Context, recipientID int64, offset, limit int) ([]model.Notification, error) {
	if recipientID <= 0 {
		return nil, fmt.Errorf("invalid recipient id")
	}
	if s.store == nil {
		return nil, fmt.Errorf("notification store is not configured")
	}

	items, err := s.store.ListByRecipient(ctx, recipientID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return items, nil
}

func (s *Service) UnreadCount(ctx context.Context, recipientID int64) (int, error) {
	if recipientID <= 0 {
		return 0, fmt.Errorf("invalid recipient id")
	}
	if s.store == nil {
		return 0, fmt.Errorf("notification store is not configured")
	}

	count, err := s.store.CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead flips the read flag. Only the recipient may do so; a notification
// belonging to someone else behaves as if it did not exist.
func (s *Service) MarkRead(ctx context.Context, notificationID, recipientID int64) error {
	if notificationID <= 0 || recipientID <= 0 {
		return fmt.Errorf("invalid mark read payload")
	}
	if s.store == nil {
		return fmt.Errorf("notification store is not configured")
	}

	found, err := s.store.MarkRead(ctx, notificationID, recipientID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *Service) MarkAllRead(ctx context.Context, recipientID int64) error {
	if recipientID <= 0 {
		return fmt.Errorf("invalid recipient id")
	}
	if s.store == nil {
		return fmt.Errorf("notification store is not configured")
	}

	if err := s.store.MarkAllRead(ctx, recipientID); err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}
