package moderation

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
)

var (
	ErrNotFound  = errors.New("content not found")
	ErrForbidden = errors.New("actor is not allowed to perform this action")
)

// Actor identifies who is invoking a transition.
type Actor struct {
	UserID int64
	Role   enums.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == enums.RoleAdmin
}

type ThreadStatusStore interface {
	ApproveThread(ctx context.Context, threadID int64) (bool, error)
}

type ReplyStatusStore interface {
	ApproveReply(ctx context.Context, replyID int64) (bool, error)
}

type Broadcaster interface {
	Broadcast(event string, payload any)
}

type ModerationEvent struct {
	Action      string            `json:"action"`
	ContentType enums.ContentType `json:"content_type"`
	ContentID   int64             `json:"content_id"`
	ActorID     int64             `json:"actor_id"`
}

// Service drives the content visibility state machine. The only transition
// besides delete is the admin-invoked Approve, legal from any state and
// idempotent: approving an already approved item is a no-op success.
type Service struct {
	threads     ThreadStatusStore
	replies     ReplyStatusStore
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewService(threads ThreadStatusStore, replies ReplyStatusStore, broadcaster Broadcaster, log *zap.Logger) *Service {
	return &Service{
		threads:     threads,
		replies:     replies,
		broadcaster: broadcaster,
		logger:      log,
	}
}

func (s *Service) Approve(ctx context.Context, contentType enums.ContentType, contentID int64, actor Actor) error {
	if contentID <= 0 {
		return fmt.Errorf("invalid content id")
	}
	if !actor.IsAdmin() {
		return ErrForbidden
	}

	var (
		found bool
		err   error
	)
	switch contentType {
	case enums.ContentTypeThread:
		if s.threads == nil {
			return fmt.Errorf("thread store is not configured")
		}
		found, err = s.threads.ApproveThread(ctx, contentID)
	case enums.ContentTypeReply:
		if s.replies == nil {
			return fmt.Errorf("reply store is not configured")
		}
		found, err = s.replies.ApproveReply(ctx, contentID)
	default:
		return fmt.Errorf("unknown content type %q", contentType)
	}
	if err != nil {
		return fmt.Errorf("approve %s %d: %w", contentType, contentID, err)
	}
	if !found {
		return ErrNotFound
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast("admin:moderation", ModerationEvent{
			Action:      "approved",
			ContentType: contentType,
			ContentID:   contentID,
			ActorID:     actor.UserID,
		})
	}
	if s.logger != nil {
		s.logger.Info("content approved",
			zap.String("content_type", string(contentType)),
			zap.Int64("content_id", contentID),
			zap.Int64("actor_id", actor.UserID),
		)
	}

	return nil
}

// CanView is the read-side visibility rule: a flagged item is visible only
// to its author and to admins. Everyone else gets a not-found, so flagged
// content is never disclosed to the public.
func CanView(status enums.ContentStatus, authorID int64, viewer Actor) bool {
	if status != enums.ContentStatusFlagged {
		return true
	}
	return viewer.IsAdmin() || viewer.UserID == authorID
}
