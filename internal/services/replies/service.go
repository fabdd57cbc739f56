package replies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
	modsvc "github.com/shashidhar078/CHACKATHON-sub000/internal/services/moderation"
)

var (
	ErrNotFound       = errors.New("reply not found")
	ErrThreadNotFound = errors.New("thread not found")
	ErrForbidden      = errors.New("actor is not allowed to perform this action")
	ErrInvalidInput   = errors.New("invalid input")
)

type ReplyStore interface {
	Insert(ctx context.Context, reply model.Reply) (model.Reply, error)
	GetByID(ctx context.Context, replyID int64) (model.Reply, bool, error)
	ListByThread(ctx context.Context, threadID int64, offset, limit int) ([]model.Reply, error)
	Delete(ctx context.Context, replyID int64) (bool, error)
	// RecountThread recomputes the owning thread's reply count from the
	// replies table and persists it, returning the fresh count. A recount
	// stays correct even if prior incremental updates were lost.
	RecountThread(ctx context.Context, threadID int64) (int, error)
	// AdjustReplyCount shifts a parent reply's direct-child counter by
	// delta, floored at zero.
	AdjustReplyCount(ctx context.Context, replyID int64, delta int) error
	AddLike(ctx context.Context, replyID, userID int64) (bool, int, error)
}

type ThreadStore interface {
	GetByID(ctx context.Context, threadID int64) (model.Thread, bool, error)
}

type VerdictResolver interface {
	Resolve(ctx context.Context, text string) model.Verdict
}

type Notifier interface {
	NotifyContentFlagged(ctx context.Context, contentType enums.ContentType, contentID int64, summary string)
	NotifyThreadReply(ctx context.Context, threadAuthorID, replierID, threadID, replyID int64, nested bool)
}

type Broadcaster interface {
	Publish(room, event string, payload any)
}

type Config struct {
	BodyMaxLen      int
	PageSizeDefault int
	PageSizeMax     int
}

type Service struct {
	store       ReplyStore
	threads     ThreadStore
	resolver    VerdictResolver
	notifier    Notifier
	broadcaster Broadcaster
	cfg         Config
	logger      *zap.Logger
}

func NewService(store ReplyStore, threads ThreadStore, resolver VerdictResolver, notifier Notifier, broadcaster Broadcaster, cfg Config, log *zap.Logger) *Service {
	if cfg.BodyMaxLen <= 0 {
		cfg.BodyMaxLen = 10000
	}
	if cfg.PageSizeDefault <= 0 {
		cfg.PageSizeDefault = 20
	}
	if cfg.PageSizeMax <= 0 {
		cfg.PageSizeMax = 100
	}

	return &Service{
		store:       store,
		threads:     threads,
		resolver:    resolver,
		notifier:    notifier,
		broadcaster: broadcaster,
		cfg:         cfg,
		logger:      log,
	}
}

// Create runs the moderation pipeline for a reply and maintains the reply
// tree counters. A declared parent that cannot be found (or belongs to a
// different thread) degrades the reply to top-level instead of failing the
// submission.
func (s *Service) Create(ctx context.Context, actor modsvc.Actor, threadID int64, parentReplyID *int64, body string) (model.Reply, error) {
	if actor.UserID <= 0 || threadID <= 0 {
		return model.Reply{}, fmt.Errorf("%w: invalid reply payload", ErrInvalidInput)
	}
	if strings.TrimSpace(body) == "" {
		return model.Reply{}, fmt.Errorf("%w: body is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(body) > s.cfg.BodyMaxLen {
		return model.Reply{}, fmt.Errorf("%w: body exceeds %d characters", ErrInvalidInput, s.cfg.BodyMaxLen)
	}
	if s.store == nil || s.threads == nil || s.resolver == nil {
		return model.Reply{}, fmt.Errorf("reply service dependencies are not configured")
	}

	thread, found, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		return model.Reply{}, fmt.Errorf("get thread: %w", err)
	}
	if !found || !modsvc.CanView(thread.Status, thread.AuthorID, actor) {
		return model.Reply{}, ErrThreadNotFound
	}

	depth := 0
	var parentID *int64
	if parentReplyID != nil && *parentReplyID > 0 {
		parent, parentFound, parentErr := s.store.GetByID(ctx, *parentReplyID)
		if parentErr != nil {
			return model.Reply{}, fmt.Errorf("get parent reply: %w", parentErr)
		}
		if parentFound && parent.ThreadID == threadID {
			depth = parent.Depth + 1
			id := parent.ID
			parentID = &id
		} else if s.logger != nil {
			s.logger.Debug("parent reply not found, creating top-level reply",
				zap.Int64("thread_id", threadID),
				zap.Int64("parent_reply_id", *parentReplyID),
			)
		}
	}

	verdict := s.resolver.Resolve(ctx, body)

	reply, err := s.store.Insert(ctx, model.Reply{
		ThreadID:      threadID,
		AuthorID:      actor.UserID,
		Body:          body,
		Status:        modsvc.InitialStatus(verdict),
		Moderation:    verdict,
		ParentReplyID: parentID,
		Depth:         depth,
	})
	if err != nil {
		return model.Reply{}, fmt.Errorf("insert reply: %w", err)
	}

	s.maintainCountersOnCreate(ctx, reply)

	if reply.Status == enums.ContentStatusFlagged {
		if s.notifier != nil {
			s.notifier.NotifyContentFlagged(ctx, enums.ContentTypeReply, reply.ID, verdict.Reason)
		}
	} else {
		if s.broadcaster != nil {
			s.broadcaster.Publish(threadRoom(threadID), "reply:new", reply)
		}
		if s.notifier != nil {
			s.notifier.NotifyThreadReply(ctx, thread.AuthorID, actor.UserID, threadID, reply.ID, parentID != nil)
		}
	}

	return reply, nil
}

func (s *Service) List(ctx context.Context, threadID int64, viewer modsvc.Actor, offset, limit int) ([]model.Reply, error) {
	if threadID <= 0 {
		return nil, fmt.Errorf("%w: invalid thread id", ErrInvalidInput)
	}
	if s.store == nil || s.threads == nil {
		return nil, fmt.Errorf("reply service dependencies are not configured")
	}

	thread, found, err := s.threads.GetByID(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("get thread: %w", err)
	}
	if !found || !modsvc.CanView(thread.Status, thread.AuthorID, viewer) {
		return nil, ErrThreadNotFound
	}

	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = s.cfg.PageSizeDefault
	}
	if limit > s.cfg.PageSizeMax {
		limit = s.cfg.PageSizeMax
	}

	items, err := s.store.ListByThread(ctx, threadID, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list replies: %w", err)
	}

	visible := make([]model.Reply, 0, len(items))
	for _, reply := range items {
		if modsvc.CanView(reply.Status, reply.AuthorID, viewer) {
			visible = append(visible, reply)
		}
	}

	return visible, nil
}

func (s *Service) Delete(ctx context.Context, replyID int64, actor modsvc.Actor) error {
	if replyID <= 0 {
		return fmt.Errorf("%w: invalid reply id", ErrInvalidInput)
	}
	if s.store == nil {
		return fmt.Errorf("reply store is not configured")
	}

	reply, found, err := s.store.GetByID(ctx, replyID)
	if err != nil {
		return fmt.Errorf("get reply: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	if reply.AuthorID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}

	found, err = s.store.Delete(ctx, replyID)
	if err != nil {
		return fmt.Errorf("delete reply: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	s.maintainCountersOnDelete(ctx, reply)

	if s.broadcaster != nil {
		s.broadcaster.Publish(threadRoom(reply.ThreadID), "reply:deleted", map[string]int64{
			"thread_id": reply.ThreadID,
			"reply_id":  replyID,
		})
	}

	return nil
}

func (s *Service) Like(ctx context.Context, replyID int64, actor modsvc.Actor) (int, error) {
	if replyID <= 0 {
		return 0, fmt.Errorf("%w: invalid reply id", ErrInvalidInput)
	}
	if s.store == nil {
		return 0, fmt.Errorf("reply store is not configured")
	}

	reply, found, err := s.store.GetByID(ctx, replyID)
	if err != nil {
		return 0, fmt.Errorf("get reply: %w", err)
	}
	if !found || !modsvc.CanView(reply.Status, reply.AuthorID, actor) {
		return 0, ErrNotFound
	}

	added, likeCount, err := s.store.AddLike(ctx, replyID, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("like reply: %w", err)
	}

	if added && s.broadcaster != nil {
		s.broadcaster.Publish(threadRoom(reply.ThreadID), "reply:like", map[string]int64{
			"thread_id":  reply.ThreadID,
			"reply_id":   replyID,
			"user_id":    actor.UserID,
			"like_count": int64(likeCount),
		})
	}

	return likeCount, nil
}

// maintainCountersOnCreate recounts the owning thread and bumps the parent
// reply's direct-child counter. Counter failures are logged and swallowed:
// the reply itself is already committed and a later recount heals drift.
func (s *Service) maintainCountersOnCreate(ctx context.Context, reply model.Reply) {
	if _, err := s.store.RecountThread(ctx, reply.ThreadID); err != nil && s.logger != nil {
		s.logger.Warn("recount thread replies", zap.Int64("thread_id", reply.ThreadID), zap.Error(err))
	}
	if reply.ParentReplyID != nil {
		if err := s.store.AdjustReplyCount(ctx, *reply.ParentReplyID, 1); err != nil && s.logger != nil {
			s.logger.Warn("increment parent reply count", zap.Int64("parent_reply_id", *reply.ParentReplyID), zap.Error(err))
		}
	}
}

func (s *Service) maintainCountersOnDelete(ctx context.Context, reply model.Reply) {
	if _, err := s.store.RecountThread(ctx, reply.ThreadID); err != nil && s.logger != nil {
		s.logger.Warn("recount thread replies", zap.Int64("thread_id", reply.ThreadID), zap.Error(err))
	}
	if reply.ParentReplyID != nil {
		if err := s.store.AdjustReplyCount(ctx, *reply.ParentReplyID, -1); err != nil && s.logger != nil {
			s.logger.Warn("decrement parent reply count", zap.Int64("parent_reply_id", *reply.ParentReplyID), zap.Error(err))
		}
	}
}

func threadRoom(threadID int64) string {
	return fmt.Sprintf("thread:%d", threadID)
}
