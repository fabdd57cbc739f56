package threads

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
	ErrNotFound     = errors.New("thread not found")
	ErrForbidden    = errors.New("actor is not allowed to perform this action")
	ErrInvalidInput = errors.New("invalid input")
)

type ThreadStore interface {
	Insert(ctx context.Context, thread model.Thread) (model.Thread, error)
	GetByID(ctx context.Context, threadID int64) (model.Thread, bool, error)
	ListApproved(ctx context.Context, offset, limit int) ([]model.Thread, error)
	UpdateContent(ctx context.Context, threadID int64, title, body string, verdict model.Verdict, status enums.ContentStatus) (bool, error)
	Delete(ctx context.Context, threadID int64) (bool, error)
	AddLike(ctx context.Context, threadID, userID int64) (bool, int, error)
}

type VerdictResolver interface {
	Resolve(ctx context.Context, text string) model.Verdict
}

type Notifier interface {
	NotifyContentFlagged(ctx context.Context, contentType enums.ContentType, contentID int64, summary string)
}

type Broadcaster interface {
	Publish(room, event string, payload any)
	Broadcast(event string, payload any)
}

type Config struct {
	TitleMaxLen     int
	BodyMaxLen      int
	PageSizeDefault int
	PageSizeMax     int
}

type Service struct {
	store       ThreadStore
	resolver    VerdictResolver
	notifier    Notifier
	broadcaster Broadcaster
	cfg         Config
	logger      *zap.Logger
}

func NewService(store ThreadStore, resolver VerdictResolver, notifier Notifier, broadcaster Broadcaster, cfg Config, log *zap.Logger) *Service {
	if cfg.TitleMaxLen <= 0 {
		cfg.TitleMaxLen = 200
	}
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
		resolver:    resolver,
		notifier:    notifier,
		broadcaster: broadcaster,
		cfg:         cfg,
		logger:      log,
	}
}

// Create runs the moderation pipeline for a new thread: resolve a verdict,
// commit the initial status, then fan out. Moderation never blocks creation;
// a classifier failure degrades to the offline heuristic inside Resolve.
func (s *Service) Create(ctx context.Context, authorID int64, title, body string) (model.Thread, error) {
	if authorID <= 0 {
		return model.Thread{}, fmt.Errorf("%w: invalid author id", ErrInvalidInput)
	}
	if err := s.validateContent(title, body); err != nil {
		return model.Thread{}, err
	}
	if s.store == nil || s.resolver == nil {
		return model.Thread{}, fmt.Errorf("thread service dependencies are not configured")
	}

	verdict := s.resolver.Resolve(ctx, title+"\n"+body)

	thread, err := s.store.Insert(ctx, model.Thread{
		AuthorID:   authorID,
		Title:      strings.TrimSpace(title),
		Body:       body,
		Status:     modsvc.InitialStatus(verdict),
		Moderation: verdict,
	})
	if err != nil {
		return model.Thread{}, fmt.Errorf("insert thread: %w", err)
	}

	if thread.Status == enums.ContentStatusFlagged {
		if s.notifier != nil {
			s.notifier.NotifyContentFlagged(ctx, enums.ContentTypeThread, thread.ID, verdict.Reason)
		}
	} else if s.broadcaster != nil {
		s.broadcaster.Broadcast("thread:new", thread)
	}

	return thread, nil
}

// Get applies the read-side visibility rule: a flagged thread exists only
// for its author and admins.
func (s *Service) Get(ctx context.Context, threadID int64, viewer modsvc.Actor) (model.Thread, error) {
	if threadID <= 0 {
		return model.Thread{}, fmt.Errorf("%w: invalid thread id", ErrInvalidInput)
	}
	if s.store == nil {
		return model.Thread{}, fmt.Errorf("thread store is not configured")
	}

	thread, found, err := s.store.GetByID(ctx, threadID)
	if err != nil {
		return model.Thread{}, fmt.Errorf("get thread: %w", err)
	}
	if !found || !modsvc.CanView(thread.Status, thread.AuthorID, viewer) {
		return model.Thread{}, ErrNotFound
	}

	return thread, nil
}

func (s *Service) List(ctx context.Context, offset, limit int) ([]model.Thread, error) {
	if s.store == nil {
		return nil, fmt.Errorf("thread store is not configured")
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

	items, err := s.store.ListApproved(ctx, offset, limit)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	return items, nil
}

// Update re-runs moderation on the edited text. The old verdict is replaced
// wholesale and the status re-evaluated, so an edit can both flag a clean
// thread and un-flag a previously flagged one.
func (s *Service) Update(ctx context.Context, threadID int64, actor modsvc.Actor, title, body string) (model.Thread, error) {
	if threadID <= 0 {
		return model.Thread{}, fmt.Errorf("%w: invalid thread id", ErrInvalidInput)
	}
	if err := s.validateContent(title, body); err != nil {
		return model.Thread{}, err
	}
	if s.store == nil || s.resolver == nil {
		return model.Thread{}, fmt.Errorf("thread service dependencies are not configured")
	}

	thread, found, err := s.store.GetByID(ctx, threadID)
	if err != nil {
		return model.Thread{}, fmt.Errorf("get thread: %w", err)
	}
	if !found || !modsvc.CanView(thread.Status, thread.AuthorID, actor) {
		return model.Thread{}, ErrNotFound
	}
	if thread.AuthorID != actor.UserID {
		return model.Thread{}, ErrForbidden
	}

	verdict := s.resolver.Resolve(ctx, title+"\n"+body)
	status := modsvc.InitialStatus(verdict)

	found, err = s.store.UpdateContent(ctx, threadID, strings.TrimSpace(title), body, verdict, status)
	if err != nil {
		return model.Thread{}, fmt.Errorf("update thread: %w", err)
	}
	if !found {
		return model.Thread{}, ErrNotFound
	}

	thread, _, err = s.store.GetByID(ctx, threadID)
	if err != nil {
		return model.Thread{}, fmt.Errorf("reload thread: %w", err)
	}

	if status == enums.ContentStatusFlagged {
		if s.notifier != nil {
			s.notifier.NotifyContentFlagged(ctx, enums.ContentTypeThread, threadID, verdict.Reason)
		}
	} else if s.broadcaster != nil {
		s.broadcaster.Publish(threadRoom(threadID), "thread:updated", thread)
	}

	return thread, nil
}

func (s *Service) Delete(ctx context.Context, threadID int64, actor modsvc.Actor) error {
	if threadID <= 0 {
		return fmt.Errorf("%w: invalid thread id", ErrInvalidInput)
	}
	if s.store == nil {
		return fmt.Errorf("thread store is not configured")
	}

	thread, found, err := s.store.GetByID(ctx, threadID)
	if err != nil {
		return fmt.Errorf("get thread: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	if thread.AuthorID != actor.UserID && !actor.IsAdmin() {
		return ErrForbidden
	}

	found, err = s.store.Delete(ctx, threadID)
	if err != nil {
		return fmt.Errorf("delete thread: %w", err)
	}
	if !found {
		return ErrNotFound
	}

	if s.broadcaster != nil {
		s.broadcaster.Broadcast("thread:deleted", map[string]int64{"thread_id": threadID})
	}

	return nil
}

// Like is idempotent: liking a thread twice keeps a single like. The event
// is published only when the like was actually new.
func (s *Service) Like(ctx context.Context, threadID int64, actor modsvc.Actor) (int, error) {
	if threadID <= 0 {
		return 0, fmt.Errorf("%w: invalid thread id", ErrInvalidInput)
	}
	if s.store == nil {
		return 0, fmt.Errorf("thread store is not configured")
	}

	thread, found, err := s.store.GetByID(ctx, threadID)
	if err != nil {
		return 0, fmt.Errorf("get thread: %w", err)
	}
	if !found || !modsvc.CanView(thread.Status, thread.AuthorID, actor) {
		return 0, ErrNotFound
	}

	added, likeCount, err := s.store.AddLike(ctx, threadID, actor.UserID)
	if err != nil {
		return 0, fmt.Errorf("like thread: %w", err)
	}

	if added && s.broadcaster != nil {
		s.broadcaster.Publish(threadRoom(threadID), "thread:like", map[string]int64{
			"thread_id":  threadID,
			"user_id":    actor.UserID,
			"like_count": int64(likeCount),
		})
	}

	return likeCount, nil
}

func (s *Service) validateContent(title, body string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(title) > s.cfg.TitleMaxLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, s.cfg.TitleMaxLen)
	}
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(body) > s.cfg.BodyMaxLen {
		return fmt.Errorf("%w: body exceeds %d characters", ErrInvalidInput, s.cfg.BodyMaxLen)
	}
	return nil
}

func threadRoom(threadID int64) string {
	return fmt.Sprintf("thread:%d", threadID)
}
