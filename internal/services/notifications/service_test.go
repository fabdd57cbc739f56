package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type memoryNotificationStore struct {
	nextID        int64
	notifications map[int64]model.Notification
	failFor       map[int64]error
}

func newMemoryNotificationStore() *memoryNotificationStore {
	return &memoryNotificationStore{
		nextID:        1,
		notifications: make(map[int64]model.Notification),
		failFor:       make(map[int64]error),
	}
}

func (s *memoryNotificationStore) Insert(_ context.Context, n model.Notification) (model.Notification, error) {
	if err, ok := s.failFor[n.RecipientID]; ok {
		return model.Notification{}, err
	}
	n.ID = s.nextID
	s.nextID++
	n.CreatedAt = time.Now()
	s.notifications[n.ID] = n
	return n, nil
}

func (s *memoryNotificationStore) ListByRecipient(_ context.Context, recipientID int64, offset, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for id := s.nextID - 1; id >= 1; id-- {
		n, ok := s.notifications[id]
		if !ok || n.RecipientID != recipientID {
			continue
		}
		out = append(out, n)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *memoryNotificationStore) CountUnread(_ context.Context, recipientID int64) (int, error) {
	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (s *memoryNotificationStore) MarkRead(_ context.Context, notificationID, recipientID int64) (bool, error) {
	n, ok := s.notifications[notificationID]
	if !ok || n.RecipientID != recipientID {
		return false, nil
	}
	n.Read = true
	s.notifications[notificationID] = n
	return true, nil
}

func (s *memoryNotificationStore) MarkAllRead(_ context.Context, recipientID int64) error {
	for id, n := range s.notifications {
		if n.RecipientID == recipientID {
			n.Read = true
			s.notifications[id] = n
		}
	}
	return nil
}

func (s *memoryNotificationStore) countFor(recipientID int64) int {
	count := 0
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			count++
		}
	}
	return count
}

type stubAdminStore struct {
	ids []int64
	err error
}

func (s *stubAdminStore) ListAdminIDs(_ context.Context) ([]int64, error) {
	return s.ids, s.err
}

type capturePublisher struct {
	rooms  []string
	events []string
}

func (p *capturePublisher) Publish(room, event string, _ any) {
	p.rooms = append(p.rooms, room)
	p.events = append(p.events, event)
}

func TestNotifyContentFlaggedFansOutToEveryAdmin(t *testing.T) {
	store := newMemoryNotificationStore()
	publisher := &capturePublisher{}
	svc := NewService(store, &stubAdminStore{ids: []int64{1, 2, 3}}, publisher, nil)

	svc.NotifyContentFlagged(context.Background(), enums.ContentTypeThread, 42, "contains offensive language: idiot")

	for _, adminID := range []int64{1, 2, 3} {
		if store.countFor(adminID) != 1 {
			t.Fatalf("expected one notification for admin %d, got %d", adminID, store.countFor(adminID))
		}
	}
	if len(publisher.events) != 3 {
		t.Fatalf("expected three live events, got %d", len(publisher.events))
	}
	for i, event := range publisher.events {
		if event != "notification" {
			t.Fatalf("unexpected event name: %s", event)
		}
		if publisher.rooms[i] != "user:1" && publisher.rooms[i] != "user:2" && publisher.rooms[i] != "user:3" {
			t.Fatalf("unexpected room: %s", publisher.rooms[i])
		}
	}
}

func TestNotifyContentFlaggedWithNoAdminsIsNoop(t *testing.T) {
	store := newMemoryNotificationStore()
	svc := NewService(store, &stubAdminStore{}, nil, nil)

	svc.NotifyContentFlagged(context.Background(), enums.ContentTypeReply, 7, "summary")

	if len(store.notifications) != 0 {
		t.Fatalf("empty admin set must produce no notifications")
	}
}

func TestNotifyContentFlaggedToleratesPartialFailure(t *testing.T) {
	store := newMemoryNotificationStore()
	store.failFor[2] = errors.New("deadlock detected")
	svc := NewService(store, &stubAdminStore{ids: []int64{1, 2, 3}}, nil, nil)

	svc.NotifyContentFlagged(context.Background(), enums.ContentTypeThread, 42, "summary")

	if store.countFor(1) != 1 || store.countFor(3) != 1 {
		t.Fatalf("one failed insert must not stop the rest of the fan-out")
	}
	if store.countFor(2) != 0 {
		t.Fatalf("failed recipient should have no notification")
	}
}

func TestNotifyContentFlaggedSurvivesAdminListFailure(t *testing.T) {
	store := newMemoryNotificationStore()
	svc := NewService(store, &stubAdminStore{err: errors.New("connection refused")}, nil, nil)

	svc.NotifyContentFlagged(context.Background(), enums.ContentTypeThread, 42, "summary")

	if len(store.notifications) != 0 {
		t.Fatalf("failed admin lookup must produce no notifications")
	}
}

func TestNotifyThreadReply(t *testing.T) {
	store := newMemoryNotificationStore()
	publisher := &capturePublisher{}
	svc := NewService(store, &stubAdminStore{}, publisher, nil)
	ctx := context.Background()

	svc.NotifyThreadReply(ctx, 7, 8, 1, 100, false)
	if store.countFor(7) != 1 {
		t.Fatalf("expected one notification for the thread author, got %d", store.countFor(7))
	}
	if len(publisher.rooms) != 1 || publisher.rooms[0] != "user:7" {
		t.Fatalf("expected live event in user:7, got %v", publisher.rooms)
	}

	svc.NotifyThreadReply(ctx, 7, 7, 1, 101, false)
	if store.countFor(7) != 1 {
		t.Fatalf("self reply must not notify")
	}

	svc.NotifyThreadReply(ctx, 7, 8, 1, 102, true)
	if store.countFor(7) != 1 {
		t.Fatalf("nested reply must not notify")
	}
}

func TestMarkReadEnforcesOwnership(t *testing.T) {
	store := newMemoryNotificationStore()
	svc := NewService(store, &stubAdminStore{}, nil, nil)
	ctx := context.Background()

	svc.NotifyThreadReply(ctx, 7, 8, 1, 100, false)

	if err := svc.MarkRead(ctx, 1, 99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("foreign notification should behave as missing, got %v", err)
	}

	if err := svc.MarkRead(ctx, 1, 7); err != nil {
		t.Fatalf("recipient mark read: %v", err)
	}

	count, err := svc.UnreadCount(ctx, 7)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 0 {
		t.Fatalf("unexpected unread count: %d", count)
	}
}

func TestMarkAllRead(t *testing.T) {
	store := newMemoryNotificationStore()
	svc := NewService(store, &stubAdminStore{ids: []int64{7}}, nil, nil)
	ctx := context.Background()

	svc.NotifyContentFlagged(ctx, enums.ContentTypeThread, 1, "a")
	svc.NotifyContentFlagged(ctx, enums.ContentTypeThread, 2, "b")
	svc.NotifyThreadReply(ctx, 9, 8, 1, 100, false)

	if err := svc.MarkAllRead(ctx, 7); err != nil {
		t.Fatalf("mark all read: %v", err)
	}

	count, err := svc.UnreadCount(ctx, 7)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 0 {
		t.Fatalf("unexpected unread count for recipient 7: %d", count)
	}

	count, err = svc.UnreadCount(ctx, 9)
	if err != nil {
		t.Fatalf("unread count: %v", err)
	}
	if count != 1 {
		t.Fatalf("other recipients must keep their unread state, got %d", count)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	store := newMemoryNotificationStore()
	svc := NewService(store, &stubAdminStore{}, nil, nil)
	ctx := context.Background()

	svc.NotifyThreadReply(ctx, 7, 8, 1, 100, false)
	svc.NotifyThreadReply(ctx, 7, 9, 1, 101, false)

	items, err := svc.List(ctx, 7, 0, 10)
	if err != nil {
		t.Fatalf("list notifications: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("unexpected notification count: %d", len(items))
	}
	if items[0].ID <= items[1].ID {
		t.Fatalf("expected newest first, got ids %d, %d", items[0].ID, items[1].ID)
	}
}
