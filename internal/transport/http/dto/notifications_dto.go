package dto

import (
	"time"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type NotificationResponse struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	ContentID   int64     `json:"content_id"`
	ContentType string    `json:"content_type"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
	UnreadCount   int                    `json:"unread_count"`
}

type OKResponse struct {
	OK bool `json:"ok"`
}

func NotificationFromModel(n model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:          n.ID,
		Kind:        string(n.Kind),
		Title:       n.Title,
		Body:        n.Body,
		ContentID:   n.ContentID,
		ContentType: string(n.ContentType),
		Read:        n.Read,
		CreatedAt:   n.CreatedAt,
	}
}
