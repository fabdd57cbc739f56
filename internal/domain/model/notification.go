package model

import (
	"time"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
)

type Notification struct {
	ID          int64                  `json:"id"`
	RecipientID int64                  `json:"recipient_id"`
	Kind        enums.NotificationKind `json:"kind"`
	Title       string                 `json:"title"`
	Body        string                 `json:"body"`
	ContentID   int64                  `json:"content_id"`
	ContentType enums.ContentType      `json:"content_type"`
	Read        bool                   `json:"read"`
	CreatedAt   time.Time              `json:"created_at"`
}
