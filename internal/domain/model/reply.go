package model

import (
	"time"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
)

type Reply struct {
	ID              int64               `json:"id"`
	ThreadID        int64               `json:"thread_id"`
	AuthorID        int64               `json:"author_id"`
	Body            string              `json:"body"`
	Status          enums.ContentStatus `json:"status"`
	Moderation      Verdict             `json:"moderation"`
	ReviewedByAdmin bool                `json:"reviewed_by_admin"`
	// ParentReplyID is nil for top-level replies. A dangling reference is
	// tolerated at creation time: the reply is stored as top-level instead.
	ParentReplyID *int64    `json:"parent_reply_id"`
	Depth         int       `json:"depth"`
	ReplyCount    int       `json:"reply_count"`
	LikeCount     int       `json:"like_count"`
	CreatedAt     time.Time `json:"created_at"`
}
