package dto

import (
	"time"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type CreateReplyRequest struct {
	Body          string `json:"body"`
	ParentReplyID *int64 `json:"parent_reply_id"`
}

type ReplyResponse struct {
	ID              int64          `json:"id"`
	ThreadID        int64          `json:"thread_id"`
	AuthorID        int64          `json:"author_id"`
	Body            string         `json:"body"`
	Status          string         `json:"status"`
	Moderation      VerdictPayload `json:"moderation"`
	ReviewedByAdmin bool           `json:"reviewed_by_admin"`
	ParentReplyID   *int64         `json:"parent_reply_id"`
	Depth           int            `json:"depth"`
	ReplyCount      int            `json:"reply_count"`
	LikeCount       int            `json:"like_count"`
	CreatedAt       time.Time      `json:"created_at"`
}

type ReplyListResponse struct {
	Replies []ReplyResponse `json:"replies"`
}

func ReplyFromModel(r model.Reply) ReplyResponse {
	return ReplyResponse{
		ID:              r.ID,
		ThreadID:        r.ThreadID,
		AuthorID:        r.AuthorID,
		Body:            r.Body,
		Status:          string(r.Status),
		Moderation:      VerdictFromModel(r.Moderation),
		ReviewedByAdmin: r.ReviewedByAdmin,
		ParentReplyID:   r.ParentReplyID,
		Depth:           r.Depth,
		ReplyCount:      r.ReplyCount,
		LikeCount:       r.LikeCount,
		CreatedAt:       r.CreatedAt,
	}
}
