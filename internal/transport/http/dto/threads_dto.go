package dto

import (
	"time"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type CreateThreadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type UpdateThreadRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type ThreadResponse struct {
	ID              int64          `json:"id"`
	AuthorID        int64          `json:"author_id"`
	Title           string         `json:"title"`
	Body            string         `json:"body"`
	Status          string         `json:"status"`
	Moderation      VerdictPayload `json:"moderation"`
	ReviewedByAdmin bool           `json:"reviewed_by_admin"`
	ReplyCount      int            `json:"reply_count"`
	LikeCount       int            `json:"like_count"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type VerdictPayload struct {
	Status     string  `json:"status"`
	Reason     string  `json:"reason"`
	Confidence float64 `json:"confidence"`
}

type ThreadListResponse struct {
	Threads []ThreadResponse `json:"threads"`
}

type LikeResponse struct {
	LikeCount int `json:"like_count"`
}

func ThreadFromModel(t model.Thread) ThreadResponse {
	return ThreadResponse{
		ID:              t.ID,
		AuthorID:        t.AuthorID,
		Title:           t.Title,
		Body:            t.Body,
		Status:          string(t.Status),
		Moderation:      VerdictFromModel(t.Moderation),
		ReviewedByAdmin: t.ReviewedByAdmin,
		ReplyCount:      t.ReplyCount,
		LikeCount:       t.LikeCount,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func VerdictFromModel(v model.Verdict) VerdictPayload {
	return VerdictPayload{
		Status:     string(v.Status),
		Reason:     v.Reason,
		Confidence: v.Confidence,
	}
}
