package model

import (
	"time"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
)

type Thread struct {
	ID              int64               `json:"id"`
	AuthorID        int64               `json:"author_id"`
	Title           string              `json:"title"`
	Body            string              `json:"body"`
	Status          enums.ContentStatus `json:"status"`
	Moderation      Verdict             `json:"moderation"`
	ReviewedByAdmin bool                `json:"reviewed_by_admin"`
	ReplyCount      int                 `json:"reply_count"`
	LikeCount       int                 `json:"like_count"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}
