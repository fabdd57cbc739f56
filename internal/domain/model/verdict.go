package model

import "github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"

// Verdict is the normalized moderation judgment attached to a content item.
// It is written once when the content is created or edited; re-evaluation
// always produces a fresh Verdict, never an in-place update.
type Verdict struct {
	Status     enums.VerdictStatus `json:"status"`
	Reason     string              `json:"reason"`
	Confidence float64             `json:"confidence"`
}
