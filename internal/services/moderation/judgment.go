package moderation

import (
	"encoding/json"
	"strings"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type rawJudgment struct {
	Status     string   `json:"status"`
	Reason     string   `json:"reason"`
	Confidence *float64 `json:"confidence"`
}

// parseJudgment extracts the structured judgment embedded in a free-form
// classifier reply. The reply may wrap the JSON object in prose or markdown
// fences, so the first '{' through the last '}' is taken as the candidate
// object. Any shape the parser cannot make sense of is treated the same as
// a transport failure by the caller.
func parseJudgment(raw string) (model.Verdict, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return model.Verdict{}, false
	}

	var judgment rawJudgment
	if err := json.Unmarshal([]byte(raw[start:end+1]), &judgment); err != nil {
		return model.Verdict{}, false
	}

	var status enums.VerdictStatus
	switch strings.ToLower(strings.TrimSpace(judgment.Status)) {
	case "safe":
		status = enums.VerdictStatusSafe
	case "flagged":
		status = enums.VerdictStatusFlagged
	default:
		return model.Verdict{}, false
	}

	confidence := 0.5
	if judgment.Confidence != nil && *judgment.Confidence >= 0 && *judgment.Confidence <= 1 {
		confidence = *judgment.Confidence
	}

	return model.Verdict{
		Status:     status,
		Reason:     strings.TrimSpace(judgment.Reason),
		Confidence: confidence,
	}, true
}
