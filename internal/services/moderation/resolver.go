package moderation

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/enums"
	"github.com/shashidhar078/CHACKATHON-sub000/internal/domain/model"
)

type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Resolver turns arbitrary text into a Verdict. Every path terminates in a
// Verdict within one classifier round-trip: a gateway error or an unparsable
// reply both fall through to the blocklist heuristic, so content submission
// is never blocked by classifier downtime.
type Resolver struct {
	classifier Classifier
	blocklist  []string
	logger     *zap.Logger
}

func NewResolver(classifier Classifier, log *zap.Logger) *Resolver {
	return &Resolver{
		classifier: classifier,
		blocklist:  defaultBlocklist,
		logger:     log,
	}
}

func (r *Resolver) Resolve(ctx context.Context, text string) model.Verdict {
	if r.classifier != nil {
		raw, err := r.classifier.Classify(ctx, text)
		if err == nil {
			if verdict, ok := parseJudgment(raw); ok {
				return verdict
			}
			if r.logger != nil {
				r.logger.Debug("classifier reply had no parsable judgment")
			}
		} else if r.logger != nil {
			r.logger.Debug("classifier unavailable, using fallback heuristic", zap.Error(err))
		}
	}

	if term, ok := matchBlocklist(text, r.blocklist); ok {
		return model.Verdict{
			Status:     enums.VerdictStatusFlagged,
			Reason:     fmt.Sprintf("contains offensive language: %s", term),
			Confidence: 0.8,
		}
	}

	return model.Verdict{
		Status:     enums.VerdictStatusSkipped,
		Reason:     "moderation unavailable",
		Confidence: 0,
	}
}

// InitialStatus decides the visibility a content item starts in. Only a
// Flagged verdict quarantines the item; Safe and Skipped both publish it.
func InitialStatus(v model.Verdict) enums.ContentStatus {
	if v.Status == enums.VerdictStatusFlagged {
		return enums.ContentStatusFlagged
	}
	return enums.ContentStatusApproved
}
