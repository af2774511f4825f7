// Package classify assigns one of the fixed intents to a raw user query. The
// primary path is an LLM call at temperature zero; a deterministic keyword
// heuristic covers every failure of that call, so classification as a whole
// never errors and works fully offline.
package classify

import (
	"context"
	"strings"

	"github.com/shopassist-poc/server/internal/agent/model"
	logx "github.com/shopassist-poc/server/pkg/logger"
)

// Classifier maps a user query to an intent. Implementations may fail; use
// WithFallback to get the never-failing composite the pipeline expects.
type Classifier interface {
	Classify(ctx context.Context, query string) (model.Intent, error)
}

// HeuristicIntent is the deterministic keyword fallback. It is the only
// classification path guaranteed to be available offline.
func HeuristicIntent(query string) model.Intent {
	input := strings.ToLower(query)

	switch {
	case strings.Contains(input, "cancel") ||
		strings.Contains(input, "order") ||
		strings.Contains(input, "tracking"):
		return model.IntentOrderHelp
	case strings.Contains(input, "product") ||
		strings.Contains(input, "dress") ||
		strings.Contains(input, "size") ||
		strings.Contains(input, "wedding"):
		return model.IntentProductAssist
	default:
		return model.IntentOther
	}
}

type fallbackClassifier struct {
	svc Classifier
}

// WithFallback wraps a service classifier so that any failure (timeout,
// malformed label, cancelled transport, or a nil service) falls through
// synchronously to HeuristicIntent. Single attempt, no retry. Callers cannot
// tell which path produced the intent.
func WithFallback(svc Classifier) Classifier {
	return &fallbackClassifier{svc: svc}
}

func (f *fallbackClassifier) Classify(ctx context.Context, query string) (model.Intent, error) {
	if f.svc != nil {
		intent, err := f.svc.Classify(ctx, query)
		if err == nil {
			return intent, nil
		}
		logx.Warn().Err(err).Msg("classifier service failed; using keyword heuristic")
	}
	return HeuristicIntent(query), nil
}
