package service

import (
	"context"

	"careercompass/internal/model"
)

// Notifier receives engine signals for external collaborators: the
// gamification ledger, reporting and delivery. Implementations must
// be fire-and-forget — the engine never rolls back on notifier
// failure.
type Notifier interface {
	SectionCompleted(ctx context.Context, session *model.Session, section int)
	SessionCompleted(ctx context.Context, session *model.Session, profile *model.Profile)
	PatternRecognized(ctx context.Context, session *model.Session, code string)
}

// NopNotifier discards all signals. For tests and signal-less
// deployments.
type NopNotifier struct{}

func (NopNotifier) SectionCompleted(context.Context, *model.Session, int) {}

func (NopNotifier) SessionCompleted(context.Context, *model.Session, *model.Profile) {}

func (NopNotifier) PatternRecognized(context.Context, *model.Session, string) {}
