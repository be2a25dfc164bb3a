package workers

import (
	"context"
	"log/slog"
	"strings"

	application "vestiaire/contexts/contest/voting-engine/application"
	"vestiaire/contexts/contest/voting-engine/ports"
	"vestiaire/internal/shared/events"
)

const (
	photoRejectedTopic  = "photo.rejected"
	photoWithdrawnTopic = "photo.withdrawn"
	contestResetTopic   = "contest.reset"
	defaultConsumerCG   = "voting-engine-photo-cg"
)

// PhotoLifecycleConsumer reconciles the vote ledger against photo lifecycle
// events. The photo service already purges synchronously through the client
// port; the consumer replays the same purge from the event stream so the
// ledger converges even when an in-process call was lost to a crash.
type PhotoLifecycleConsumer struct {
	Subscriber    ports.EventSubscriber
	Votes         ports.VoteRepository
	Cache         ports.RankingCache
	ConsumerGroup string
	Logger        *slog.Logger
}

func (c PhotoLifecycleConsumer) Start(ctx context.Context) error {
	logger := application.ResolveLogger(c.Logger)
	group := strings.TrimSpace(c.ConsumerGroup)
	if group == "" {
		group = defaultConsumerCG
	}

	for _, topic := range []string{photoRejectedTopic, photoWithdrawnTopic} {
		if err := c.Subscriber.Subscribe(ctx, topic, group, c.handlePhotoRemoved); err != nil {
			logger.Error("photo consumer subscribe failed",
				"event", "vote_photo_consumer_subscribe_failed",
				"module", "contest/voting-engine",
				"layer", "worker",
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
	}
	if err := c.Subscriber.Subscribe(ctx, contestResetTopic, group, c.handleContestReset); err != nil {
		logger.Error("photo consumer subscribe failed",
			"event", "vote_photo_consumer_subscribe_failed",
			"module", "contest/voting-engine",
			"layer", "worker",
			"topic", contestResetTopic,
			"error", err.Error(),
		)
		return err
	}

	logger.Info("photo lifecycle consumer subscriptions active",
		"event", "vote_photo_consumer_started",
		"module", "contest/voting-engine",
		"layer", "worker",
		"consumer_group", group,
	)
	return nil
}

func (c PhotoLifecycleConsumer) handlePhotoRemoved(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)
	photoID := strings.TrimSpace(event.EntityID)
	if photoID == "" {
		return nil
	}
	if err := c.Votes.DeleteVotesForPhoto(ctx, photoID); err != nil {
		return err
	}
	if c.Cache != nil {
		_ = c.Cache.InvalidateRanking(ctx)
	}
	logger.Info("votes reconciled for removed photo",
		"event", "vote_photo_removed_reconciled",
		"module", "contest/voting-engine",
		"layer", "worker",
		"photo_id", photoID,
		"event_type", event.EventType,
	)
	return nil
}

func (c PhotoLifecycleConsumer) handleContestReset(ctx context.Context, event events.Envelope) error {
	logger := application.ResolveLogger(c.Logger)
	if err := c.Votes.DeleteAllVotes(ctx); err != nil {
		return err
	}
	if c.Cache != nil {
		_ = c.Cache.InvalidateRanking(ctx)
	}
	logger.Info("votes reconciled for contest reset",
		"event", "vote_contest_reset_reconciled",
		"module", "contest/voting-engine",
		"layer", "worker",
		"event_id", event.EventID,
	)
	return nil
}
