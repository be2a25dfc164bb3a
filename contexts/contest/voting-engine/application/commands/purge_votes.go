package commands

import (
	"context"
	"log/slog"
	"strings"

	application "vestiaire/contexts/contest/voting-engine/application"
	"vestiaire/contexts/contest/voting-engine/ports"
)

// PurgeVotesUseCase removes votes the photo context invalidated: a single
// photo leaving the contest, or a full reset. It backs the VotePurger client
// port the photo service calls, as well as the lifecycle event consumer.
type PurgeVotesUseCase struct {
	Votes  ports.VoteRepository
	Cache  ports.RankingCache
	Outbox ports.OutboxWriter
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger
}

func (uc PurgeVotesUseCase) PurgeVotesForPhoto(ctx context.Context, photoID string) error {
	logger := application.ResolveLogger(uc.Logger)
	photoID = strings.TrimSpace(photoID)
	if err := uc.Votes.DeleteVotesForPhoto(ctx, photoID); err != nil {
		return err
	}
	if uc.Cache != nil {
		_ = uc.Cache.InvalidateRanking(ctx)
	}
	uc.stageEvent(ctx, logger, map[string]any{"photo_id": photoID})
	logger.Info("votes purged for photo",
		"event", "votes_purged_for_photo",
		"module", "contest/voting-engine",
		"layer", "application",
		"photo_id", photoID,
	)
	return nil
}

func (uc PurgeVotesUseCase) PurgeAllVotes(ctx context.Context) error {
	logger := application.ResolveLogger(uc.Logger)
	if err := uc.Votes.DeleteAllVotes(ctx); err != nil {
		return err
	}
	if uc.Cache != nil {
		_ = uc.Cache.InvalidateRanking(ctx)
	}
	uc.stageEvent(ctx, logger, map[string]any{"scope": "all"})
	logger.Info("all votes purged",
		"event", "votes_purged_all",
		"module", "contest/voting-engine",
		"layer", "application",
	)
	return nil
}

func (uc PurgeVotesUseCase) stageEvent(ctx context.Context, logger *slog.Logger, payload map[string]any) {
	now := uc.Clock.Now().UTC()
	if err := appendVoteEvent(ctx, uc.Outbox, uc.IDGen, now, eventVotesPurged, "", payload); err != nil {
		logger.Warn("vote purge event staging failed",
			"event", "vote_purge_event_staging_failed",
			"module", "contest/voting-engine",
			"layer", "application",
			"error", err.Error(),
		)
	}
}
