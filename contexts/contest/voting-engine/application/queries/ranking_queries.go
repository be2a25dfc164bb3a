package queries

import (
	"context"
	"log/slog"
	"sort"

	application "vestiaire/contexts/contest/voting-engine/application"
	"vestiaire/contexts/contest/voting-engine/domain/entities"
	domainerrors "vestiaire/contexts/contest/voting-engine/domain/errors"
	"vestiaire/contexts/contest/voting-engine/ports"
	"vestiaire/internal/shared/principal"
)

// RankingQueries is the ranking aggregator. It is a pure projection: the
// tally of a photo is the count of active vote rows pointing at it, nothing
// else, so the ordering can always be rebuilt from the ledger.
type RankingQueries struct {
	Votes     ports.VoteRepository
	Directory ports.PhotoDirectory
	Gate      ports.ContestGate
	Cache     ports.RankingCache
	Logger    *slog.Logger
}

// Ranking returns the descending ordering of approved photos. Students see
// it only while the ranking is public; moderators always see it.
func (q RankingQueries) Ranking(ctx context.Context, viewer principal.Principal) ([]entities.PhotoScore, error) {
	if !viewer.Moderator() {
		public, err := q.Gate.RankingPublic(ctx)
		if err != nil {
			return nil, err
		}
		if !public {
			return nil, domainerrors.ErrRankingHidden
		}
	}

	if q.Cache != nil {
		if cached, ok, err := q.Cache.GetRanking(ctx); err == nil && ok {
			return cached, nil
		}
	}

	scores, err := q.Recompute(ctx)
	if err != nil {
		return nil, err
	}
	if q.Cache != nil {
		if err := q.Cache.SetRanking(ctx, scores); err != nil {
			application.ResolveLogger(q.Logger).Warn("ranking cache write failed",
				"event", "ranking_cache_write_failed",
				"module", "contest/voting-engine",
				"layer", "application",
				"error", err.Error(),
			)
		}
	}
	return scores, nil
}

// Recompute rebuilds the ordering from scratch: every approved photo, scored
// by counting its vote rows, sorted by the shared rank rule.
func (q RankingQueries) Recompute(ctx context.Context) ([]entities.PhotoScore, error) {
	photos, err := q.Directory.ListEligiblePhotos(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := q.Votes.CountVotesByPhoto(ctx)
	if err != nil {
		return nil, err
	}

	scores := make([]entities.PhotoScore, 0, len(photos))
	for _, photo := range photos {
		scores = append(scores, entities.PhotoScore{
			PhotoID:     photo.PhotoID,
			Tally:       counts[photo.PhotoID],
			SubmittedAt: photo.SubmittedAt,
		})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return entities.RankLess(scores[i], scores[j])
	})
	return scores, nil
}

// MyVote resolves the caller's active vote, if any.
func (q RankingQueries) MyVote(ctx context.Context, voter principal.Principal) (entities.Vote, bool, error) {
	if voter.Anonymous() {
		return entities.Vote{}, false, domainerrors.ErrForbidden
	}
	return q.Votes.GetVoteByVoter(ctx, voter.UserID)
}
