package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"vestiaire/contexts/contest/voting-engine/application/commands"
	"vestiaire/contexts/contest/voting-engine/application/queries"
	"vestiaire/contexts/contest/voting-engine/domain/entities"
	httptransport "vestiaire/contexts/contest/voting-engine/transport/http"
	"vestiaire/internal/shared/principal"
)

type Handler struct {
	CastVote    commands.CastVoteUseCase
	RetractVote commands.RetractVoteUseCase
	Queries     queries.RankingQueries
	Logger      *slog.Logger
}

func (h Handler) CastVoteHandler(
	ctx context.Context,
	voter principal.Principal,
	req httptransport.CastVoteRequest,
) (httptransport.CastVoteResponse, error) {
	result, err := h.CastVote.Execute(ctx, commands.CastVoteCommand{
		PhotoID: req.PhotoID,
		Voter:   voter,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		Vote:          mapVote(result.Vote),
		Moved:         result.Moved,
		PreviousPhoto: result.PreviousPhoto,
	}, nil
}

func (h Handler) RetractVoteHandler(ctx context.Context, voter principal.Principal) error {
	return h.RetractVote.Execute(ctx, commands.RetractVoteCommand{Voter: voter})
}

func (h Handler) MyVoteHandler(ctx context.Context, voter principal.Principal) (httptransport.MyVoteResponse, error) {
	vote, found, err := h.Queries.MyVote(ctx, voter)
	if err != nil {
		return httptransport.MyVoteResponse{}, err
	}
	if !found {
		return httptransport.MyVoteResponse{}, nil
	}
	dto := mapVote(vote)
	return httptransport.MyVoteResponse{Vote: &dto}, nil
}

func (h Handler) RankingHandler(ctx context.Context, viewer principal.Principal) (httptransport.RankingResponse, error) {
	scores, err := h.Queries.Ranking(ctx, viewer)
	if err != nil {
		return httptransport.RankingResponse{}, err
	}
	items := make([]httptransport.RankingEntryDTO, 0, len(scores))
	for i, score := range scores {
		items = append(items, httptransport.RankingEntryDTO{
			Rank:        i + 1,
			PhotoID:     score.PhotoID,
			Tally:       score.Tally,
			SubmittedAt: score.SubmittedAt.Format(time.RFC3339),
		})
	}
	return httptransport.RankingResponse{Items: items}, nil
}

func mapVote(vote entities.Vote) httptransport.VoteDTO {
	return httptransport.VoteDTO{
		VoteID:    vote.VoteID,
		VoterID:   vote.VoterID,
		PhotoID:   vote.PhotoID,
		CreatedAt: vote.CreatedAt.Format(time.RFC3339),
		UpdatedAt: vote.UpdatedAt.Format(time.RFC3339),
	}
}
