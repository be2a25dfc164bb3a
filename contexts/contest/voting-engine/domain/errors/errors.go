package errors

import "errors"

var (
	ErrVoteNotFound     = errors.New("vote not found")
	ErrPhotoNotEligible = errors.New("photo is not an eligible vote target")
	ErrSelfVote         = errors.New("voting for own photo is not allowed")
	ErrVotingClosed     = errors.New("voting is currently closed")
	ErrRankingHidden    = errors.New("ranking is not public")
	ErrForbidden        = errors.New("actor is not allowed to perform this action")
)
