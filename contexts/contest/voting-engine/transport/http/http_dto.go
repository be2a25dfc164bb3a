package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CastVoteRequest struct {
	PhotoID string `json:"photo_id" validate:"required"`
}

type VoteDTO struct {
	VoteID    string `json:"vote_id"`
	VoterID   string `json:"voter_id"`
	PhotoID   string `json:"photo_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type CastVoteResponse struct {
	Vote          VoteDTO `json:"vote"`
	Moved         bool    `json:"moved"`
	PreviousPhoto string  `json:"previous_photo,omitempty"`
}

type MyVoteResponse struct {
	Vote *VoteDTO `json:"vote"`
}

type RankingEntryDTO struct {
	Rank        int    `json:"rank"`
	PhotoID     string `json:"photo_id"`
	Tally       int    `json:"tally"`
	SubmittedAt string `json:"submitted_at"`
}

type RankingResponse struct {
	Items []RankingEntryDTO `json:"items"`
}
