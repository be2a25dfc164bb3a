package entities

import "time"

// Vote is one voter's single active claim. The voter id is the identity:
// re-voting rewrites PhotoID in place rather than inserting a second row.
type Vote struct {
	VoteID    string
	VoterID   string
	PhotoID   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CandidatePhoto is the voting engine's projection of a contest entry. Only
// approved photos are eligible targets.
type CandidatePhoto struct {
	PhotoID     string
	OwnerID     string
	SubmittedAt time.Time
}

// PhotoScore is one ranking row. Ordering: tally descending, then earlier
// submission, then photo id for full determinism.
type PhotoScore struct {
	PhotoID     string    `json:"photo_id"`
	Tally       int       `json:"tally"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// RankLess is the one ordering rule for rankings; incremental and full
// recomputation must both sort with it so the two never diverge.
func RankLess(a, b PhotoScore) bool {
	if a.Tally != b.Tally {
		return a.Tally > b.Tally
	}
	if !a.SubmittedAt.Equal(b.SubmittedAt) {
		return a.SubmittedAt.Before(b.SubmittedAt)
	}
	return a.PhotoID < b.PhotoID
}
