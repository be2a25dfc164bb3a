package entities

import "time"

type PhotoStatus string

const (
	StatusPending   PhotoStatus = "pending"
	StatusApproved  PhotoStatus = "approved"
	StatusRejected  PhotoStatus = "rejected"
	StatusWithdrawn PhotoStatus = "withdrawn"
)

// ContestPhoto is one participant's entry. Each owner holds at most one
// non-withdrawn photo per contest epoch; withdrawing frees the slot.
type ContestPhoto struct {
	PhotoID         string
	OwnerID         string
	Title           string
	Caption         string
	ContentRef      string
	Status          PhotoStatus
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

var photoTransitions = map[PhotoStatus][]PhotoStatus{
	StatusPending:  {StatusApproved, StatusRejected, StatusWithdrawn},
	StatusApproved: {StatusRejected, StatusWithdrawn},
	StatusRejected: {StatusApproved, StatusWithdrawn},
}

func CanTransition(from, to PhotoStatus) bool {
	for _, allowed := range photoTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Active reports whether the photo occupies its owner's submission slot.
func (p ContestPhoto) Active() bool {
	return p.Status != StatusWithdrawn
}

// VisibleTo mirrors the marketplace visibility contract: approved photos are
// public, everything else is private to the owner and elevated roles.
func (p ContestPhoto) VisibleTo(viewerID string, elevated bool) bool {
	if elevated {
		return true
	}
	switch p.Status {
	case StatusApproved:
		return true
	default:
		return viewerID != "" && viewerID == p.OwnerID
	}
}

// ContestSettings is the single-row configuration for the current contest
// epoch. VotingOpen gates cast/retract; RankingPublic gates the student view
// of the ranking.
type ContestSettings struct {
	VotingOpen    bool
	RankingPublic bool
	Theme         string
	Deadline      *time.Time
	Rewards       string
	UpdatedAt     time.Time
}
