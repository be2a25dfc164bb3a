package entities

import (
	"strings"
	"time"
)

type ListingStatus string

const (
	StatusPending  ListingStatus = "pending"
	StatusApproved ListingStatus = "approved"
	StatusRejected ListingStatus = "rejected"
	StatusReserved ListingStatus = "reserved"
	StatusClosed   ListingStatus = "closed"
)

type ListingKind string

const (
	KindForSale  ListingKind = "for_sale"
	KindDonation ListingKind = "donation"
)

// Listing is a moderated clothing submission. Only the seller edits content
// fields; moderators own status and rejection_reason; the reserved transition
// is system-triggered by reservation acquisition.
type Listing struct {
	ListingID       string
	SellerID        string
	Kind            ListingKind
	Price           *float64
	Title           string
	Description     string
	Category        string
	Size            string
	Condition       string
	Brand           string
	Status          ListingStatus
	RejectionReason string
	ContentRef      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// listingTransitions is the per-variant transition table. rejected and closed
// are terminal.
var listingTransitions = map[ListingStatus][]ListingStatus{
	StatusPending:  {StatusApproved, StatusRejected},
	StatusApproved: {StatusReserved, StatusClosed},
	StatusReserved: {StatusApproved, StatusClosed},
}

func CanTransition(from, to ListingStatus) bool {
	for _, allowed := range listingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// VisibleTo applies the read-side contract: approved and reserved listings
// are public; pending and rejected listings are visible to their seller and
// to elevated roles; closed listings stay visible to the seller.
func (l Listing) VisibleTo(viewerID string, elevated bool) bool {
	if elevated {
		return true
	}
	switch l.Status {
	case StatusApproved, StatusReserved:
		return true
	default:
		return strings.TrimSpace(viewerID) != "" && viewerID == l.SellerID
	}
}

// Reservation is the single-slot claim on a listing. At most one row may
// exist per listing; the store enforces that, not application code.
type Reservation struct {
	ReservationID string
	ListingID     string
	BuyerID       string
	CreatedAt     time.Time
}

type Favorite struct {
	FavoriteID string
	UserID     string
	ListingID  string
	CreatedAt  time.Time
}

// ListingFilter narrows the browse feed. AvailableOnly restricts the result
// to listings that can still be reserved.
type ListingFilter struct {
	Query         string
	Category      string
	Size          string
	Condition     string
	MinPrice      *float64
	MaxPrice      *float64
	DonationsOnly bool
	AvailableOnly bool
	Limit         int
	Offset        int
}
