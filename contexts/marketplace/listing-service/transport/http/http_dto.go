package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateListingRequest struct {
	Kind        string   `json:"kind" validate:"required,oneof=for_sale donation"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
	Title       string   `json:"title" validate:"required,max=120"`
	Description string   `json:"description" validate:"max=2000"`
	Category    string   `json:"category" validate:"max=60"`
	Size        string   `json:"size" validate:"max=30"`
	Condition   string   `json:"condition" validate:"max=60"`
	Brand       string   `json:"brand" validate:"max=60"`
	ContentRef  string   `json:"content_ref" validate:"max=500"`
}

type ModerateListingRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason" validate:"max=500"`
}

type ListingDTO struct {
	ListingID       string   `json:"listing_id"`
	SellerID        string   `json:"seller_id"`
	Kind            string   `json:"kind"`
	Price           *float64 `json:"price,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category,omitempty"`
	Size            string   `json:"size,omitempty"`
	Condition       string   `json:"condition,omitempty"`
	Brand           string   `json:"brand,omitempty"`
	Status          string   `json:"status"`
	RejectionReason string   `json:"rejection_reason,omitempty"`
	ContentRef      string   `json:"content_ref,omitempty"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

type ReservationDTO struct {
	ReservationID string `json:"reservation_id"`
	ListingID     string `json:"listing_id"`
	BuyerID       string `json:"buyer_id"`
	CreatedAt     string `json:"created_at"`
}

type CreateListingResponse struct {
	Listing ListingDTO `json:"listing"`
}

type GetListingResponse struct {
	Listing ListingDTO `json:"listing"`
}

type ListListingsResponse struct {
	Items []ListingDTO `json:"items"`
}

type ReserveListingResponse struct {
	Reservation ReservationDTO `json:"reservation"`
}

type MyReservationResponse struct {
	Reservation *ReservationDTO `json:"reservation"`
	Listing     *ListingDTO     `json:"listing,omitempty"`
}
