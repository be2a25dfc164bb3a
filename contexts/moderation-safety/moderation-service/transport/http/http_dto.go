package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type DecideRequest struct {
	ResourceType string `json:"resource_type" validate:"required,oneof=listing photo"`
	ResourceID   string `json:"resource_id" validate:"required"`
	Decision     string `json:"decision" validate:"required,oneof=approve reject"`
	Reason       string `json:"reason" validate:"max=500"`
}

type QueueItemDTO struct {
	ResourceID   string `json:"resource_id"`
	ResourceType string `json:"resource_type"`
	OwnerID      string `json:"owner_id"`
	Title        string `json:"title"`
	SubmittedAt  string `json:"submitted_at"`
}

type QueueResponse struct {
	Items []QueueItemDTO `json:"items"`
}
