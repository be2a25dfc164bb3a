package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitPhotoRequest struct {
	Title      string `json:"title" validate:"required,max=120"`
	Caption    string `json:"caption" validate:"max=500"`
	ContentRef string `json:"content_ref" validate:"max=500"`
}

type ModeratePhotoRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason" validate:"max=500"`
}

type UpdateSettingsRequest struct {
	VotingOpen    *bool   `json:"voting_open"`
	RankingPublic *bool   `json:"ranking_public"`
	Theme         *string `json:"theme" validate:"omitempty,max=120"`
	Deadline      *string `json:"deadline" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Rewards       *string `json:"rewards" validate:"omitempty,max=1000"`
}

type PhotoDTO struct {
	PhotoID         string `json:"photo_id"`
	OwnerID         string `json:"owner_id"`
	Title           string `json:"title"`
	Caption         string `json:"caption,omitempty"`
	ContentRef      string `json:"content_ref,omitempty"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type SettingsDTO struct {
	VotingOpen    bool   `json:"voting_open"`
	RankingPublic bool   `json:"ranking_public"`
	Theme         string `json:"theme,omitempty"`
	Deadline      string `json:"deadline,omitempty"`
	Rewards       string `json:"rewards,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

type SubmitPhotoResponse struct {
	Photo PhotoDTO `json:"photo"`
}

type GetPhotoResponse struct {
	Photo PhotoDTO `json:"photo"`
}

type ListPhotosResponse struct {
	Items []PhotoDTO `json:"items"`
}

type MyPhotoResponse struct {
	Photo *PhotoDTO `json:"photo"`
}

type SettingsResponse struct {
	Settings SettingsDTO `json:"settings"`
}
