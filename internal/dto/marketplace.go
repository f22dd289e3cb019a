package dto

// ── open marketplace ──

// OpenShiftRequest releases an owned shift onto the marketplace.
type OpenShiftRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
	Note    string `json:"note"     binding:"omitempty,max=500"`
}

// SubmitOfferRequest places one offer on an open request. Omitting
// offerer_shift_id makes it a pure take-over offer.
type SubmitOfferRequest struct {
	OffererShiftID *string `json:"offerer_shift_id" binding:"omitempty,uuid"`
	Note           string  `json:"note"             binding:"omitempty,max=500"`
}

// BatchOffersRequest submits several reciprocal offers in one action.
// Each item is attempted independently.
type BatchOffersRequest struct {
	Offers []SubmitOfferRequest `json:"offers" binding:"required,min=1,max=20,dive"`
}

// OfferAttemptResult reports one item of a batch submission.
type OfferAttemptResult struct {
	OffererShiftID *string `json:"offerer_shift_id,omitempty"`
	OfferID        string  `json:"offer_id,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// BatchOffersResponse reports success-count versus attempted-count.
type BatchOffersResponse struct {
	Attempted int                  `json:"attempted"`
	Succeeded int                  `json:"succeeded"`
	Results   []OfferAttemptResult `json:"results"`
}

// SelectOfferRequest chooses the winning offer on an open request.
type SelectOfferRequest struct {
	OfferID string `json:"offer_id" binding:"required,uuid"`
}

// SwapOfferResponse is one offer on an open request.
type SwapOfferResponse struct {
	ID             string         `json:"id"`
	RequestID      string         `json:"request_id"`
	Offerer        *UserBrief     `json:"offerer,omitempty"`
	OffererShift   *ShiftResponse `json:"offerer_shift,omitempty"`
	Note           string         `json:"note,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      string         `json:"created_at"`
}

// OpenSwapResponse is one marketplace listing.
type OpenSwapResponse struct {
	ID            string              `json:"id"`
	Requester     *UserBrief          `json:"requester,omitempty"`
	Shift         *ShiftResponse      `json:"shift,omitempty"`
	StationID     string              `json:"station_id"`
	RequesterNote string              `json:"requester_note,omitempty"`
	AdminNote     string              `json:"admin_note,omitempty"`
	ApprovedBy    *string             `json:"approved_by,omitempty"`
	Status        string              `json:"status"`
	Offers        []SwapOfferResponse `json:"offers,omitempty"`
	CreatedAt     string              `json:"created_at"`
	UpdatedAt     string              `json:"updated_at"`
}
