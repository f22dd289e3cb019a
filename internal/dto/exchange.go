package dto

// ── direct transfer / swap ──

// CreateExchangeRequest creates a direct request aimed at a named
// colleague. Omitting target_shift_id makes it a pure takeover.
type CreateExchangeRequest struct {
	RequesterShiftID string  `json:"requester_shift_id" binding:"required,uuid"`
	TargetUserID     string  `json:"target_user_id"     binding:"required,uuid"`
	TargetShiftID    *string `json:"target_shift_id"    binding:"omitempty,uuid"`
	Note             string  `json:"note"               binding:"omitempty,max=500"`
}

// ReviewRequest carries the optional admin note on approve/reject.
type ReviewRequest struct {
	AdminNote string `json:"admin_note" binding:"omitempty,max=500"`
}

// ExchangeRequestResponse is one direct exchange request.
type ExchangeRequestResponse struct {
	ID             string         `json:"id"`
	Requester      *UserBrief     `json:"requester,omitempty"`
	RequesterShift *ShiftResponse `json:"requester_shift,omitempty"`
	TargetUser     *UserBrief     `json:"target_user,omitempty"`
	TargetShift    *ShiftResponse `json:"target_shift,omitempty"`
	StationID      string         `json:"station_id"`
	RequesterNote  string         `json:"requester_note,omitempty"`
	AdminNote      string         `json:"admin_note,omitempty"`
	ApprovedBy     *string        `json:"approved_by,omitempty"`
	Status         string         `json:"status"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}
