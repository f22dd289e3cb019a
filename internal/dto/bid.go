package dto

// PlaceBidRequest claims an unfilled open shift.
type PlaceBidRequest struct {
	ShiftID string `json:"shift_id" binding:"required,uuid"`
}

// BidResponse is one bid on an open shift.
type BidResponse struct {
	ID        string         `json:"id"`
	ShiftID   string         `json:"shift_id"`
	Shift     *ShiftResponse `json:"shift,omitempty"`
	Bidder    *UserBrief     `json:"bidder,omitempty"`
	Status    string         `json:"status"`
	CreatedAt string         `json:"created_at"`
}
