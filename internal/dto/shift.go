package dto

// ShiftListRequest are the shift listing query parameters.
type ShiftListRequest struct {
	Month     int    `form:"month"      binding:"omitempty,min=1,max=12"`
	Year      int    `form:"year"       binding:"omitempty,min=2000,max=2100"`
	Date      string `form:"date"       binding:"omitempty,datetime=2006-01-02"`
	Type      string `form:"type"       binding:"omitempty,oneof=day night"`
	StationID string `form:"station_id" binding:"omitempty,uuid"`
}

// ReassignShiftRequest is the admin manual owner change. A null user_id
// releases the shift back to unfilled.
type ReassignShiftRequest struct {
	UserID *string `json:"user_id" binding:"omitempty,uuid"`
}

// ShiftResponse is one scheduled work block.
type ShiftResponse struct {
	ID           string     `json:"id"`
	Date         string     `json:"date"`
	Type         string     `json:"type"`
	StartTime    string     `json:"start_time"`
	EndTime      string     `json:"end_time"`
	IsSplitShift bool       `json:"is_split_shift"`
	Status       string     `json:"status"`
	StationID    string     `json:"station_id"`
	User         *UserBrief `json:"user,omitempty"`
}
