package dto

// CoverageGapsRequest are the gap computation query parameters.
type CoverageGapsRequest struct {
	Date      string `form:"date"       binding:"required,datetime=2006-01-02"`
	Type      string `form:"type"       binding:"required,oneof=day night"`
	StationID string `form:"station_id" binding:"omitempty,uuid"`
}

// CoverageGap is one uncovered sub-interval of a working window,
// expressed in wall-clock hours. A gap with crosses_midnight set ends on
// the day after date.
type CoverageGap struct {
	Date            string `json:"date"`
	StartHour       int    `json:"start_hour"`
	EndHour         int    `json:"end_hour"`
	CrossesMidnight bool   `json:"crosses_midnight"`
}

// CoverageResponse is the gap report for one date and shift type.
type CoverageResponse struct {
	Date      string        `json:"date"`
	Type      string        `json:"type"`
	HasShifts bool          `json:"has_shifts"`
	Gaps      []CoverageGap `json:"gaps"`
}

// DailyCoverageRequest are the dashboard range query parameters.
type DailyCoverageRequest struct {
	From      string `form:"from"       binding:"required,datetime=2006-01-02"`
	To        string `form:"to"         binding:"required,datetime=2006-01-02"`
	StationID string `form:"station_id" binding:"omitempty,uuid"`
}
