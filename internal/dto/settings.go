package dto

// UpdateStationSettingsRequest toggles per-station policy switches.
type UpdateStationSettingsRequest struct {
	ShiftSwapEnabled *bool `json:"shift_swap_enabled" binding:"required"`
}

// StationSettingsResponse is the per-station policy state.
type StationSettingsResponse struct {
	StationID        string `json:"station_id"`
	ShiftSwapEnabled bool   `json:"shift_swap_enabled"`
	UpdatedAt        string `json:"updated_at"`
}
