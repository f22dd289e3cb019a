package model

// Station is an ambulance station.
type Station struct {
	StationID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"station_id"`
	Name      string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsActive  bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (Station) TableName() string { return "stations" }

// StationSettings holds per-station policy switches. 1:1 with stations.
type StationSettings struct {
	StationID        string `gorm:"type:uuid;primaryKey"  json:"station_id"`
	ShiftSwapEnabled bool   `gorm:"not null;default:true" json:"shift_swap_enabled"`
	BaseModel
}

// TableName sets the table name.
func (StationSettings) TableName() string { return "station_settings" }
