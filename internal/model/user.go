package model

// User roles.
const (
	RoleAmbulancier = "ambulancier"
	RoleSupervisor  = "supervisor"
	RoleAdmin       = "admin"
)

// User is a worker or supervisor.
type User struct {
	UserID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"user_id"`
	Username     string `gorm:"type:varchar(100);not null"                       json:"username"`
	PasswordHash string `gorm:"type:varchar(255);not null"                       json:"-"`
	FirstName    string `gorm:"type:varchar(100);not null"                       json:"first_name"`
	LastName     string `gorm:"type:varchar(100);not null"                       json:"last_name"`
	Role         string `gorm:"type:varchar(20);not null;default:'ambulancier'"  json:"role"`
	StationID    string `gorm:"type:uuid;not null"                               json:"station_id"`
	// Stations beyond the home station a supervisor/admin may administer.
	ExtraStationIDs StringArray `gorm:"type:text[]" json:"extra_station_ids,omitempty"`
	BaseModel

	Station *Station `gorm:"foreignKey:StationID;references:StationID" json:"station,omitempty"`
}

// TableName sets the table name.
func (User) TableName() string { return "users" }

// AccessibleStationIDs returns the home station plus any extra grants.
func (u *User) AccessibleStationIDs() []string {
	ids := make([]string, 0, len(u.ExtraStationIDs)+1)
	ids = append(ids, u.StationID)
	for _, id := range u.ExtraStationIDs {
		if id != u.StationID {
			ids = append(ids, id)
		}
	}
	return ids
}
