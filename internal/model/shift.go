package model

import "time"

// Shift types.
const (
	ShiftTypeDay   = "day"
	ShiftTypeNight = "night"
)

// Shift statuses. An unfilled shift is open with a NULL owner; a shift
// released onto the marketplace is open with its owner still set.
const (
	ShiftStatusPlanned = "planned"
	ShiftStatusOpen    = "open"
)

// Shift is one scheduled work block.
type Shift struct {
	ShiftID      string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_id"`
	Date         time.Time `gorm:"type:date;not null"                             json:"date"`
	Type         string    `gorm:"type:varchar(10);not null"                      json:"type"`
	StartTime    time.Time `gorm:"not null"                                       json:"start_time"`
	EndTime      time.Time `gorm:"not null"                                       json:"end_time"`
	IsSplitShift bool      `gorm:"not null;default:false"                         json:"is_split_shift"`
	UserID       *string   `gorm:"type:uuid"                                      json:"user_id,omitempty"`
	StationID    string    `gorm:"type:uuid;not null"                             json:"station_id"`
	Status       string    `gorm:"type:varchar(20);not null;default:'planned'"    json:"status"`
	BaseModel

	User    *User    `gorm:"foreignKey:UserID;references:UserID"       json:"user,omitempty"`
	Station *Station `gorm:"foreignKey:StationID;references:StationID" json:"station,omitempty"`
}

// TableName sets the table name.
func (Shift) TableName() string { return "shifts" }

// OwnedBy reports whether the shift is assigned to the given user.
func (s *Shift) OwnedBy(userID string) bool {
	return s.UserID != nil && *s.UserID == userID
}

// Unfilled reports whether the shift has no owner at all.
func (s *Shift) Unfilled() bool {
	return s.UserID == nil
}

// canonicalWindows lists the only legal start/end hour pairs per type.
// End hours beyond 24 denote the next calendar day.
var canonicalWindows = map[string][][2]int{
	ShiftTypeDay:   {{7, 19}, {7, 13}, {13, 19}},
	ShiftTypeNight: {{19, 31}, {19, 23}, {23, 31}},
}

// HasCanonicalWindow reports whether the shift's start/end hours form one
// of the four legal sub-windows for its type.
func (s *Shift) HasCanonicalWindow() bool {
	start, end := s.LinearHours()
	for _, w := range canonicalWindows[s.Type] {
		if start == w[0] && end == w[1] {
			return true
		}
	}
	return false
}

// LinearHours returns the shift's start/end on the 0-31 linear hour axis,
// where an hour >= 24 falls on the day after s.Date. A night shift ending
// at 07:00 next morning therefore ends at hour 31.
func (s *Shift) LinearHours() (start, end int) {
	start = s.StartTime.Hour()
	end = s.EndTime.Hour()
	if end <= start {
		end += 24
	}
	return start, end
}
