package model

// OpenSwapRequest statuses.
const (
	OpenSwapStatusOpen          = "open"
	OpenSwapStatusOfferSelected = "offer_selected"
	OpenSwapStatusApproved      = "approved"
	OpenSwapStatusRejected      = "rejected"
	OpenSwapStatusCancelled     = "cancelled"
)

// OpenSwapRequest is a shift its owner released onto the open marketplace.
// At most one non-terminal request may exist per shift; the partial unique
// index uniq_open_swap_active_shift backstops the service-level check.
type OpenSwapRequest struct {
	OpenSwapRequestID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"open_swap_request_id"`
	RequesterID       string  `gorm:"type:uuid;not null"                             json:"requester_id"`
	ShiftID           string  `gorm:"type:uuid;not null"                             json:"shift_id"`
	StationID         string  `gorm:"type:uuid;not null"                             json:"station_id"`
	RequesterNote     string  `gorm:"type:varchar(500)"                              json:"requester_note,omitempty"`
	AdminNote         string  `gorm:"type:varchar(500)"                              json:"admin_note,omitempty"`
	ApprovedBy        *string `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	IsOpen            bool    `gorm:"not null;default:true"                          json:"is_open"`
	Status            string  `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	BaseModel

	Requester *User        `gorm:"foreignKey:RequesterID;references:UserID"                json:"requester,omitempty"`
	Shift     *Shift       `gorm:"foreignKey:ShiftID;references:ShiftID"                   json:"shift,omitempty"`
	Offers    []SwapOffer  `gorm:"foreignKey:OpenSwapRequestID;references:OpenSwapRequestID" json:"offers,omitempty"`
}

// TableName sets the table name.
func (OpenSwapRequest) TableName() string { return "open_swap_requests" }

// Terminal reports whether the request reached a final status.
func (r *OpenSwapRequest) Terminal() bool {
	switch r.Status {
	case OpenSwapStatusApproved, OpenSwapStatusRejected, OpenSwapStatusCancelled:
		return true
	}
	return false
}
