package model

// ExchangeRequest statuses.
const (
	ExchangeStatusPending   = "pending"
	ExchangeStatusApproved  = "approved"
	ExchangeStatusRejected  = "rejected"
	ExchangeStatusCancelled = "cancelled"
)

// ExchangeRequest is a direct transfer or swap request aimed at a named
// colleague. A nil TargetShiftID means a pure takeover; a set one means a
// reciprocal swap.
type ExchangeRequest struct {
	ExchangeRequestID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"exchange_request_id"`
	RequesterID       string  `gorm:"type:uuid;not null"                             json:"requester_id"`
	RequesterShiftID  string  `gorm:"type:uuid;not null"                             json:"requester_shift_id"`
	TargetUserID      string  `gorm:"type:uuid;not null"                             json:"target_user_id"`
	TargetShiftID     *string `gorm:"type:uuid"                                      json:"target_shift_id,omitempty"`
	StationID         string  `gorm:"type:uuid;not null"                             json:"station_id"`
	RequesterNote     string  `gorm:"type:varchar(500)"                              json:"requester_note,omitempty"`
	AdminNote         string  `gorm:"type:varchar(500)"                              json:"admin_note,omitempty"`
	ApprovedBy        *string `gorm:"type:uuid"                                      json:"approved_by,omitempty"`
	Status            string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	Requester      *User  `gorm:"foreignKey:RequesterID;references:UserID"       json:"requester,omitempty"`
	RequesterShift *Shift `gorm:"foreignKey:RequesterShiftID;references:ShiftID" json:"requester_shift,omitempty"`
	TargetUser     *User  `gorm:"foreignKey:TargetUserID;references:UserID"      json:"target_user,omitempty"`
	TargetShift    *Shift `gorm:"foreignKey:TargetShiftID;references:ShiftID"    json:"target_shift,omitempty"`
}

// TableName sets the table name.
func (ExchangeRequest) TableName() string { return "exchange_requests" }

// IsSwap reports whether a reciprocal shift moves back to the requester.
func (r *ExchangeRequest) IsSwap() bool { return r.TargetShiftID != nil }
