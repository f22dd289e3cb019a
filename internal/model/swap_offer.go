package model

// SwapOffer statuses.
const (
	OfferStatusPending   = "pending"
	OfferStatusAccepted  = "accepted"
	OfferStatusRejected  = "rejected"
	OfferStatusWithdrawn = "withdrawn"
)

// SwapOffer is a colleague's bid on an OpenSwapRequest. A nil
// OffererShiftID is a pure take-over offer; a set one proposes a
// reciprocal exchange.
type SwapOffer struct {
	SwapOfferID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"swap_offer_id"`
	OpenSwapRequestID string  `gorm:"type:uuid;not null"                             json:"open_swap_request_id"`
	OffererID         string  `gorm:"type:uuid;not null"                             json:"offerer_id"`
	OffererShiftID    *string `gorm:"type:uuid"                                      json:"offerer_shift_id,omitempty"`
	Note              string  `gorm:"type:varchar(500)"                              json:"note,omitempty"`
	Status            string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	Offerer      *User  `gorm:"foreignKey:OffererID;references:UserID"      json:"offerer,omitempty"`
	OffererShift *Shift `gorm:"foreignKey:OffererShiftID;references:ShiftID" json:"offerer_shift,omitempty"`
}

// TableName sets the table name.
func (SwapOffer) TableName() string { return "swap_offers" }
