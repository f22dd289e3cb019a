package model

// ShiftBid statuses. Sibling bids on a shift that got assigned elsewhere
// are not eagerly rejected; resolution re-checks shift ownership instead.
const (
	BidStatusPending   = "pending"
	BidStatusWithdrawn = "withdrawn"
	BidStatusAssigned  = "assigned"
	BidStatusRejected  = "rejected"
)

// ShiftBid is a single-party claim on an unfilled open shift.
type ShiftBid struct {
	ShiftBidID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"shift_bid_id"`
	ShiftID    string `gorm:"type:uuid;not null"                             json:"shift_id"`
	BidderID   string `gorm:"type:uuid;not null"                             json:"bidder_id"`
	Status     string `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel

	Bidder *User  `gorm:"foreignKey:BidderID;references:UserID" json:"bidder,omitempty"`
	Shift  *Shift `gorm:"foreignKey:ShiftID;references:ShiftID" json:"shift,omitempty"`
}

// TableName sets the table name.
func (ShiftBid) TableName() string { return "shift_bids" }
