package model

import "time"

type Status string

const (
	StatusDraft           Status = "DRAFT"
	StatusSubmitted       Status = "SUBMITTED"
	StatusManagerApproved Status = "MANAGER_APPROVED"
	StatusFinalApproved   Status = "FINAL_APPROVED"
	StatusRejected        Status = "REJECTED"
)

// Terminal reports whether the status has no outgoing transition.
func (s Status) Terminal() bool {
	return s == StatusFinalApproved || s == StatusRejected
}

type Category string

const (
	CategoryTravel         Category = "TRAVEL"
	CategoryFood           Category = "FOOD"
	CategoryOfficeSupplies Category = "OFFICE_SUPPLIES"
	CategoryEquipment      Category = "EQUIPMENT"
	CategoryOther          Category = "OTHER"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryTravel, CategoryFood, CategoryOfficeSupplies, CategoryEquipment, CategoryOther:
		return true
	}
	return false
}

type Request struct {
	ID       uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title    string   `gorm:"not null" json:"title"`
	Amount   float64  `gorm:"not null" json:"amount"`
	Date     string   `gorm:"not null" json:"date"`
	Category Category `gorm:"not null" json:"category"`

	// S3 key or local path of the uploaded receipt, if any
	Attachment *string `json:"attachment,omitempty"`

	CreatedBy string `gorm:"index;not null" json:"-"`
	Status    Status `gorm:"index;not null;default:DRAFT" json:"status"`

	// Set together by a manager action, consistent with Status
	ReviewedBy     *string    `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	ManagerComment *string    `json:"manager_comment,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// RequestWithOwner is the joined read shape: a request plus the owner's
// username, as returned by list and detail endpoints.
type RequestWithOwner struct {
	Request  `gorm:"embedded"`
	Username string `json:"username"`
}
