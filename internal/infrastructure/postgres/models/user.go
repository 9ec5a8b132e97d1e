package models

import "time"

type UserModel struct {
	ID                  string `gorm:"primaryKey;type:uuid"`
	Name                string
	Email               string `gorm:"index"`
	Phone               string
	Address             string
	IDDocumentPath      string
	ProofOfAddressPath  string
	DeletionScheduledAt *time.Time `gorm:"index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type NotificationModel struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"type:uuid;index"`
	Kind      string
	Payload   string `gorm:"type:jsonb"`
	CreatedAt time.Time
}

type MessageModel struct {
	ID            uint   `gorm:"primaryKey"`
	SenderID      string `gorm:"type:uuid;index"`
	RecipientID   string `gorm:"type:uuid;index"`
	TransactionID string `gorm:"type:uuid"`
	Body          string
	CreatedAt     time.Time
}

type VehicleModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	SellerID  string `gorm:"type:uuid;index"`
	Make      string
	Model     string
	Year      int
	Price     float64
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewModel keeps the counterpart's record after the author is purged:
// the reviewer identity is stripped, the content stays.
type ReviewModel struct {
	ID            uint    `gorm:"primaryKey"`
	ReviewerID    *string `gorm:"type:uuid;index"`
	ReviewerName  string
	SubjectUserID string `gorm:"type:uuid;index"`
	Rating        int
	Content       string
	CreatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (MessageModel) TableName() string {
	return "messages"
}

func (VehicleModel) TableName() string {
	return "vehicles"
}

func (ReviewModel) TableName() string {
	return "reviews"
}
